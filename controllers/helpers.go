package controllers

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"editorial/utils"

	"github.com/gin-gonic/gin"
)

// parsePositiveInt returns def unless value is a positive integer.
func parsePositiveInt(value string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// bindJSON decodes and validates the body, attaching a 400 on failure.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(utils.ValidationErrorFrom(err))
		return false
	}
	return true
}

// bindLooseJSON treats an empty body as an empty object so the service can
// report which fields are missing.
func bindLooseJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(utils.ValidationErrorFrom(err))
		return false
	}
	return true
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}
