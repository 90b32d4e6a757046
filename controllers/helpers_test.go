package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"editorial/models"
	"editorial/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePositiveInt(t *testing.T) {
	cases := map[string]int{
		"":     9,
		"abc":  9,
		"0":    9,
		"-3":   9,
		"4":    4,
		" 12 ": 12,
	}
	for in, want := range cases {
		assert.Equal(t, want, parsePositiveInt(in, 9), "input %q", in)
	}
}

func contextWithBody(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindLooseJSONAcceptsEmptyBody(t *testing.T) {
	var req struct {
		Name string `json:"name"`
	}

	c := contextWithBody("")
	assert.True(t, bindLooseJSON(c, &req))
	assert.Empty(t, c.Errors)

	c = contextWithBody("{not json")
	assert.False(t, bindLooseJSON(c, &req))
	require.Len(t, c.Errors, 1)
	assert.True(t, utils.IsKind(c.Errors.Last().Err, utils.KindValidation))
}

func TestBindJSONReportsFieldNames(t *testing.T) {
	utils.RegisterJSONTagNames()
	var req struct {
		Title string `json:"title" binding:"required,min=3"`
	}

	c := contextWithBody(`{"title":"ab"}`)
	assert.False(t, bindJSON(c, &req))
	require.Len(t, c.Errors, 1)

	appErr, ok := utils.AsAppError(c.Errors.Last().Err)
	require.True(t, ok)
	assert.Equal(t, "must be at least 3 characters", appErr.Details["title"])
}

func captureMeta(t *testing.T, trusted []string, header string) models.RequestMeta {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(trusted))

	var meta models.RequestMeta
	r.GET("/", func(c *gin.Context) { meta = requestMeta(c) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:5000"
	req.Header.Set("User-Agent", "test-agent")
	if header != "" {
		req.Header.Set("X-Forwarded-For", header)
	}
	r.ServeHTTP(httptest.NewRecorder(), req)
	return meta
}

func TestRequestMetaIgnoresUntrustedForwardedFor(t *testing.T) {
	meta := captureMeta(t, nil, "198.51.100.4")
	assert.Equal(t, "10.0.0.9", meta.IP)
	assert.Equal(t, "test-agent", meta.UserAgent)
}

func TestRequestMetaHonorsTrustedProxy(t *testing.T) {
	meta := captureMeta(t, []string{"10.0.0.0/8"}, "198.51.100.4, 10.0.0.7")
	assert.Equal(t, "198.51.100.4", meta.IP)
}
