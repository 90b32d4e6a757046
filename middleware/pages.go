package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminPages guards the admin UI. It only checks that a session cookie is
// present; the API behind the pages verifies the token itself.
func AdminPages() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := strings.TrimSuffix(c.Request.URL.Path, "/")
		hasToken := AdminToken(c) != ""

		if path == "/admin/login" {
			if hasToken {
				c.Redirect(http.StatusFound, "/admin")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if !hasToken {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
