package middleware

import (
	"log"
	"net/http"

	"editorial/utils"

	"github.com/gin-gonic/gin"
)

const AdminIDKey = "admin_id"

// TokenAuthenticator resolves a session token to an admin id.
type TokenAuthenticator interface {
	Authenticate(token string) (string, bool)
}

// AdminRequired verifies the admin_token cookie on every request. Failures
// abort the chain before any handler runs.
func AdminRequired(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := AdminToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		adminID, ok := auth.Authenticate(token)
		if !ok {
			log.Printf("Admin token rejected for %s %s", c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Set(AdminIDKey, adminID)
		c.Next()
	}
}

func AdminToken(c *gin.Context) string {
	token, err := c.Cookie(utils.AdminCookieName)
	if err != nil {
		return ""
	}
	return token
}

func AdminIDFromContext(c *gin.Context) string {
	return c.GetString(AdminIDKey)
}
