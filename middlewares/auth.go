package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jordisipkens/spiral-race/utils"
)

// AdminAuthMiddleware guards admin routes on the session cookie set by
// login. The token is a signed JWT so a forged cookie fails the parse.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || token == "" {
			utils.Error(c, http.StatusUnauthorized, 4001, "unauthorized")
			c.Abort()
			return
		}

		if _, err := utils.ParseAdminToken(token); err != nil {
			utils.Error(c, http.StatusUnauthorized, 4001, "invalid session token")
			c.Abort()
			return
		}

		c.Next()
	}
}
