package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"minisocial/internal/pkg/jwtutil"
)

const (
	ContextUserIDKey = "user_id"
	ContextEmailKey  = "email"

	TokenCookieName = "token"
)

// SessionAuth guards routes behind the token cookie. A missing cookie, a
// malformed token and a bad signature all take the same path: redirect to
// /login without running the handler.
func SessionAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(TokenCookieName)
		if err != nil || strings.TrimSpace(token) == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)
		c.Next()
	}
}
