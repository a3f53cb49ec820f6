package handler

import (
	"github.com/gin-gonic/gin"

	"minisocial/internal/transport/http/middleware"
)

func userIDFromContext(c *gin.Context) (uint, bool) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := raw.(uint)
	return userID, ok && userID != 0
}

func emailFromContext(c *gin.Context) (string, bool) {
	raw, exists := c.Get(middleware.ContextEmailKey)
	if !exists {
		return "", false
	}
	email, ok := raw.(string)
	return email, ok && email != ""
}
