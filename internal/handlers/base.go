package handlers

import (
	"net/http"

	"worldconnect/internal/middleware"
	"worldconnect/internal/models"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the signed-in user from the context, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

// UnreadCount returns the unread notification count loaded by the
// session middleware.
func UnreadCount(c *gin.Context) int {
	if count, ok := c.Get(middleware.UnreadCountKey); ok {
		return int(count.(int64))
	}
	return 0
}

// JSON envelope helpers. Every response is either {"data": ...} or
// {"error": "..."}.

func RenderData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"data": data})
}

func RenderError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

func NotFound(c *gin.Context, what string) {
	RenderError(c, http.StatusNotFound, what+" not found")
}
