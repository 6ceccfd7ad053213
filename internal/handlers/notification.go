package handlers

import (
	"net/http"

	"worldconnect/internal/db"
	"worldconnect/internal/middleware"
	"worldconnect/internal/models"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	notifications := []models.Notification{}
	db.DB.Preload("Actor").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications)

	RenderData(c, http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  UnreadCount(c),
	})
}

func (h *NotificationHandler) Read(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	id := c.Param("id")

	var notification models.Notification
	if err := db.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&notification).Error; err != nil {
		NotFound(c, "notification")
		return
	}

	notification.IsRead = true
	db.DB.Save(&notification)

	RenderData(c, http.StatusOK, notification)
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true)

	RenderData(c, http.StatusOK, gin.H{"read_all": true})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	id := c.Param("id")

	var notification models.Notification
	if err := db.DB.Where("id = ? AND user_id = ?", id, user.ID).First(&notification).Error; err != nil {
		NotFound(c, "notification")
		return
	}

	db.DB.Delete(&notification)

	RenderData(c, http.StatusOK, gin.H{"deleted": true})
}
