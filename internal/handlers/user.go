package handlers

import (
	"net/http"

	"worldconnect/internal/db"
	"worldconnect/internal/models"
	"worldconnect/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile returns the public view of one user with their recent
// articles.
func (h *UserHandler) Profile(c *gin.Context) {
	var user models.User
	if err := db.DB.Where("uid = ?", c.Param("uid")).First(&user).Error; err != nil {
		NotFound(c, "user")
		return
	}

	articles := []models.Article{}
	db.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC, id ASC").
		Limit(20).
		Find(&articles)

	aids := make([]string, len(articles))
	for i, a := range articles {
		aids[i] = a.Aid
	}

	RenderData(c, http.StatusOK, gin.H{
		"uid":      user.UID,
		"name":     utils.DisplayName(user.FirstName, user.LastName),
		"initials": utils.Initials(user.FirstName, user.LastName),
		"joined":   user.CreatedAt,
		"articles": aids,
	})
}
