package handlers

import (
	"net/http"

	"worldconnect/internal/db"
	"worldconnect/internal/middleware"
	"worldconnect/internal/models"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

func (h *AdminHandler) checkAdmin(c *gin.Context) *models.User {
	u, exists := c.Get(middleware.CheckUserKey)
	if !exists {
		return nil
	}
	user := u.(*models.User)
	if !user.IsAdmin() {
		return nil
	}
	return user
}

// Stats returns site-wide totals for the admin dashboard.
func (h *AdminHandler) Stats(c *gin.Context) {
	if h.checkAdmin(c) == nil {
		RenderError(c, http.StatusForbidden, "admin only")
		return
	}

	counts := gin.H{}
	for name, model := range map[string]interface{}{
		"users":     &models.User{},
		"articles":  &models.Article{},
		"comments":  &models.Comment{},
		"replies":   &models.Reply{},
		"reactions": &models.Reaction{},
	} {
		var n int64
		db.DB.Model(model).Count(&n)
		counts[name] = n
	}

	RenderData(c, http.StatusOK, counts)
}

// Users lists recently registered accounts.
func (h *AdminHandler) Users(c *gin.Context) {
	if h.checkAdmin(c) == nil {
		RenderError(c, http.StatusForbidden, "admin only")
		return
	}

	users := []models.User{}
	db.DB.Order("created_at DESC").Limit(100).Find(&users)

	RenderData(c, http.StatusOK, users)
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

// SetRole promotes or demotes one account.
func (h *AdminHandler) SetRole(c *gin.Context) {
	admin := h.checkAdmin(c)
	if admin == nil {
		RenderError(c, http.StatusForbidden, "admin only")
		return
	}

	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Role != "user" && req.Role != "admin") {
		RenderError(c, http.StatusBadRequest, "role must be user or admin")
		return
	}

	var user models.User
	if err := db.DB.Where("uid = ?", c.Param("uid")).First(&user).Error; err != nil {
		NotFound(c, "user")
		return
	}
	if user.ID == admin.ID {
		RenderError(c, http.StatusBadRequest, "cannot change your own role")
		return
	}

	db.DB.Model(&user).Update("role", req.Role)
	user.Role = req.Role

	RenderData(c, http.StatusOK, user)
}
