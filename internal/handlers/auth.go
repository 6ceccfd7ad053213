package handlers

import (
	"net/http"
	"strings"

	"worldconnect/internal/db"
	"worldconnect/internal/models"
	"worldconnect/internal/services"
	"worldconnect/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct {
	mailService *services.MailService
}

func NewAuthHandler(mail *services.MailService) *AuthHandler {
	return &AuthHandler{mailService: mail}
}

type signupRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RenderError(c, http.StatusBadRequest, "email, password, first_name and last_name are required")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.Contains(req.Email, "@") {
		RenderError(c, http.StatusBadRequest, "invalid email address")
		return
	}
	if len(req.Password) < 6 {
		RenderError(c, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	user := models.User{
		UID:       uuid.NewString(),
		Email:     req.Email,
		Password:  hash,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      "user",
	}
	if err := db.DB.Create(&user).Error; err != nil {
		RenderError(c, http.StatusConflict, "email already registered")
		return
	}

	h.mailService.SendWelcomeEmail(user.Email, utils.DisplayName(user.FirstName, user.LastName))

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	RenderData(c, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RenderError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	var user models.User
	err := db.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error
	if err != nil || !utils.CheckPasswordHash(req.Password, user.Password) {
		RenderError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	RenderData(c, http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	RenderData(c, http.StatusOK, gin.H{"logged_out": true})
}

// Me returns the signed-in user with the unread notification count.
func (h *AuthHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		RenderError(c, http.StatusUnauthorized, "not signed in")
		return
	}
	RenderData(c, http.StatusOK, gin.H{
		"user":         user,
		"unread_count": UnreadCount(c),
	})
}
