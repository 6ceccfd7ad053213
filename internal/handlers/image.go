package handlers

import (
	"net/http"
	"strings"

	"worldconnect/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxImageSize = 10 << 20 // 10 MB

type ImageHandler struct{}

func NewImageHandler() *ImageHandler {
	return &ImageHandler{}
}

// Upload accepts a multipart image and returns the hosted URL for use
// as an article's image_url.
func (h *ImageHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		RenderError(c, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		RenderError(c, http.StatusRequestEntityTooLarge, "image exceeds 10MB")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		RenderError(c, http.StatusBadRequest, "file is not an image")
		return
	}

	result, err := services.UploadImage(file, header)
	if err != nil {
		zap.L().Error("image upload failed", zap.Error(err))
		RenderError(c, http.StatusBadGateway, "image upload failed")
		return
	}

	RenderData(c, http.StatusCreated, result)
}
