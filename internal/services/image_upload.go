package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

type imgurResponse struct {
	Data struct {
		ID         string `json:"id"`
		Link       string `json:"link"`
		DeleteHash string `json:"deletehash"`
		Type       string `json:"type"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// ImageUploadResult is the hosted location of an uploaded article image.
type ImageUploadResult struct {
	URL string `json:"url"`
	ID  string `json:"id"`
}

// UploadImage pushes an article image to the hosting service and
// returns the public URL to store on the article. Imgur is the only
// backend for now.
func UploadImage(file multipart.File, header *multipart.FileHeader) (*ImageUploadResult, error) {
	return uploadToImgur(file)
}

func uploadToImgur(file multipart.File) (*ImageUploadResult, error) {
	clientID := os.Getenv("IMGUR_CLIENT_ID")
	if clientID == "" {
		return nil, fmt.Errorf("IMGUR_CLIENT_ID not configured")
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	base64Image := base64.StdEncoding.EncodeToString(fileBytes)

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	if err := writer.WriteField("image", base64Image); err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}
	if err := writer.WriteField("type", "base64"); err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}
	writer.Close()

	req, err := http.NewRequest("POST", "https://api.imgur.com/3/image", &requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+clientID)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var imgur imgurResponse
	if err := json.Unmarshal(body, &imgur); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if !imgur.Success {
		return nil, fmt.Errorf("imgur upload failed: status %d", imgur.Status)
	}

	return &ImageUploadResult{
		URL: imgur.Data.Link,
		ID:  imgur.Data.ID,
	}, nil
}
