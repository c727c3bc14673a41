package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sufal54/bolpurmart-admin-sub000/pkg/aws"
)

const maxUploadSize = 5 << 20 // 5 MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadController accepts image uploads (product photos, UPI QR codes)
// and stores them in S3, returning the public URL the client embeds in
// the document it is editing.
type UploadController struct {
	uploader *aws.S3Uploader
}

func NewUploadController(uploader *aws.S3Uploader) *UploadController {
	return &UploadController{uploader: uploader}
}

func (ctrl *UploadController) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file in form data"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 5MB upload limit"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type, expected JPEG, PNG or WebP"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		zap.L().Error("Failed to open uploaded file", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	name := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	url, err := ctrl.uploader.Upload(c.Request.Context(), name, contentType, file)
	if err != nil {
		zap.L().Error("Failed to upload file to S3", zap.String("name", name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
		return
	}

	zap.L().Info("Uploaded image", zap.String("name", name), zap.Int64("size", fileHeader.Size))
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
