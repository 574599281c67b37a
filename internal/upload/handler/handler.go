package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"agriconnect/pkg/logger"
)

type UploadHandler struct {
	dir     string
	maxSize int64
	logger  logger.Logger
}

func NewUploadHandler(dir string, maxSize int64, log logger.Logger) *UploadHandler {
	return &UploadHandler{dir: dir, maxSize: maxSize, logger: log}
}

// Upload stores a single multipart image under a generated name and
// returns the public URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	if file.Size > h.maxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only image uploads are allowed"})
		return
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	dest := filepath.Join(h.dir, name)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		h.logger.Error("failed to save upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": "/uploads/" + name})
}
