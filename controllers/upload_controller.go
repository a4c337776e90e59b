package controllers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/printshop/printshop-api/utils"
)

// GetUploadedFile handles GET /api/uploads/*key - serves files kept by the
// local storage backend
func GetUploadedFile(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		respondError(c, http.StatusBadRequest, "Filename is required", "INVALID_REQUEST")
		return
	}

	// Prevent directory traversal
	if strings.Contains(key, "..") || strings.Contains(key, "\\") || path.Clean(key) != key {
		respondError(c, http.StatusBadRequest, "Invalid filename", "INVALID_FILENAME")
		return
	}

	filePath := filepath.Join(utils.UploadDir, filepath.FromSlash(key))
	info, err := os.Stat(filePath)
	if err != nil || info.IsDir() {
		respondError(c, http.StatusNotFound, "File not found", "FILE_NOT_FOUND")
		return
	}

	c.Header("Content-Type", utils.ContentTypeFor(key))
	c.Header("Cache-Control", "public, max-age=86400")
	c.File(filePath)
}
