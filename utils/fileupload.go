package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// MaxDesignFileSize is 50MB in bytes
	MaxDesignFileSize = 50 * 1024 * 1024
	// MaxImageFileSize is 10MB in bytes
	MaxImageFileSize = 10 * 1024 * 1024
)

var (
	// UploadDir is the directory where uploaded files are stored
	// Can be overridden for testing
	UploadDir = "./uploads"

	// DesignFileExtensions are the artwork formats accepted for design files
	DesignFileExtensions = []string{".pdf", ".ai", ".psd", ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".cdr", ".eps", ".svg"}

	// ImageFileExtensions are the formats accepted for proofing images and attachments
	ImageFileExtensions = []string{".png", ".jpg", ".jpeg"}
)

// FileKind selects the validation rules for an upload
type FileKind string

const (
	FileKindDesign     FileKind = "design"
	FileKindProofing   FileKind = "proofing"
	FileKindAttachment FileKind = "attachment"
)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateUpload validates the uploaded file format and size for the given kind
func ValidateUpload(kind FileKind, fileHeader *multipart.FileHeader) error {
	maxSize := int64(MaxImageFileSize)
	allowed := ImageFileExtensions
	if kind == FileKindDesign {
		maxSize = MaxDesignFileSize
		allowed = DesignFileExtensions
	}

	if fileHeader.Size > maxSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", maxSize/(1024*1024)),
		}
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !hasExtension(allowed, ext) {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: fmt.Sprintf("Only %s files are allowed", strings.Join(allowed, ", ")),
		}
	}

	return nil
}

func hasExtension(allowed []string, ext string) bool {
	for _, a := range allowed {
		if a == ext {
			return true
		}
	}
	return false
}

// ContentTypeFor guesses the content type stored alongside an upload
func ContentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".pdf":
		return "application/pdf"
	case ".svg":
		return "image/svg+xml"
	case ".tif", ".tiff":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}

// StorageKey builds the key an upload is stored under: {prefix}/{unix}_{filename}
func StorageKey(prefix, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%d_%s", prefix, now.Unix(), filepath.Base(filename))
}

// SaveUploadedFile saves the uploaded file to the local filesystem under key
// Returns the key it was stored under
func SaveUploadedFile(fileHeader *multipart.FileHeader, uploadDir, key string) (string, error) {
	fullPath := filepath.Join(uploadDir, filepath.FromSlash(key))

	// Create the target directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close destination file: %w", err)
	}

	return key, nil
}

// GetFileURL returns the URL path for accessing a locally stored upload
func GetFileURL(key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("/api/uploads/%s", key)
}
