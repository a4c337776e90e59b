package services

import (
	"fmt"
	"mime/multipart"

	"github.com/printshop/printshop-api/utils"
)

// FileService validates uploads and stores them in the configured backend
type FileService struct {
	storage S3Interface
}

var fileServiceInstance *FileService

// NewFileService creates a file service over the given storage
func NewFileService(storage S3Interface) *FileService {
	return &FileService{storage: storage}
}

// InitFileService installs the process-wide file service
func InitFileService(storage S3Interface) *FileService {
	fileServiceInstance = NewFileService(storage)
	return fileServiceInstance
}

// GetFileService returns the initialized file service instance
func GetFileService() *FileService {
	return fileServiceInstance
}

var uploadPrefixes = map[utils.FileKind]string{
	utils.FileKindDesign:     "designs",
	utils.FileKindProofing:   "proofing",
	utils.FileKindAttachment: "attachments",
}

// Upload validates the file for its kind and stores it, returning the key
func (s *FileService) Upload(kind utils.FileKind, fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateUpload(kind, fileHeader); err != nil {
		return "", err
	}

	key, err := s.storage.UploadFile(fileHeader, uploadPrefixes[kind])
	if err != nil {
		return "", fmt.Errorf("failed to upload %s file: %w", kind, err)
	}
	return key, nil
}

// URL returns a fetchable URL for a stored key, or "" for an empty key
func (s *FileService) URL(key string) (string, error) {
	if key == "" {
		return "", nil
	}
	url, err := s.storage.GetPresignedURL(key)
	if err != nil {
		return "", fmt.Errorf("failed to generate file URL: %w", err)
	}
	return url, nil
}

// Delete removes a stored file
func (s *FileService) Delete(key string) error {
	if err := s.storage.DeleteFile(key); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
