package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/printshop/printshop-api/utils"
)

// LocalStorage keeps uploads on disk for development without an S3 bucket
type LocalStorage struct {
	dir   string
	clock utils.Clock
}

// NewLocalStorage stores files under dir
func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir, clock: utils.RealClock{}}
}

// UploadFile saves the file and returns its key
func (l *LocalStorage) UploadFile(fileHeader *multipart.FileHeader, prefix string) (string, error) {
	key := utils.StorageKey(prefix, fileHeader.Filename, l.clock.Now())
	return utils.SaveUploadedFile(fileHeader, l.dir, key)
}

// GetPresignedURL returns the mock backend path that serves the file
func (l *LocalStorage) GetPresignedURL(key string) (string, error) {
	return utils.GetFileURL(key), nil
}

// DeleteFile removes a stored file; missing files are not an error
func (l *LocalStorage) DeleteFile(key string) error {
	if key == "" {
		return nil
	}
	err := os.Remove(filepath.Join(l.dir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
