package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/printshop/printshop-api/tests/testutil"
	"github.com/printshop/printshop-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileService_UploadToMockS3(t *testing.T) {
	storage := NewMockS3Service()
	svc := NewFileService(storage)

	key, err := svc.Upload(utils.FileKindDesign, testutil.FileHeader(t, "label.pdf", []byte("%PDF-1.7")))
	require.NoError(t, err)
	assert.Equal(t, "designs/mock_label.pdf", key)
	assert.True(t, storage.FileExists(key))

	url, err := svc.URL(key)
	require.NoError(t, err)
	assert.Contains(t, url, key)

	require.NoError(t, svc.Delete(key))
	assert.False(t, storage.FileExists(key))
}

func TestFileService_RejectsInvalidUpload(t *testing.T) {
	storage := NewMockS3Service()
	svc := NewFileService(storage)

	_, err := svc.Upload(utils.FileKindProofing, testutil.FileHeader(t, "proof.pdf", []byte("x")))
	var uploadErr *utils.FileUploadError
	require.True(t, errors.As(err, &uploadErr))
	assert.Empty(t, storage.GetUploadedFiles(), "invalid files are never stored")
}

func TestFileService_EmptyKeyHasNoURL(t *testing.T) {
	url, err := NewFileService(NewMockS3Service()).URL("")
	require.NoError(t, err)
	assert.Equal(t, "", url)
}

func TestLocalStorage(t *testing.T) {
	dir := t.TempDir()
	svc := NewFileService(NewLocalStorage(dir))

	key, err := svc.Upload(utils.FileKindProofing, testutil.FileHeader(t, "proof.png", []byte("png-bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "proofing/"))

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	url, err := svc.URL(key)
	require.NoError(t, err)
	assert.Equal(t, "/api/uploads/"+key, url)

	require.NoError(t, svc.Delete(key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, svc.Delete(key), "deleting a missing file is not an error")
}

func TestFileServiceSingleton(t *testing.T) {
	storage := NewMockS3Service()
	svc := InitFileService(storage)
	assert.Same(t, svc, GetFileService())
}
