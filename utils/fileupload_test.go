package utils

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestFileHeader creates a mock multipart.FileHeader for testing
func createTestFileHeader(filename string, size int64, content []byte) *multipart.FileHeader {
	// Create a buffer to write our multipart form
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	// Create form file
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", "image/png")
	part, _ := writer.CreatePart(h)
	part.Write(content)
	writer.Close()

	// Parse the multipart form
	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(int64(len(content)) + 1024)
	defer form.RemoveAll()

	if len(form.File["file"]) > 0 {
		fileHeader := form.File["file"][0]
		// Override size for testing purposes
		fileHeader.Size = size
		return fileHeader
	}

	return nil
}

func TestValidateUpload_Success(t *testing.T) {
	tests := []struct {
		name     string
		kind     FileKind
		filename string
	}{
		{"proofing png", FileKindProofing, "proof.png"},
		{"proofing jpeg", FileKindProofing, "proof.JPEG"},
		{"design pdf", FileKindDesign, "label.pdf"},
		{"design illustrator", FileKindDesign, "label.ai"},
		{"attachment jpg", FileKindAttachment, "note.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := []byte("fake content")
			fileHeader := createTestFileHeader(tt.filename, int64(len(content)), content)
			require.NotNil(t, fileHeader)

			assert.NoError(t, ValidateUpload(tt.kind, fileHeader))
		})
	}
}

func TestValidateUpload_FileTooLarge(t *testing.T) {
	content := []byte("fake png content")

	// 11MB is over the image limit but under the design limit
	fileHeader := createTestFileHeader("large.png", 11*1024*1024, content)
	require.NotNil(t, fileHeader)

	err := ValidateUpload(FileKindProofing, fileHeader)
	require.Error(t, err)
	uploadErr, ok := err.(*FileUploadError)
	require.True(t, ok, "Error should be FileUploadError type")
	assert.Equal(t, "FILE_TOO_LARGE", uploadErr.Code)
	assert.Contains(t, uploadErr.Message, "10 MB")

	assert.NoError(t, ValidateUpload(FileKindDesign, fileHeader))

	fileHeader.Size = 51 * 1024 * 1024
	err = ValidateUpload(FileKindDesign, fileHeader)
	require.Error(t, err)
	assert.Equal(t, "FILE_TOO_LARGE", err.(*FileUploadError).Code)
}

func TestValidateUpload_InvalidFormat(t *testing.T) {
	tests := []struct {
		name     string
		kind     FileKind
		filename string
	}{
		{"gif proofing image", FileKindProofing, "test.gif"},
		{"pdf proofing image", FileKindProofing, "test.pdf"},
		{"no extension", FileKindDesign, "testfile"},
		{"executable design", FileKindDesign, "setup.exe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := []byte("fake content")
			fileHeader := createTestFileHeader(tt.filename, int64(len(content)), content)
			require.NotNil(t, fileHeader)

			err := ValidateUpload(tt.kind, fileHeader)
			require.Error(t, err)
			uploadErr, ok := err.(*FileUploadError)
			require.True(t, ok)
			assert.Equal(t, "INVALID_FILE_FORMAT", uploadErr.Code)
		})
	}
}

func TestFileUploadError_Error(t *testing.T) {
	err := &FileUploadError{
		Code:    "TEST_ERROR",
		Message: "This is a test error",
	}

	assert.Equal(t, "This is a test error", err.Error())
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/png", ContentTypeFor("a.PNG"))
	assert.Equal(t, "image/jpeg", ContentTypeFor("a.jpg"))
	assert.Equal(t, "application/pdf", ContentTypeFor("a.pdf"))
	assert.Equal(t, "application/octet-stream", ContentTypeFor("a.ai"))
}

func TestStorageKey(t *testing.T) {
	now := time.Unix(1709600000, 0)
	assert.Equal(t, "designs/1709600000_logo.pdf", StorageKey("designs", "../../logo.pdf", now))
}

func TestSaveUploadedFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("design bytes")
	fileHeader := createTestFileHeader("logo.pdf", int64(len(content)), content)
	require.NotNil(t, fileHeader)

	key, err := SaveUploadedFile(fileHeader, dir, "designs/1_logo.pdf")
	require.NoError(t, err)
	assert.Equal(t, "designs/1_logo.pdf", key)

	saved, err := os.ReadFile(filepath.Join(dir, "designs", "1_logo.pdf"))
	require.NoError(t, err)
	assert.Equal(t, content, saved)
}

func TestGetFileURL(t *testing.T) {
	assert.Equal(t, "", GetFileURL(""))
	assert.Equal(t, "/api/uploads/designs/1_logo.pdf", GetFileURL("designs/1_logo.pdf"))
}
