package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/printshop/printshop-api/models"
	"github.com/printshop/printshop-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTimelineEntry(t *testing.T) {
	env := setupTestEnv(t, testutil.MockAuth("auth0|designer", "designer"))

	w := env.upload(t, "/api/orders/1/timeline", map[string]string{"text": "  Khách duyệt mẫu  "}, "", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[models.TimelineEntry](t, w)
	assert.Equal(t, "Khách duyệt mẫu", first.Text)
	require.NotNil(t, first.Author)
	assert.Equal(t, "designer", first.Author.Username)
	assert.Nil(t, first.AttachmentKey)

	w = env.upload(t, "/api/orders/1/timeline", map[string]string{"text": "Ảnh bản in thử"}, "proof.jpg", []byte("jpeg bytes"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	second := decode[models.TimelineEntry](t, w)
	require.NotNil(t, second.AttachmentKey)
	assert.Equal(t, "attachments/mock_proof.jpg", *second.AttachmentKey)
	require.NotNil(t, second.AttachmentURL)

	w = env.do(t, http.MethodGet, "/api/orders/1/timeline", nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := decode[[]models.TimelineEntry](t, w)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].ID, "oldest first")
	require.NotNil(t, entries[1].AttachmentURL)
	assert.True(t, strings.Contains(*entries[1].AttachmentURL, "attachments/mock_proof.jpg"))
}

func TestAddTimelineEntry_Rejects(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name       string
		path       string
		text       string
		filename   string
		wantStatus int
	}{
		{"Blank text", "/api/orders/1/timeline", "   ", "", http.StatusBadRequest},
		{"Attachment of the wrong kind", "/api/orders/1/timeline", "note", "notes.docx", http.StatusBadRequest},
		{"Unknown order", "/api/orders/99/timeline", "note", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.upload(t, tt.path, map[string]string{"text": tt.text}, tt.filename, []byte("x"))
			requireError(t, w, tt.wantStatus)
		})
	}

	w := env.do(t, http.MethodGet, "/api/orders/1/timeline", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.TimelineEntry](t, w))

	requireError(t, env.do(t, http.MethodGet, "/api/orders/99/timeline", nil), http.StatusNotFound)
}
