package services

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFile(t *testing.T, field string, name string, content string) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File[field][0]
}

func TestLocalUploader(t *testing.T) {
	dir := t.TempDir()
	file := multipartFile(t, "document", "license.pdf", "pdf-bytes")

	uploader := &LocalUploader{Dir: dir}
	url, err := uploader.Upload(file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".pdf"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(content))
}

func TestHTTPUploader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		require.NotEmpty(t, r.MultipartForm.File["file"])
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example.com/license.pdf"})
	}))
	defer server.Close()

	uploader := &HTTPUploader{Endpoint: server.URL, Client: server.Client()}
	url, err := uploader.Upload(multipartFile(t, "document", "license.pdf", "pdf-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/license.pdf", url)
}

func TestHTTPUploaderRejectsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "disk full", http.StatusInternalServerError)
	}))
	defer server.Close()

	uploader := &HTTPUploader{Endpoint: server.URL, Client: server.Client()}
	_, err := uploader.Upload(multipartFile(t, "document", "license.pdf", "pdf-bytes"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestDefaultUploaderSelection(t *testing.T) {
	t.Setenv("UPLOAD_SERVICE_URL", "")
	_, ok := DefaultUploader().(*LocalUploader)
	assert.True(t, ok)

	t.Setenv("UPLOAD_SERVICE_URL", "http://uploads.internal")
	_, ok = DefaultUploader().(*HTTPUploader)
	assert.True(t, ok)
}
