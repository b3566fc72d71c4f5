package storage_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JantaElectricals/JE-Backend/internal/storage"
)

// fakeStore implements storage.ObjectStore in memory.
type fakeStore struct {
	objects      map[string][]byte
	contentTypes map[string]string
	uploadErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects:      map[string][]byte{},
		contentTypes: map[string]string{},
	}
}

func (f *fakeStore) Upload(_ context.Context, key, contentType string, body io.Reader) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.objects[key] = data
	f.contentTypes[key] = contentType
	return nil
}

func (f *fakeStore) Download(_ context.Context, key string) (io.ReadCloser, string, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, "", fmt.Errorf("no such key %q", key)
	}
	return io.NopCloser(bytes.NewReader(data)), f.contentTypes[key], nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "https://cdn.example.com/product-images/" + key
}

func newHandler(store storage.ObjectStore) *storage.Handler {
	return &storage.Handler{
		Store: store,
		Log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func multipartUpload(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadHandler_StoresFileUnderFreshKey(t *testing.T) {
	store := newFakeStore()
	h := newHandler(store)

	body, contentType := multipartUpload(t, "file", "cooler.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/admin/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.UploadHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var out struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.URL)

	// The key keeps the original extension but not the original name.
	assert.True(t, strings.HasSuffix(out.URL, ".png"), "got %q", out.URL)
	assert.NotContains(t, out.URL, "cooler")

	require.Len(t, store.objects, 1)
	for _, data := range store.objects {
		assert.Equal(t, []byte("png-bytes"), data)
	}
}

func TestUploadHandler_MissingFile(t *testing.T) {
	h := newHandler(newFakeStore())

	body, contentType := multipartUpload(t, "wrong-field", "cooler.png", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/admin/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.UploadHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadHandler_StoreFailure(t *testing.T) {
	store := newFakeStore()
	store.uploadErr = fmt.Errorf("bucket unreachable")
	h := newHandler(store)

	body, contentType := multipartUpload(t, "file", "cooler.png", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/admin/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.UploadHandler(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "bucket unreachable",
		"raw store errors must not leak to clients")
}

func TestImageHandler_StreamsObject(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Upload(context.Background(), "abc.jpg", "image/jpeg", bytes.NewReader([]byte("jpeg-bytes"))))
	h := newHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/public/image?path=abc.jpg", nil)
	rec := httptest.NewRecorder()
	h.ImageHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=31536000, immutable", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "jpeg-bytes", rec.Body.String())
}

func TestImageHandler_MissingPath(t *testing.T) {
	h := newHandler(newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/public/image", nil)
	rec := httptest.NewRecorder()
	h.ImageHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImageHandler_UnknownObject(t *testing.T) {
	h := newHandler(newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/public/image?path=missing.jpg", nil)
	rec := httptest.NewRecorder()
	h.ImageHandler(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
