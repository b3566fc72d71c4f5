package storage

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/JantaElectricals/JE-Backend/internal/httputil"
)

// Handler exposes the upload endpoint and the public image proxy.
type Handler struct {
	Store ObjectStore
	Log   *slog.Logger
}

const maxUploadBytes = 32 << 20

// UploadHandler stores a single multipart "file" field under a fresh
// uuid-based key and responds with the object's public URL. The caller is
// expected to attach that URL to a product afterwards; a crash between the
// two steps leaves an orphaned object, and nothing here cleans that up.
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	key := uuid.New().String() + filepath.Ext(header.Filename)
	contentType := header.Header.Get("Content-Type")

	if err := h.Store.Upload(r.Context(), key, contentType, file); err != nil {
		h.Log.Error("object upload failed", "key", key, "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"url": h.Store.PublicURL(key)})
}

// ImageHandler streams a stored object to the browser. Objects are immutable
// (keys are uuids), hence the long-lived cache header.
func (h *Handler) ImageHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		httputil.Error(w, http.StatusBadRequest, "Missing image path")
		return
	}

	body, contentType, err := h.Store.Download(r.Context(), path)
	if err != nil {
		httputil.Error(w, http.StatusNotFound, "Image not found")
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		h.Log.Warn("image stream interrupted", "path", path, "err", err)
	}
}
