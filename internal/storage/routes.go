package storage

import (
	"github.com/go-chi/chi/v5"
)

// SetupAdminRoutes mounts the gated upload endpoint.
func (h *Handler) SetupAdminRoutes(r chi.Router) {
	r.Post("/upload", h.UploadHandler)
}

// SetupPublicRoutes mounts the image proxy.
func (h *Handler) SetupPublicRoutes(r chi.Router) {
	r.Get("/image", h.ImageHandler)
}
