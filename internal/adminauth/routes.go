package adminauth

import (
	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts the auth endpoints. These live under the gated /admin
// subtree; the gate itself exempts the login path.
func (h *Handler) SetupRoutes(r chi.Router) {
	r.Post("/login", h.LoginHandler)
	r.Post("/logout", h.LogoutHandler)
	r.Post("/change-password", h.ChangePasswordHandler)
}
