package adminauth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JantaElectricals/JE-Backend/internal/httputil"
	"github.com/JantaElectricals/JE-Backend/internal/middleware"
)

// Handler carries the dependencies of the admin auth endpoints.
type Handler struct {
	DB     *gorm.DB
	Log    *slog.Logger
	Secure bool // Secure cookie flag; false for local HTTP dev
}

// sessionMarker is the cookie value set on login. The gate checks cookie
// presence only, so the value carries no meaning beyond "logged in".
const sessionMarker = "authenticated"

func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	}
}

// LoginHandler checks the submitted password against the stored hash and on
// success marks the browser session via the admin cookie.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "Password is required")
		return
	}

	var cred Credential
	if err := h.DB.First(&cred).Error; err != nil {
		h.Log.Error("admin credentials lookup failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Admin credentials not configured")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		httputil.Error(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	http.SetCookie(w, h.sessionCookie(sessionMarker, 0))
	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// LogoutHandler clears the session cookie.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", -1))
	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ChangePasswordHandler verifies the current password, replaces the stored
// hash, and clears the session cookie so the admin has to log in again.
func (h *Handler) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		httputil.Error(w, http.StatusBadRequest, "Missing fields")
		return
	}

	if len(req.NewPassword) < 4 {
		httputil.Error(w, http.StatusBadRequest, "New password must be at least 4 characters")
		return
	}

	var cred Credential
	if err := h.DB.First(&cred).Error; err != nil {
		h.Log.Error("admin credentials lookup failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Admin credentials not configured")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		httputil.Error(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("bcrypt hash failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	if err := h.DB.Model(&cred).Update("password_hash", string(hashed)).Error; err != nil {
		h.Log.Error("credential update failed", "err", err)
		httputil.Error(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	// Force re-login with the new password.
	http.SetCookie(w, h.sessionCookie("", -1))
	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
