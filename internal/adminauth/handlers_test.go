package adminauth_test

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JantaElectricals/JE-Backend/internal/adminauth"
	"github.com/JantaElectricals/JE-Backend/internal/db"
	"github.com/JantaElectricals/JE-Backend/internal/middleware"
)

var (
	dbAvailable bool
	testDB      *gorm.DB
)

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env.local")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		os.Exit(m.Run())
	}

	var err error
	testDB, err = db.Connect(dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "test database connect failed: %v\n", err)
		os.Exit(1)
	}
	if err := adminauth.Init(testDB, "bootstrap-test-password"); err != nil {
		fmt.Fprintf(os.Stderr, "adminauth init failed: %v\n", err)
		os.Exit(1)
	}
	dbAvailable = true

	os.Exit(m.Run())
}

// newHandler runs each test inside a rolled-back transaction holding exactly
// one credential row with a known password, so tests never disturb real data.
func newHandler(t *testing.T, password string) *adminauth.Handler {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}

	tx := testDB.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() { tx.Rollback() })

	require.NoError(t, tx.Exec(`DELETE FROM store_admin.credentials`).Error)

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, tx.Create(&adminauth.Credential{
		ID:           uuid.New().String(),
		PasswordHash: string(hashed),
	}).Error)

	return &adminauth.Handler{
		DB:  tx,
		Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newHandler(t, "correct-horse")

	rec := postJSON(t, h.LoginHandler, "/admin/login", `{"password":"battery-staple"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(t, rec), "failed login must not set a session cookie")
}

func TestLogin_MissingPassword(t *testing.T) {
	h := newHandler(t, "correct-horse")

	rec := postJSON(t, h.LoginHandler, "/admin/login", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_Success(t *testing.T) {
	h := newHandler(t, "correct-horse")

	rec := postJSON(t, h.LoginHandler, "/admin/login", `{"password":"correct-horse"}`)

	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

func TestLogout_ClearsCookie(t *testing.T) {
	h := newHandler(t, "correct-horse")

	rec := postJSON(t, h.LogoutHandler, "/admin/logout", ``)

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	h := newHandler(t, "correct-horse")

	rec := postJSON(t, h.ChangePasswordHandler, "/admin/change-password",
		`{"currentPassword":"wrong","newPassword":"next-password"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePassword_TooShort(t *testing.T) {
	h := newHandler(t, "correct-horse")

	rec := postJSON(t, h.ChangePasswordHandler, "/admin/change-password",
		`{"currentPassword":"correct-horse","newPassword":"abc"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// A successful change clears the session cookie (forced re-login) and the new
// password takes effect immediately.
func TestChangePassword_Success(t *testing.T) {
	h := newHandler(t, "correct-horse")

	rec := postJSON(t, h.ChangePasswordHandler, "/admin/change-password",
		`{"currentPassword":"correct-horse","newPassword":"next-password"}`)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	cleared := sessionCookie(t, rec)
	require.NotNil(t, cleared, "change-password must clear the session cookie")
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	rec = postJSON(t, h.LoginHandler, "/admin/login", `{"password":"correct-horse"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "old password must stop working")

	rec = postJSON(t, h.LoginHandler, "/admin/login", `{"password":"next-password"}`)
	assert.Equal(t, http.StatusOK, rec.Code, "new password must work")
}
