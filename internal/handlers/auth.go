package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"pricecheck/internal/middleware"
	"pricecheck/internal/session"
)

// Auth groups the admin login/logout handlers. There is one shared password
// and one role; the session flag is a convenience, not a security boundary.
type Auth struct {
	sessions     *session.Store
	passwordHash []byte // bcrypt hash of the shared admin password
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, passwordHash []byte) *Auth {
	return &Auth{
		sessions:     sessions,
		passwordHash: passwordHash,
	}
}

// Login checks the submitted password and creates an admin session.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if bcrypt.CompareHashAndPassword(a.passwordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Incorrect password. Please try again.")
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{Admin: true}); err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"admin": true})
}

// Logout destroys the admin session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"admin": false})
}

// Session reports whether the caller has an active admin session, letting
// the client restore its admin state across reloads.
func (a *Auth) Session(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"admin": sess != nil && sess.Admin})
}
