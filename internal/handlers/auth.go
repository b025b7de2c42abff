package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/crucial707/qa-forum/internal/auth"
	"github.com/crucial707/qa-forum/internal/metrics"
	"github.com/crucial707/qa-forum/internal/models"
	"github.com/crucial707/qa-forum/internal/repo"
)

const (
	msgUsernameTaken      = "username already exists"
	msgInvalidCredentials = "invalid username or password"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	UserRepo *repo.UserRepo
	Tokens   *auth.TokenService
}

// ==========================
// Register
// ==========================

// Register creates an account and returns a token for it (201).
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input models.Registration
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Username = strings.TrimSpace(input.Username)
	if !validateInput(w, input) {
		metrics.RecordAuthEvent(metrics.EventRegister, metrics.OutcomeRejected)
		return
	}

	_, err := h.UserRepo.GetByUsername(r.Context(), input.Username)
	switch {
	case err == nil:
		metrics.RecordAuthEvent(metrics.EventRegister, metrics.OutcomeRejected)
		JSONError(w, msgUsernameTaken, http.StatusBadRequest)
		return
	case !errors.Is(err, repo.ErrNotFound):
		h.fail(w, r, metrics.EventRegister, "register: lookup user", err)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		h.fail(w, r, metrics.EventRegister, "register: hash password", err)
		return
	}

	user, err := h.UserRepo.Create(r.Context(), input.Username, hash)
	if errors.Is(err, repo.ErrDuplicate) {
		// Lost a race with a concurrent registration of the same name.
		metrics.RecordAuthEvent(metrics.EventRegister, metrics.OutcomeRejected)
		JSONError(w, msgUsernameTaken, http.StatusBadRequest)
		return
	}
	if err != nil {
		h.fail(w, r, metrics.EventRegister, "register: create user", err)
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		h.fail(w, r, metrics.EventRegister, "register: issue token", err)
		return
	}

	metrics.RecordAuthEvent(metrics.EventRegister, metrics.OutcomeSuccess)
	writeJSON(w, http.StatusCreated, models.AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Token:    token,
		Message:  "user registered successfully",
	})
}

// ==========================
// Login
// ==========================

// Login checks the password and returns a fresh token. Unknown users and
// wrong passwords get the same 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input models.Credentials
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Username = strings.TrimSpace(input.Username)
	if !validateInput(w, input) {
		metrics.RecordAuthEvent(metrics.EventLogin, metrics.OutcomeRejected)
		return
	}

	user, err := h.UserRepo.GetByUsername(r.Context(), input.Username)
	if errors.Is(err, repo.ErrNotFound) {
		metrics.RecordAuthEvent(metrics.EventLogin, metrics.OutcomeRejected)
		JSONError(w, msgInvalidCredentials, http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.fail(w, r, metrics.EventLogin, "login: lookup user", err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, input.Password) {
		metrics.RecordAuthEvent(metrics.EventLogin, metrics.OutcomeRejected)
		JSONError(w, msgInvalidCredentials, http.StatusUnauthorized)
		return
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		h.fail(w, r, metrics.EventLogin, "login: issue token", err)
		return
	}

	metrics.RecordAuthEvent(metrics.EventLogin, metrics.OutcomeSuccess)
	writeJSON(w, http.StatusOK, models.AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Token:    token,
		Message:  "login successful",
	})
}

func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request, event, op string, err error) {
	metrics.RecordAuthEvent(event, metrics.OutcomeError)
	internalError(w, r, op, err)
}
