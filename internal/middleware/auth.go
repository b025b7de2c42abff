package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/crucial707/qa-forum/internal/metrics"
	"github.com/crucial707/qa-forum/internal/models"
	"github.com/crucial707/qa-forum/internal/repo"
)

// Gate responses. Clients rely on the exact wording.
const (
	MsgNoToken      = "not authorized, no token"
	MsgTokenFailed  = "not authorized, token failed"
	MsgUserNotFound = "not authorized, user not found"
)

// TokenVerifier resolves a signed token to a user id.
type TokenVerifier interface {
	Verify(token string) (int, error)
}

// UserLookup loads the user behind a verified token.
type UserLookup interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	ID       int
	Username string
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity set by Authenticate.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// Authenticate requires "Authorization: Bearer <token>", verifies the token and
// resolves the user before calling next. Failures end the request with 401.
func Authenticate(tokens TokenVerifier, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				metrics.RecordAuthEvent(metrics.EventVerify, metrics.OutcomeRejected)
				writeError(w, http.StatusUnauthorized, MsgNoToken)
				return
			}

			userID, err := tokens.Verify(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
			if err != nil {
				metrics.RecordAuthEvent(metrics.EventVerify, metrics.OutcomeRejected)
				writeError(w, http.StatusUnauthorized, MsgTokenFailed)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if errors.Is(err, repo.ErrNotFound) {
				metrics.RecordAuthEvent(metrics.EventVerify, metrics.OutcomeRejected)
				writeError(w, http.StatusUnauthorized, MsgUserNotFound)
				return
			}
			if err != nil {
				metrics.RecordAuthEvent(metrics.EventVerify, metrics.OutcomeError)
				slog.Error("auth user lookup failed",
					"request_id", chimw.GetReqID(r.Context()),
					"user_id", userID,
					"error", err)
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			metrics.RecordAuthEvent(metrics.EventVerify, metrics.OutcomeSuccess)
			ctx := WithIdentity(r.Context(), Identity{ID: user.ID, Username: user.Username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
