package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/giftable/giftable-server/internal/api/http/request"
	"github.com/giftable/giftable-server/internal/api/http/response"
	"github.com/giftable/giftable-server/internal/logger"
	"github.com/giftable/giftable-server/internal/model"
)

// Authenticator decides whether a bearer token is currently authorized.
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (model.AuthContext, error)
}

// Authenticate guards routes that require a signed-in user. The resolved
// identity is injected into the request context.
type Authenticate struct {
	auth   Authenticator
	logger *logger.Logger
}

// NewAuthenticate creates the authentication middleware.
func NewAuthenticate(auth Authenticator, logger *logger.Logger) *Authenticate {
	return &Authenticate{auth: auth, logger: logger}
}

// Handle validates the Authorization header and either injects the
// identity or rejects the request with 401.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac, err := m.auth.Authenticate(r.Context(), request.BearerToken(r))
		if err != nil {
			response.Error(w, http.StatusUnauthorized, authErrorMessage(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(request.WithAuthContext(r.Context(), ac)))
	})
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		return "Missing authorization header"
	case errors.Is(err, model.ErrSessionRevoked):
		return "Session revoked"
	case errors.Is(err, model.ErrSessionMismatch):
		return "Invalid session"
	default:
		return "Invalid or expired token"
	}
}
