package request

import (
	"context"
	"net/http"
	"strings"

	"github.com/giftable/giftable-server/internal/model"
)

type ctxKey int

const authContextKey ctxKey = iota

// WithAuthContext returns a child context carrying the authenticated
// identity.
func WithAuthContext(ctx context.Context, ac model.AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey, ac)
}

// AuthFromContext retrieves the authenticated identity set by the
// authentication middleware.
func AuthFromContext(ctx context.Context) (model.AuthContext, bool) {
	ac, ok := ctx.Value(authContextKey).(model.AuthContext)
	return ac, ok
}

// BearerToken extracts the token from the Authorization header. Returns
// an empty string when the header is absent or not a bearer scheme.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
