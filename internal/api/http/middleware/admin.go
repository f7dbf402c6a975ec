package middleware

import (
	"net/http"

	"github.com/giftable/giftable-server/internal/api/http/request"
	"github.com/giftable/giftable-server/internal/api/http/response"
)

// RequireAdmin rejects authenticated requests whose identity does not
// carry the admin flag. Must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac, ok := request.AuthFromContext(r.Context())
		if !ok {
			response.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if !ac.IsAdmin {
			response.Error(w, http.StatusForbidden, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
