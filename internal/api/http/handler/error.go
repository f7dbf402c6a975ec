package handler

import (
	"errors"
	"net/http"

	"github.com/giftable/giftable-server/internal/api/http/response"
	"github.com/giftable/giftable-server/internal/model"
)

// handleError maps domain errors onto HTTP responses. Handlers that need
// a resource-specific message (e.g. "Person not found") deal with
// model.ErrNotFound themselves before falling back here.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, model.ErrEmailTaken):
		response.Error(w, http.StatusConflict, "An account with this email already exists")
	case errors.Is(err, model.ErrResetTokenInvalid):
		response.Error(w, http.StatusBadRequest, "Invalid or expired reset token")
	case errors.Is(err, model.ErrLastAdmin):
		response.Error(w, http.StatusBadRequest, "At least one admin account must remain")
	case errors.Is(err, model.ErrSelfDelete):
		response.Error(w, http.StatusBadRequest, "You cannot delete your own account from admin panel")
	case errors.Is(err, model.ErrForbidden):
		response.Error(w, http.StatusForbidden, "Admin access required")
	case errors.Is(err, model.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Not found")
	default:
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
