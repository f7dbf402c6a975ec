package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/giftable/giftable-server/internal/api/http/request"
	"github.com/giftable/giftable-server/internal/api/http/response"
	"github.com/giftable/giftable-server/internal/logger"
	"github.com/giftable/giftable-server/internal/model"
)

// AdminService defines administrator account-management operations.
type AdminService interface {
	ListUsers(ctx context.Context) ([]model.UserSummary, error)
	SetRole(ctx context.Context, actorID, targetID uuid.UUID, isAdmin bool) (model.User, error)
	DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error
	CreateResetLink(ctx context.Context, targetID uuid.UUID) (string, error)
}

// Admin handles the admin endpoints. All routes sit behind the admin
// middleware.
type Admin struct {
	service AdminService
	logger  *logger.Logger
}

// NewAdmin creates the admin handler.
func NewAdmin(service AdminService, logger *logger.Logger) *Admin {
	return &Admin{service: service, logger: logger}
}

// ListUsers returns every account with its data counts.
func (h *Admin) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("Admin handler: list users failed", "error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string][]userSummaryView{"users": toUserSummaryViews(users)})
}

type setRoleRequest struct {
	IsAdmin *bool `json:"isAdmin"`
}

type adminUserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// SetRole grants or revokes admin privilege.
func (h *Admin) SetRole(w http.ResponseWriter, r *http.Request) {
	ac, _ := request.AuthFromContext(r.Context())

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, "User not found")
		return
	}

	var req setRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsAdmin == nil {
		response.Error(w, http.StatusBadRequest, "isAdmin boolean is required")
		return
	}

	user, err := h.service.SetRole(r.Context(), ac.UserID, targetID, *req.IsAdmin)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "User not found")
			return
		}
		if !errors.Is(err, model.ErrLastAdmin) {
			h.logger.Error("Admin handler: set role failed", "user_id", targetID, "error", err.Error())
		}
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]adminUserView{"user": {
		ID:        user.ID,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}})
}

// DeleteUser removes an account and everything it owns.
func (h *Admin) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ac, _ := request.AuthFromContext(r.Context())

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, "User not found")
		return
	}

	if err := h.service.DeleteUser(r.Context(), ac.UserID, targetID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "User not found")
			return
		}
		if !errors.Is(err, model.ErrLastAdmin) && !errors.Is(err, model.ErrSelfDelete) {
			h.logger.Error("Admin handler: delete user failed", "user_id", targetID, "error", err.Error())
		}
		handleError(w, err)
		return
	}

	response.Message(w, "User deleted")
}

// CreateResetLink issues a password reset link on behalf of a user.
func (h *Admin) CreateResetLink(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, "User not found")
		return
	}

	resetURL, err := h.service.CreateResetLink(r.Context(), targetID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("Admin handler: create reset link failed", "user_id", targetID, "error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"resetUrl": resetURL})
}
