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

// OccasionsService defines operations over the user's occasions.
type OccasionsService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Occasion, error)
	Create(ctx context.Context, userID uuid.UUID, occasionType string, date time.Time, budget float64) (model.Occasion, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// Occasions handles the occasions endpoints.
type Occasions struct {
	service OccasionsService
	logger  *logger.Logger
}

// NewOccasions creates the occasions handler.
func NewOccasions(service OccasionsService, logger *logger.Logger) *Occasions {
	return &Occasions{service: service, logger: logger}
}

// List returns the user's occasions.
func (h *Occasions) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := request.AuthFromContext(r.Context())

	occasions, err := h.service.List(r.Context(), ac.UserID)
	if err != nil {
		h.logger.Error("Occasions handler: list failed", "user_id", ac.UserID, "error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toOccasionViews(occasions))
}

type createOccasionRequest struct {
	Type   string  `json:"type"`
	Date   string  `json:"date"`
	Budget float64 `json:"budget"`
}

// Create adds an occasion.
func (h *Occasions) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := request.AuthFromContext(r.Context())

	var req createOccasionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Type == "" || req.Date == "" {
		response.Error(w, http.StatusBadRequest, "Type and date are required")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Type and date are required")
		return
	}

	occasion, err := h.service.Create(r.Context(), ac.UserID, req.Type, date, req.Budget)
	if err != nil {
		h.logger.Error("Occasions handler: create failed", "user_id", ac.UserID, "error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, toOccasionView(occasion))
}

// Delete removes an occasion.
func (h *Occasions) Delete(w http.ResponseWriter, r *http.Request) {
	ac, _ := request.AuthFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, "Occasion not found")
		return
	}

	if err := h.service.Delete(r.Context(), id, ac.UserID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Occasion not found")
			return
		}
		h.logger.Error("Occasions handler: delete failed", "user_id", ac.UserID, "error", err.Error())
		handleError(w, err)
		return
	}

	response.Message(w, "Deleted")
}

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
