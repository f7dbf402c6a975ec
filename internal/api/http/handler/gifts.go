package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/giftable/giftable-server/internal/api/http/request"
	"github.com/giftable/giftable-server/internal/api/http/response"
	"github.com/giftable/giftable-server/internal/logger"
	"github.com/giftable/giftable-server/internal/model"
)

// GiftsService defines operations over the user's gifts.
type GiftsService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Gift, error)
	Create(ctx context.Context, userID, personID uuid.UUID, title string, price float64, url, notes *string, status string) (model.Gift, error)
	UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string) (model.Gift, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// Gifts handles the gifts endpoints.
type Gifts struct {
	service GiftsService
	logger  *logger.Logger
}

// NewGifts creates the gifts handler.
func NewGifts(service GiftsService, logger *logger.Logger) *Gifts {
	return &Gifts{service: service, logger: logger}
}

// List returns the user's gifts.
func (h *Gifts) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := request.AuthFromContext(r.Context())

	gifts, err := h.service.List(r.Context(), ac.UserID)
	if err != nil {
		h.logger.Error("Gifts handler: list failed", "user_id", ac.UserID, "error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toGiftViews(gifts))
}

type createGiftRequest struct {
	PersonID string  `json:"person_id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	URL      *string `json:"url"`
	Notes    *string `json:"notes"`
	Status   string  `json:"status"`
}

// Create adds a gift idea for one of the user's people.
func (h *Gifts) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := request.AuthFromContext(r.Context())

	var req createGiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PersonID == "" || req.Title == "" {
		response.Error(w, http.StatusBadRequest, "person_id and title are required")
		return
	}

	personID, err := uuid.Parse(req.PersonID)
	if err != nil {
		response.Error(w, http.StatusNotFound, "Person not found")
		return
	}

	gift, err := h.service.Create(r.Context(), ac.UserID, personID, req.Title, req.Price, req.URL, req.Notes, req.Status)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Person not found")
			return
		}
		h.logger.Error("Gifts handler: create failed", "user_id", ac.UserID, "error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, toGiftView(gift))
}

type updateGiftStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a gift between idea, purchased and given.
func (h *Gifts) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ac, _ := request.AuthFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, "Gift not found")
		return
	}

	var req updateGiftStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !model.ValidGiftStatus(req.Status) {
		response.Error(w, http.StatusBadRequest, "Valid status required (idea, purchased, given)")
		return
	}

	gift, err := h.service.UpdateStatus(r.Context(), id, ac.UserID, req.Status)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Gift not found")
			return
		}
		h.logger.Error("Gifts handler: update status failed", "user_id", ac.UserID, "error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toGiftView(gift))
}

// Delete removes a gift.
func (h *Gifts) Delete(w http.ResponseWriter, r *http.Request) {
	ac, _ := request.AuthFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, "Gift not found")
		return
	}

	if err := h.service.Delete(r.Context(), id, ac.UserID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Gift not found")
			return
		}
		h.logger.Error("Gifts handler: delete failed", "user_id", ac.UserID, "error", err.Error())
		handleError(w, err)
		return
	}

	response.Message(w, "Deleted")
}
