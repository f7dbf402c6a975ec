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

// PeopleService defines operations over the user's gift recipients.
type PeopleService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Person, error)
	Create(ctx context.Context, userID uuid.UUID, name, relationship string, budget float64, notes *string) (model.Person, error)
	Update(ctx context.Context, id, userID uuid.UUID, update model.PersonUpdate) (model.Person, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// People handles the people endpoints.
type People struct {
	service PeopleService
	logger  *logger.Logger
}

// NewPeople creates the people handler.
func NewPeople(service PeopleService, logger *logger.Logger) *People {
	return &People{service: service, logger: logger}
}

// List returns the user's people.
func (h *People) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := request.AuthFromContext(r.Context())

	people, err := h.service.List(r.Context(), ac.UserID)
	if err != nil {
		h.logger.Error("People handler: list failed", "user_id", ac.UserID, "error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toPersonViews(people))
}

type createPersonRequest struct {
	Name         string  `json:"name"`
	Relationship string  `json:"relationship"`
	Budget       float64 `json:"budget"`
	Notes        *string `json:"notes"`
}

// Create adds a person.
func (h *People) Create(w http.ResponseWriter, r *http.Request) {
	ac, _ := request.AuthFromContext(r.Context())

	var req createPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Relationship == "" {
		response.Error(w, http.StatusBadRequest, "Name and relationship are required")
		return
	}

	person, err := h.service.Create(r.Context(), ac.UserID, req.Name, req.Relationship, req.Budget, req.Notes)
	if err != nil {
		h.logger.Error("People handler: create failed", "user_id", ac.UserID, "error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, toPersonView(person))
}

type updatePersonRequest struct {
	Name         *string  `json:"name"`
	Relationship *string  `json:"relationship"`
	Budget       *float64 `json:"budget"`
	Notes        *string  `json:"notes"`
}

// Update applies a partial update to a person.
func (h *People) Update(w http.ResponseWriter, r *http.Request) {
	ac, _ := request.AuthFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, "Person not found")
		return
	}

	var req updatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "No fields to update")
		return
	}

	update := model.PersonUpdate{
		Name:         req.Name,
		Relationship: req.Relationship,
		Budget:       req.Budget,
		Notes:        req.Notes,
	}
	if update.Empty() {
		response.Error(w, http.StatusBadRequest, "No fields to update")
		return
	}

	person, err := h.service.Update(r.Context(), id, ac.UserID, update)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Person not found")
			return
		}
		h.logger.Error("People handler: update failed", "user_id", ac.UserID, "error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toPersonView(person))
}

// Delete removes a person and, via cascade, their gifts.
func (h *People) Delete(w http.ResponseWriter, r *http.Request) {
	ac, _ := request.AuthFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusNotFound, "Person not found")
		return
	}

	if err := h.service.Delete(r.Context(), id, ac.UserID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Person not found")
			return
		}
		h.logger.Error("People handler: delete failed", "user_id", ac.UserID, "error", err.Error())
		handleError(w, err)
		return
	}

	response.Message(w, "Deleted")
}
