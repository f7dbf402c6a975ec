package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/giftable/giftable-server/internal/ai"
	"github.com/giftable/giftable-server/internal/api/http/response"
	"github.com/giftable/giftable-server/internal/logger"
	"github.com/giftable/giftable-server/internal/model"
)

// Suggester generates gift suggestions.
type Suggester interface {
	Configured() bool
	Suggest(ctx context.Context, req model.SuggestionRequest) ([]model.GiftSuggestion, error)
}

// Suggestions handles the AI suggestion endpoint.
type Suggestions struct {
	suggester Suggester
	logger    *logger.Logger
}

// NewSuggestions creates the suggestions handler.
func NewSuggestions(suggester Suggester, logger *logger.Logger) *Suggestions {
	return &Suggestions{suggester: suggester, logger: logger}
}

type suggestionsResponse struct {
	Suggestions []model.GiftSuggestion `json:"suggestions"`
}

// Suggest returns AI-generated gift ideas for a person. A server without
// AI credentials answers 503 so the client can fall back to its own
// provider configuration.
func (h *Suggestions) Suggest(w http.ResponseWriter, r *http.Request) {
	if !h.suggester.Configured() {
		response.Error(w, http.StatusServiceUnavailable, "Server AI not configured")
		return
	}

	var req model.SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PersonName == "" || req.Relationship == "" {
		response.Error(w, http.StatusBadRequest, "personName and relationship are required")
		return
	}

	suggestions, err := h.suggester.Suggest(r.Context(), req)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			response.Error(w, http.StatusServiceUnavailable, "Server AI not configured")
			return
		}
		h.logger.Error("Suggestions handler: request failed", "error", err.Error())
		if errors.Is(err, ai.ErrBadUpstream) {
			response.Error(w, http.StatusBadGateway, "AI request failed")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Failed to generate suggestions")
		return
	}

	response.JSON(w, http.StatusOK, suggestionsResponse{Suggestions: suggestions})
}
