package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/giftable/giftable-server/internal/api/http/response"
)

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health handles the health endpoint.
type Health struct {
	db Pinger
}

// NewHealth creates the health handler.
func NewHealth(db Pinger) *Health {
	return &Health{db: db}
}

type healthResponse struct {
	Status    string `json:"status"`
	DB        string `json:"db"`
	Timestamp string `json:"timestamp"`
}

// Check reports overall service health. The service stays up without the
// database but reports itself degraded.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		DB:        "connected",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.db.Ping(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.DB = "disconnected"
	}

	response.JSON(w, http.StatusOK, resp)
}
