package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftable/giftable-server/internal/api/http/request"
	"github.com/giftable/giftable-server/internal/model"
	"github.com/giftable/giftable-server/internal/testutil"
)

type stubGiftsService struct {
	list         func(userID uuid.UUID) ([]model.Gift, error)
	create       func(userID, personID uuid.UUID, title string, price float64, url, notes *string, status string) (model.Gift, error)
	updateStatus func(id, userID uuid.UUID, status string) (model.Gift, error)
	deleteFn     func(id, userID uuid.UUID) error
}

func (s *stubGiftsService) List(_ context.Context, userID uuid.UUID) ([]model.Gift, error) {
	return s.list(userID)
}

func (s *stubGiftsService) Create(_ context.Context, userID, personID uuid.UUID, title string, price float64, url, notes *string, status string) (model.Gift, error) {
	return s.create(userID, personID, title, price, url, notes, status)
}

func (s *stubGiftsService) UpdateStatus(_ context.Context, id, userID uuid.UUID, status string) (model.Gift, error) {
	return s.updateStatus(id, userID, status)
}

func (s *stubGiftsService) Delete(_ context.Context, id, userID uuid.UUID) error {
	return s.deleteFn(id, userID)
}

// giftsRouter dispatches through chi so URL params resolve like in
// production.
func giftsRouter(h *Gifts, ac model.AuthContext) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(request.WithAuthContext(req.Context(), ac)))
		})
	})
	r.Get("/gifts", h.List)
	r.Post("/gifts", h.Create)
	r.Patch("/gifts/{id}/status", h.UpdateStatus)
	r.Delete("/gifts/{id}", h.Delete)
	return r
}

func TestGifts_Create_MissingFields(t *testing.T) {
	h := NewGifts(&stubGiftsService{}, testutil.MakeNoopLogger())
	router := giftsRouter(h, model.AuthContext{UserID: uuid.New()})

	body, _ := json.Marshal(map[string]string{"title": "Lego set"})
	req := httptest.NewRequest(http.MethodPost, "/gifts", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "person_id and title are required", decodeError(t, rec))
}

func TestGifts_Create_ForeignPerson(t *testing.T) {
	h := NewGifts(&stubGiftsService{
		create: func(userID, personID uuid.UUID, title string, price float64, url, notes *string, status string) (model.Gift, error) {
			return model.Gift{}, model.ErrNotFound
		},
	}, testutil.MakeNoopLogger())
	router := giftsRouter(h, model.AuthContext{UserID: uuid.New()})

	body, _ := json.Marshal(map[string]any{"person_id": uuid.NewString(), "title": "Lego set"})
	req := httptest.NewRequest(http.MethodPost, "/gifts", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Person not found", decodeError(t, rec))
}

func TestGifts_UpdateStatus_InvalidStatus(t *testing.T) {
	h := NewGifts(&stubGiftsService{}, testutil.MakeNoopLogger())
	router := giftsRouter(h, model.AuthContext{UserID: uuid.New()})

	body, _ := json.Marshal(map[string]string{"status": "wrapped"})
	req := httptest.NewRequest(http.MethodPatch, "/gifts/"+uuid.NewString()+"/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Valid status required (idea, purchased, given)", decodeError(t, rec))
}

func TestGifts_UpdateStatus_Success(t *testing.T) {
	userID := uuid.New()
	giftID := uuid.New()
	h := NewGifts(&stubGiftsService{
		updateStatus: func(id, uid uuid.UUID, status string) (model.Gift, error) {
			require.Equal(t, giftID, id)
			require.Equal(t, userID, uid)
			return model.Gift{ID: id, UserID: uid, Status: status}, nil
		},
	}, testutil.MakeNoopLogger())
	router := giftsRouter(h, model.AuthContext{UserID: userID})

	body, _ := json.Marshal(map[string]string{"status": "given"})
	req := httptest.NewRequest(http.MethodPatch, "/gifts/"+giftID.String()+"/status", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var view giftView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "given", view.Status)
}

func TestGifts_Delete_BadID(t *testing.T) {
	h := NewGifts(&stubGiftsService{}, testutil.MakeNoopLogger())
	router := giftsRouter(h, model.AuthContext{UserID: uuid.New()})

	req := httptest.NewRequest(http.MethodDelete, "/gifts/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
