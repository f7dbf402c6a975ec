package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/giftable/giftable-server/internal/api/http/request"
	"github.com/giftable/giftable-server/internal/api/http/response"
	"github.com/giftable/giftable-server/internal/logger"
	"github.com/giftable/giftable-server/internal/model"
)

const (
	minPasswordLength = 6

	// maxPasswordLength is bcrypt's input limit; anything longer fails
	// hashing outright rather than being silently truncated.
	maxPasswordLength = 72
)

// AuthService defines account and session operations.
type AuthService interface {
	Register(ctx context.Context, email, password string) (string, model.User, error)
	Login(ctx context.Context, email, password string) (string, model.User, error)
	Logout(ctx context.Context, tokenString string)
	Authenticate(ctx context.Context, tokenString string) (model.AuthContext, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

// Auth handles the authentication endpoints.
type Auth struct {
	service AuthService
	logger  *logger.Logger
}

// NewAuth creates the auth handler.
func NewAuth(service AuthService, logger *logger.Logger) *Auth {
	return &Auth{service: service, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

// Register creates an account and signs it in.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if len(req.Password) < minPasswordLength {
		response.Error(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	if len(req.Password) > maxPasswordLength {
		response.Error(w, http.StatusBadRequest, "Password must be at most 72 characters")
		return
	}

	tokenString, user, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, model.ErrEmailTaken) {
			h.logger.Error("Auth handler: registration failed", "error", err.Error())
		}
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, sessionResponse{Token: tokenString, User: toUserView(user)})
}

// Login verifies credentials and issues a session token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	tokenString, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, model.ErrInvalidCredentials) {
			h.logger.Error("Auth handler: login failed", "error", err.Error())
		}
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, sessionResponse{Token: tokenString, User: toUserView(user)})
}

// Logout revokes the presented session token. Authenticated route, so the
// token is known to be present and valid.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout(r.Context(), request.BearerToken(r))
	response.Message(w, "Logged out")
}

// Me returns the signed-in account.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	ac, ok := request.AuthFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.service.GetUser(r.Context(), ac.UserID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("Auth handler: failed to load user", "user_id", ac.UserID, "error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]userDetailView{"user": {
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		IsAdmin:   user.IsAdmin,
	}})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type forgotPasswordResponse struct {
	Message         string `json:"message"`
	PreviewResetURL string `json:"previewResetUrl,omitempty"`
}

// ForgotPassword starts a password reset. The response is identical for
// known and unknown emails.
func (h *Auth) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		response.Error(w, http.StatusBadRequest, "Email is required")
		return
	}

	resetURL, err := h.service.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		h.logger.Error("Auth handler: forgot password failed", "error", err.Error())
		handleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, forgotPasswordResponse{
		Message:         "If an account with that email exists, a password reset link has been sent.",
		PreviewResetURL: resetURL,
	})
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword redeems a reset token and sets a new password.
func (h *Auth) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "Token and new password are required")
		return
	}
	if len(req.Password) < minPasswordLength {
		response.Error(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	if len(req.Password) > maxPasswordLength {
		response.Error(w, http.StatusBadRequest, "Password must be at most 72 characters")
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		if !errors.Is(err, model.ErrResetTokenInvalid) {
			h.logger.Error("Auth handler: reset password failed", "error", err.Error())
		}
		handleError(w, err)
		return
	}

	response.Message(w, "Password has been reset successfully. You can now sign in.")
}

type verifyResponse struct {
	Valid bool      `json:"valid"`
	User  *userView `json:"user,omitempty"`
}

// Verify reports whether the presented token is currently authorized.
// Unlike the middleware it never rejects the request outright with an
// error message; the result is carried in the body.
func (h *Auth) Verify(w http.ResponseWriter, r *http.Request) {
	ac, err := h.service.Authenticate(r.Context(), request.BearerToken(r))
	if err != nil {
		response.JSON(w, http.StatusUnauthorized, verifyResponse{Valid: false})
		return
	}

	response.JSON(w, http.StatusOK, verifyResponse{Valid: true, User: &userView{
		ID:      ac.UserID,
		Email:   ac.Email,
		IsAdmin: ac.IsAdmin,
	}})
}
