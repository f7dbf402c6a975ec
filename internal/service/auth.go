package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/giftable/giftable-server/internal/logger"
	"github.com/giftable/giftable-server/internal/model"
	"github.com/giftable/giftable-server/internal/token"
)

// TokenCodec issues and validates signed bearer tokens.
type TokenCodec interface {
	Issue(ac model.AuthContext) (string, error)
	Validate(tokenString string) (model.AuthContext, error)
}

// Mailer delivers password reset notifications.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

const (
	sessionKeyPrefix = "session:"
	resetKeyPrefix   = "reset:"

	// sessionRevoked is the sentinel distinguishing "explicitly killed"
	// from a normal session record within the same key space.
	sessionRevoked = "revoked"

	resetTokenTTL = time.Hour
	passwordCost  = 12
)

// Auth is the session authority: the single decision procedure answering
// "is this bearer token currently authorized, and as whom", plus the
// mutating operations that establish and tear down sessions and handle
// password resets.
type Auth struct {
	users       model.UserStore
	sessions    model.KeyValueStore
	codec       TokenCodec
	mailer      Mailer
	logger      *logger.Logger
	adminEmails []string
	appURL      string
}

// NewAuth creates the session authority over the given collaborators.
// adminEmails is the allow-list consulted once, at account creation.
func NewAuth(
	users model.UserStore,
	sessions model.KeyValueStore,
	codec TokenCodec,
	mailer Mailer,
	adminEmails []string,
	appURL string,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:       users,
		sessions:    sessions,
		codec:       codec,
		mailer:      mailer,
		adminEmails: adminEmails,
		appURL:      appURL,
		logger:      logger,
	}
}

func sessionKey(tokenString string) string {
	return sessionKeyPrefix + tokenString
}

func resetKey(tokenString string) string {
	return resetKeyPrefix + tokenString
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Authenticate decides whether the presented bearer token is currently
// authorized and returns the identity it carries.
//
// The session store is a revocation blacklist, not a positive source of
// truth. A valid token is trusted unless the store holds an explicit
// "revoked" record for it, so a store outage, a cold cache, or a session
// write that has not landed yet can never log a legitimate user out. Only
// an explicit revocation ends a session early.
//
// The step order below is load-bearing and pinned by tests:
//
//  1. No token at all -> ErrUnauthenticated (distinct from a rejected one).
//  2. Signature and expiry via the codec, before any store access. A
//     cryptographically invalid or expired token must never be rescued by
//     stale store state.
//  3. Store says "revoked" -> ErrSessionRevoked.
//  4. Store names a different user than the claims -> ErrSessionMismatch.
//     Desync should not happen; this guards against a stale record from a
//     previous account.
//  5. Absent record (including an unreachable store) -> trust the token.
func (a *Auth) Authenticate(ctx context.Context, tokenString string) (model.AuthContext, error) {
	if tokenString == "" {
		return model.AuthContext{}, model.ErrUnauthenticated
	}

	ac, err := a.codec.Validate(tokenString)
	if err != nil {
		return model.AuthContext{}, model.ErrTokenInvalid
	}

	record, ok := a.sessions.Get(ctx, sessionKey(tokenString))
	if ok {
		if record == sessionRevoked {
			return model.AuthContext{}, model.ErrSessionRevoked
		}
		if record != ac.UserID.String() {
			a.logger.Warn("Auth service: session record does not match token claims",
				"user_id", ac.UserID)
			return model.AuthContext{}, model.ErrSessionMismatch
		}
	}

	return ac, nil
}

// Login verifies credentials and issues a fresh bearer token. Unknown email
// and wrong password fail identically. The session record write is
// best-effort: the token is self-contained, so a store outage must not
// fail the login.
func (a *Auth) Login(ctx context.Context, email, password string) (string, model.User, error) {
	email = normalizeEmail(email)

	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return "", model.User{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return "", model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", model.User{}, model.ErrInvalidCredentials
	}

	tokenString, err := a.issueSession(ctx, user)
	if err != nil {
		return "", model.User{}, err
	}

	a.logger.Info("Auth service: user logged in", "user_id", user.ID)

	return tokenString, user, nil
}

// Register creates an account and logs it in. The first account ever, or
// an email on the configured allow-list, is created as admin; the flag is
// assigned once here and never re-evaluated.
func (a *Auth) Register(ctx context.Context, email, password string) (string, model.User, error) {
	email = normalizeEmail(email)

	isAdmin, err := a.shouldAssignAdmin(ctx, email)
	if err != nil {
		return "", model.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.users.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return "", model.User{}, model.ErrEmailTaken
		}
		return "", model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	tokenString, err := a.issueSession(ctx, user)
	if err != nil {
		return "", model.User{}, err
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID,
		"is_admin", user.IsAdmin)

	return tokenString, user, nil
}

// Logout revokes the presented token. The existing session record is
// deleted first, then overwritten with the revoked sentinel using the full
// token lifetime as TTL, so the revocation cannot expire before the token
// it revokes would have. Idempotent: revoking an unknown or already-revoked
// token succeeds silently.
func (a *Auth) Logout(ctx context.Context, tokenString string) {
	if tokenString == "" {
		return
	}

	key := sessionKey(tokenString)
	a.sessions.Delete(ctx, key)
	a.sessions.Set(ctx, key, sessionRevoked, token.Lifetime)
}

// GetUser returns the stored account for id.
func (a *Auth) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	return a.users.GetByID(ctx, id)
}

// IssueResetToken creates a single-use password reset token for userID,
// valid for one hour. The token is a random 32-byte hex string, not a
// signed token: it has to be revocable after a single use, which a pure
// signature cannot provide.
func (a *Auth) IssueResetToken(ctx context.Context, userID uuid.UUID) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	resetToken := hex.EncodeToString(buf)

	a.sessions.Set(ctx, resetKey(resetToken), userID.String(), resetTokenTTL)

	return resetToken, nil
}

// ConsumeResetToken redeems a reset token, deleting it atomically with the
// read so at most one concurrent caller wins. Unknown, expired and
// already-consumed tokens are indistinguishable to the caller.
func (a *Auth) ConsumeResetToken(ctx context.Context, resetToken string) (uuid.UUID, error) {
	value, ok := a.sessions.GetDelete(ctx, resetKey(resetToken))
	if !ok {
		return uuid.Nil, model.ErrResetTokenInvalid
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, model.ErrResetTokenInvalid
	}

	return userID, nil
}

// RequestPasswordReset issues a reset token for the account behind email
// and sends the reset link. To avoid account enumeration it reports
// success for unknown emails too, returning an empty URL. A mail delivery
// failure is logged, not surfaced: the token is already valid.
func (a *Auth) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)

	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	resetToken, err := a.IssueResetToken(ctx, user.ID)
	if err != nil {
		return "", err
	}

	resetURL := a.ResetURL(resetToken)

	if err := a.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		a.logger.Error("Auth service: failed to send reset email",
			"user_id", user.ID,
			"error", err.Error())
	}

	return resetURL, nil
}

// ResetPassword redeems a reset token and replaces the account password.
func (a *Auth) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	userID, err := a.ConsumeResetToken(ctx, resetToken)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), passwordCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrResetTokenInvalid
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	a.logger.Info("Auth service: password reset completed", "user_id", userID)

	return nil
}

// ResetURL builds the user-facing reset link for a token.
func (a *Auth) ResetURL(resetToken string) string {
	return strings.TrimRight(a.appURL, "/") + "/reset-password?token=" + resetToken
}

func (a *Auth) issueSession(ctx context.Context, user model.User) (string, error) {
	tokenString, err := a.codec.Issue(model.AuthContext{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	})
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	// Positive session record, used only as a sanity check. TTL matches
	// the token lifetime.
	a.sessions.Set(ctx, sessionKey(tokenString), user.ID.String(), token.Lifetime)

	return tokenString, nil
}

func (a *Auth) shouldAssignAdmin(ctx context.Context, email string) (bool, error) {
	if slices.Contains(a.adminEmails, email) {
		return true, nil
	}

	count, err := a.users.CountAdmins(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	return count == 0, nil
}
