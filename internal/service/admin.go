package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/giftable/giftable-server/internal/logger"
	"github.com/giftable/giftable-server/internal/model"
)

// ResetTokenIssuer mints single-use password reset tokens.
type ResetTokenIssuer interface {
	IssueResetToken(ctx context.Context, userID uuid.UUID) (string, error)
	ResetURL(resetToken string) string
}

// Admin implements the administrator account-management operations.
type Admin struct {
	users  model.UserStore
	resets ResetTokenIssuer
	logger *logger.Logger
}

// NewAdmin creates the admin service.
func NewAdmin(users model.UserStore, resets ResetTokenIssuer, logger *logger.Logger) *Admin {
	return &Admin{users: users, resets: resets, logger: logger}
}

// ListUsers returns every account with its data counts, newest first.
func (s *Admin) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	return s.users.List(ctx)
}

// SetRole grants or revokes admin privilege on the target account. An
// admin demoting themselves is refused when no other admin would remain.
func (s *Admin) SetRole(ctx context.Context, actorID, targetID uuid.UUID, isAdmin bool) (model.User, error) {
	if actorID == targetID && !isAdmin {
		others, err := s.users.CountOtherAdmins(ctx, targetID)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to count other admins: %w", err)
		}
		if others == 0 {
			return model.User{}, model.ErrLastAdmin
		}
	}

	user, err := s.users.SetAdmin(ctx, targetID, isAdmin)
	if err != nil {
		return model.User{}, err
	}

	s.logger.Info("Admin service: user role updated",
		"actor_id", actorID,
		"user_id", targetID,
		"is_admin", isAdmin)

	return user, nil
}

// DeleteUser removes the target account and everything it owns. Admins
// cannot delete themselves, and the last admin account cannot be deleted.
func (s *Admin) DeleteUser(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return model.ErrSelfDelete
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if target.IsAdmin {
		others, err := s.users.CountOtherAdmins(ctx, targetID)
		if err != nil {
			return fmt.Errorf("failed to count other admins: %w", err)
		}
		if others == 0 {
			return model.ErrLastAdmin
		}
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}

	s.logger.Info("Admin service: user deleted",
		"actor_id", actorID,
		"user_id", targetID)

	return nil
}

// CreateResetLink issues a reset token on behalf of the target user and
// returns the ready-to-share reset URL.
func (s *Admin) CreateResetLink(ctx context.Context, targetID uuid.UUID) (string, error) {
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		return "", err
	}

	resetToken, err := s.resets.IssueResetToken(ctx, targetID)
	if err != nil {
		return "", err
	}

	return s.resets.ResetURL(resetToken), nil
}
