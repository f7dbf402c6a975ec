package model

import "errors"

// ErrNotFound is returned by stores when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// Authorization outcomes. The auth service converts every lower-level
// failure (codec, store, hash) into one of these before it reaches a
// handler; no infrastructure error crosses that boundary.
var (
	// ErrUnauthenticated means no bearer token was presented at all.
	// Kept distinct from ErrTokenInvalid so callers can prompt differently.
	ErrUnauthenticated = errors.New("missing authorization token")

	// ErrTokenInvalid means the token failed signature or expiry checks.
	ErrTokenInvalid = errors.New("invalid or expired token")

	// ErrSessionRevoked means the session record carries the revoked sentinel.
	ErrSessionRevoked = errors.New("session revoked")

	// ErrSessionMismatch means the session record names a different user
	// than the token claims. Should not happen in normal operation.
	ErrSessionMismatch = errors.New("session mismatch")
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately indistinguishable to avoid account enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken means an account with this email already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrResetTokenInvalid covers unknown, expired and already-consumed
	// reset tokens. Never reveals which.
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")

	// ErrForbidden means the caller is authenticated but not an admin.
	ErrForbidden = errors.New("admin access required")

	// ErrLastAdmin guards against demoting or deleting the only admin.
	ErrLastAdmin = errors.New("at least one admin account must remain")

	// ErrSelfDelete blocks admins from deleting their own account through
	// the admin surface.
	ErrSelfDelete = errors.New("cannot delete your own account")
)
