package model

import "github.com/google/uuid"

// AuthContext is the identity carried by a validated bearer token. It is
// returned by the auth service and threaded explicitly through request
// handling; handlers never reach into ambient state for it.
type AuthContext struct {
	UserID  uuid.UUID
	Email   string
	IsAdmin bool
}
