package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/giftable/giftable-server/internal/model"
)

// Lifetime is the fixed validity window of an issued token. Tokens cannot
// be renewed, only reissued by a new login. Session records written next to
// a token use the same TTL so a revocation can never expire before the
// token it revokes.
const Lifetime = 7 * 24 * time.Hour

// Claims represents the signed payload of a bearer token.
type Claims struct {
	jwt.RegisteredClaims
	UserID  uuid.UUID `json:"user_id"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"is_admin"`
}

// Codec issues and validates signed bearer tokens backed by symmetric HMAC.
// Validation is a pure function of the token and the secret; it never
// consults any store.
type Codec struct {
	secretKey string
}

// NewCodec creates a new Codec with the provided signing secret.
func NewCodec(secretKey string) *Codec {
	return &Codec{secretKey: secretKey}
}

// Issue creates a signed token carrying the identity claims, valid for
// Lifetime from now. No side effects.
func (c *Codec) Issue(ac model.AuthContext) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(Lifetime)),
		},
		UserID:  ac.UserID,
		Email:   ac.Email,
		IsAdmin: ac.IsAdmin,
	})

	tokenString, err := token.SignedString([]byte(c.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Validate verifies signature and expiry and returns the embedded claims.
// Any failure, malformed structure, wrong signature or expired token, maps
// to model.ErrTokenInvalid.
func (c *Codec) Validate(tokenString string) (model.AuthContext, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(c.secretKey), nil
	})
	if err != nil {
		return model.AuthContext{}, fmt.Errorf("%w: %w", model.ErrTokenInvalid, err)
	}
	if !token.Valid {
		return model.AuthContext{}, model.ErrTokenInvalid
	}

	return model.AuthContext{
		UserID:  claims.UserID,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
	}, nil
}
