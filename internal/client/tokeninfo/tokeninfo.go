// Package tokeninfo reads the claims of a session token for display.
//
// The signature is not verified: the client has no key and the server
// remains the only authority on validity. Tokens that are not JWTs are
// reported as opaque.
package tokeninfo

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrOpaqueToken = errors.New("token is not a JWT")

// Claims are the session token fields worth showing to the user.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
}

type Info struct {
	Subject   string
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time // zero when the token does not expire
}

// Inspect decodes the token's claims without verifying its signature.
func Inspect(token string) (*Info, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpaqueToken, err)
	}

	info := &Info{
		Subject: claims.Subject,
		UserID:  claims.UserID,
		Email:   claims.Email,
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// Expired reports whether the token's expiry is before now.
func (i *Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && i.ExpiresAt.Before(now)
}
