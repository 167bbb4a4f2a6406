// Package tokenstore persists the authenticated session (token and cached
// user profile) between runs of the client.
package tokenstore

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
)

// ErrNoCredentials is returned by Load when no complete session is stored.
var ErrNoCredentials = errors.New("no stored credentials")

// Credentials is a persisted session. Both fields are always set.
type Credentials struct {
	Token string
	User  models.User
}

// Store keeps at most one session. Save overwrites, Clear is idempotent.
type Store interface {
	Save(ctx context.Context, token string, user models.User) error
	Load(ctx context.Context) (*Credentials, error)
	Clear(ctx context.Context) error
}
