package tokenstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/openmarket/internal/common"
	"github.com/dmitrijs2005/openmarket/internal/dbx"
)

// SQLiteStore keeps the session in the local metadata table under the
// openmarket_token and openmarket_user keys.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save writes token and user in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, token string, user models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.TokenStorageKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.UserStorageKey, userJSON)
	})
}

// Load returns ErrNoCredentials unless both keys are present. A stored user
// that no longer decodes is treated the same way.
func (s *SQLiteStore) Load(ctx context.Context) (*Credentials, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return nil, notFoundAsNoCredentials(err)
	}
	userJSON, err := repo.Get(ctx, common.UserStorageKey)
	if err != nil {
		return nil, notFoundAsNoCredentials(err)
	}
	if len(token) == 0 {
		return nil, ErrNoCredentials
	}

	var user models.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		return nil, fmt.Errorf("%w: stored user is corrupt: %v", ErrNoCredentials, err)
	}

	return &Credentials{Token: string(token), User: user}, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, common.TokenStorageKey, common.UserStorageKey)
}

func notFoundAsNoCredentials(err error) error {
	if errors.Is(err, metadata.ErrNotFound) {
		return ErrNoCredentials
	}
	return err
}
