package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/openmarket/internal/client/client"
	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/common"
	"github.com/dmitrijs2005/openmarket/internal/logging"
	"golang.org/x/sync/errgroup"
)

type accountService struct {
	api     client.Client
	session Session
	log     logging.Logger
}

func NewAccountService(api client.Client, session Session, log logging.Logger) AccountService {
	return &accountService{api: api, session: session, log: log}
}

// Profile is the signed-in user's own page.
type Profile struct {
	User        models.User
	Listings    []models.Listing
	RatingCount int
}

// LoadProfile fetches the user's listings and received seller ratings.
// Either may fail independently and is then shown as empty.
func (s *accountService) LoadProfile(ctx context.Context) (*Profile, error) {
	user := s.session.CurrentUser()
	if user == nil {
		return nil, common.ErrNotAuthenticated
	}

	p := &Profile{User: *user, Listings: []models.Listing{}}

	var g errgroup.Group
	g.Go(func() error {
		ls, err := s.api.ListingsBySeller(ctx, user.ID)
		if err != nil {
			s.log.Warn(ctx, "own listings unavailable", "error", err)
			return nil
		}
		p.Listings = ls
		return nil
	})
	g.Go(func() error {
		rs, err := s.api.SellerRatings(ctx, user.ID)
		if err != nil {
			s.log.Warn(ctx, "received ratings unavailable", "error", err)
			return nil
		}
		p.RatingCount = len(rs)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProfile saves username, email and bio and refreshes the cached user.
func (s *accountService) UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error) {
	user := s.session.CurrentUser()
	if user == nil {
		return nil, common.ErrNotAuthenticated
	}
	if strings.TrimSpace(in.Username) == "" {
		return nil, fmt.Errorf("%w: username is required", common.ErrValidation)
	}

	updated, err := s.api.UpdateUser(ctx, user.ID, in)
	if err != nil {
		return nil, err
	}
	if updated.ID == "" {
		// the server answered without the user; apply the edit locally
		merged := *user
		merged.Username = in.Username
		merged.Email = in.Email
		merged.Bio = in.Bio
		updated = &merged
	}

	if err := s.session.UpdateCachedUser(ctx, *updated); err != nil {
		s.log.Warn(ctx, "failed to cache updated profile", "error", err)
	}
	return updated, nil
}

// ChangePassword checks the confirmation locally before calling the server.
func (s *accountService) ChangePassword(ctx context.Context, current, next, confirm string) error {
	user := s.session.CurrentUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}
	if next != confirm {
		return ErrPasswordMismatch
	}
	if next == "" {
		return fmt.Errorf("%w: new password is required", common.ErrValidation)
	}
	return s.api.ChangePassword(ctx, user.ID, current, next)
}
