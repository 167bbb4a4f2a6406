package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/openmarket/internal/client/client"
	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/client/ratings"
	"github.com/dmitrijs2005/openmarket/internal/common"
	"github.com/dmitrijs2005/openmarket/internal/logging"
	"golang.org/x/sync/errgroup"
)

type storeService struct {
	api     client.Client
	session Session
	log     logging.Logger
}

func NewStoreService(api client.Client, session Session, log logging.Logger) StoreService {
	return &storeService{api: api, session: session, log: log}
}

// StoreView is the state of a seller's store page.
type StoreView struct {
	scope   *Scope
	api     client.Client
	session Session

	seller   models.User
	listings []models.Listing
	ratings  []models.Rating
	rated    bool
}

type StoreSnapshot struct {
	Seller   models.User
	Listings []models.Listing
	Ratings  []models.Rating
	Rated    bool
	OwnStore bool
	Summary  ratings.Summary
}

// LoadStore looks the seller up by username, then fetches their listings and
// received ratings in parallel. Listings carry the seller snapshot.
func (s *storeService) LoadStore(scope *Scope, username string) (*StoreView, error) {
	ctx := scope.Context()

	seller, err := s.api.UserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load store %q: %w", username, err)
	}

	v := &StoreView{
		scope:    scope,
		api:      s.api,
		session:  s.session,
		seller:   *seller,
		listings: []models.Listing{},
		ratings:  []models.Rating{},
	}
	user := s.session.CurrentUser()

	var g errgroup.Group
	g.Go(func() error {
		ls, err := s.api.ListingsBySeller(ctx, seller.ID)
		if err != nil {
			s.log.Warn(ctx, "seller listings unavailable", "seller", seller.ID, "error", err)
			return nil
		}
		for i := range ls {
			snap := *seller
			ls[i].Seller = &snap
		}
		scope.Apply(func() { v.listings = ls })
		return nil
	})
	g.Go(func() error {
		rs, err := s.api.SellerRatings(ctx, seller.ID)
		if err != nil {
			s.log.Warn(ctx, "seller ratings unavailable", "seller", seller.ID, "error", err)
			return nil
		}
		scope.Apply(func() { v.ratings = rs })
		return nil
	})
	if user != nil && user.ID != seller.ID {
		g.Go(func() error {
			r, err := s.api.CheckRatedSeller(ctx, user.ID, seller.ID)
			if err != nil {
				s.log.Debug(ctx, "seller rating check failed", "error", err)
				return nil
			}
			scope.Apply(func() { v.rated = r != nil })
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *StoreView) Snapshot() StoreSnapshot {
	user := v.session.CurrentUser()
	var s StoreSnapshot
	v.scope.Read(func() {
		s = StoreSnapshot{
			Seller:   v.seller,
			Listings: append([]models.Listing(nil), v.listings...),
			Ratings:  append([]models.Rating(nil), v.ratings...),
			Rated:    v.rated,
			OwnStore: user != nil && user.ID == v.seller.ID,
			Summary:  ratings.SellerScore(&v.seller, v.ratings),
		}
	})
	return s
}

// CanRate reports whether the current user may still rate this seller.
func (v *StoreView) CanRate() bool {
	if v.session.CurrentUser() == nil {
		return false
	}
	s := v.Snapshot()
	return !s.Rated && !s.OwnStore
}

// SubmitRating posts a rating of the store's seller and appends it locally.
func (v *StoreView) SubmitRating(ctx context.Context, score int, comment string) (*models.Rating, error) {
	user := v.session.CurrentUser()
	if user == nil {
		return nil, common.ErrNotAuthenticated
	}
	if err := ratings.Validate(score); err != nil {
		return nil, err
	}
	if user.ID == v.seller.ID {
		return nil, ErrSelfRating
	}
	var already bool
	v.scope.Read(func() { already = v.rated })
	if already {
		return nil, ErrAlreadyRated
	}

	r, err := v.api.CreateRating(ctx, models.RatingSubmission{
		Type:     models.RatingSeller,
		ToUserID: v.seller.ID,
		Rating:   score,
		Comment:  comment,
	})
	if err != nil {
		return nil, err
	}
	r = completeRating(r, models.RatingSeller, score, comment, user)

	v.scope.Apply(func() {
		v.ratings = append(v.ratings, *r)
		v.rated = true
	})
	return r, nil
}
