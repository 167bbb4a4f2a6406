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

type listingService struct {
	api     client.Client
	session Session
	log     logging.Logger
}

func NewListingService(api client.Client, session Session, log logging.Logger) ListingService {
	return &listingService{api: api, session: session, log: log}
}

// ListingView is the state of the listing detail view.
type ListingView struct {
	scope   *Scope
	api     client.Client
	session Session

	listing        models.Listing
	seller         models.User
	productRatings []models.Rating
	sellerRatings  []models.Rating
	ratedProduct   bool
	ratedSeller    bool
}

// ListingSnapshot is a copy of a ListingView's state.
type ListingSnapshot struct {
	Listing        models.Listing
	Seller         models.User
	ProductRatings []models.Rating
	SellerRatings  []models.Rating
	RatedProduct   bool
	RatedSeller    bool
	ProductSummary ratings.Summary
	SellerSummary  ratings.Summary
}

// LoadListing fetches the listing, then its product and seller ratings in
// parallel and, for a signed-in user, whether they already rated either.
// Only the listing fetch is fatal; the others degrade to empty or not rated.
func (s *listingService) LoadListing(scope *Scope, id models.ID) (*ListingView, error) {
	ctx := scope.Context()

	listing, err := s.api.Listing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing %s: %w", id, err)
	}

	v := &ListingView{
		scope:          scope,
		api:            s.api,
		session:        s.session,
		listing:        *listing,
		productRatings: []models.Rating{},
		sellerRatings:  []models.Rating{},
	}
	sellerID := listing.SellerRef()
	if listing.Seller != nil {
		v.seller = *listing.Seller
	}
	v.seller.ID = sellerID

	user := s.session.CurrentUser()

	var g errgroup.Group
	g.Go(func() error {
		rs, err := s.api.ProductRatings(ctx, id)
		if err != nil {
			s.log.Warn(ctx, "product ratings unavailable", "listing", id, "error", err)
			return nil
		}
		scope.Apply(func() { v.productRatings = rs })
		return nil
	})
	if sellerID != "" {
		g.Go(func() error {
			rs, err := s.api.SellerRatings(ctx, sellerID)
			if err != nil {
				s.log.Warn(ctx, "seller ratings unavailable", "seller", sellerID, "error", err)
				return nil
			}
			scope.Apply(func() { v.sellerRatings = rs })
			return nil
		})
	}
	if user != nil {
		g.Go(func() error {
			r, err := s.api.CheckRatedProduct(ctx, user.ID, id)
			if err != nil {
				s.log.Debug(ctx, "product rating check failed", "error", err)
				return nil
			}
			scope.Apply(func() { v.ratedProduct = r != nil })
			return nil
		})
		if sellerID != "" {
			g.Go(func() error {
				r, err := s.api.CheckRatedSeller(ctx, user.ID, sellerID)
				if err != nil {
					s.log.Debug(ctx, "seller rating check failed", "error", err)
					return nil
				}
				scope.Apply(func() { v.ratedSeller = r != nil })
				return nil
			})
		}
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *ListingView) Snapshot() ListingSnapshot {
	var s ListingSnapshot
	v.scope.Read(func() {
		s = ListingSnapshot{
			Listing:        v.listing,
			Seller:         v.seller,
			ProductRatings: append([]models.Rating(nil), v.productRatings...),
			SellerRatings:  append([]models.Rating(nil), v.sellerRatings...),
			RatedProduct:   v.ratedProduct,
			RatedSeller:    v.ratedSeller,
			ProductSummary: ratings.Aggregate(v.productRatings),
			SellerSummary:  ratings.SellerScore(&v.seller, v.sellerRatings),
		}
	})
	return s
}

// CanRateProduct reports whether the current user may still rate the product.
func (v *ListingView) CanRateProduct() bool {
	if v.session.CurrentUser() == nil {
		return false
	}
	return !v.Snapshot().RatedProduct
}

// CanRateSeller reports whether the current user may still rate the seller.
func (v *ListingView) CanRateSeller() bool {
	user := v.session.CurrentUser()
	if user == nil {
		return false
	}
	s := v.Snapshot()
	return !s.RatedSeller && s.Seller.ID != "" && s.Seller.ID != user.ID
}

// SubmitProductRating posts a product rating and appends it locally.
func (v *ListingView) SubmitProductRating(ctx context.Context, score int, comment string) (*models.Rating, error) {
	user, err := v.precheck(score, func() bool { return v.ratedProduct })
	if err != nil {
		return nil, err
	}

	r, err := v.api.CreateRating(ctx, models.RatingSubmission{
		Type:      models.RatingProduct,
		ProductID: v.listing.ID,
		Rating:    score,
		Comment:   comment,
	})
	if err != nil {
		return nil, err
	}
	r = completeRating(r, models.RatingProduct, score, comment, user)

	v.scope.Apply(func() {
		v.productRatings = append(v.productRatings, *r)
		v.ratedProduct = true
	})
	return r, nil
}

// SubmitSellerRating posts a rating of the listing's seller and appends it
// locally. Sellers cannot rate themselves.
func (v *ListingView) SubmitSellerRating(ctx context.Context, score int, comment string) (*models.Rating, error) {
	user, err := v.precheck(score, func() bool { return v.ratedSeller })
	if err != nil {
		return nil, err
	}
	sellerID := v.seller.ID
	if sellerID == "" {
		return nil, ErrNoSeller
	}
	if sellerID == user.ID {
		return nil, ErrSelfRating
	}

	r, err := v.api.CreateRating(ctx, models.RatingSubmission{
		Type:     models.RatingSeller,
		ToUserID: sellerID,
		Rating:   score,
		Comment:  comment,
	})
	if err != nil {
		return nil, err
	}
	r = completeRating(r, models.RatingSeller, score, comment, user)

	v.scope.Apply(func() {
		v.sellerRatings = append(v.sellerRatings, *r)
		v.ratedSeller = true
	})
	return r, nil
}

func (v *ListingView) precheck(score int, rated func() bool) (*models.User, error) {
	user := v.session.CurrentUser()
	if user == nil {
		return nil, common.ErrNotAuthenticated
	}
	if err := ratings.Validate(score); err != nil {
		return nil, err
	}
	var already bool
	v.scope.Read(func() { already = rated() })
	if already {
		return nil, ErrAlreadyRated
	}
	return user, nil
}

// completeRating stamps the author's username on a freshly created rating
// and fills fields the server left out.
func completeRating(r *models.Rating, typ models.RatingType, score int, comment string, author *models.User) *models.Rating {
	out := *r
	out.FromUsername = author.Username
	if out.FromUserID == "" {
		out.FromUserID = author.ID
	}
	if out.Type == "" {
		out.Type = typ
	}
	if out.Rating == 0 {
		out.Rating = score
	}
	if out.Comment == "" {
		out.Comment = comment
	}
	return &out
}
