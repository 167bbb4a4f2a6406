package services

import (
	"context"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
)

// Session is the part of the session manager the views depend on.
type Session interface {
	CurrentUser() *models.User
	UpdateCachedUser(ctx context.Context, user models.User) error
}

// ListingService drives the marketplace, listing detail and listing
// management views.
type ListingService interface {
	Browse(ctx context.Context, q BrowseQuery) ([]models.Listing, error)
	Featured(ctx context.Context, limit int) ([]models.Listing, error)
	LoadListing(scope *Scope, id models.ID) (*ListingView, error)
	CreateListing(ctx context.Context, draft ListingDraft) (*models.Listing, error)
	UpdateListing(ctx context.Context, id models.ID, in models.ListingInput) (*models.Listing, error)
	DeleteListing(ctx context.Context, id models.ID) error
}

// StoreService drives the seller store view.
type StoreService interface {
	LoadStore(scope *Scope, username string) (*StoreView, error)
}

// AccountService drives the profile, settings and verification views.
type AccountService interface {
	LoadProfile(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, current, next, confirm string) error
	GetVerified(ctx context.Context, method PaymentMethod) (*VerificationQuote, error)
}
