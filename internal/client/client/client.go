package client

import (
	"context"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
)

// TokenSource supplies the bearer token for outgoing requests.
// An empty token means the request is sent anonymously.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// AuthAPI is the subset of the gateway used by the session manager.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
	Me(ctx context.Context) (*models.User, error)
}

type Client interface {
	AuthAPI

	Listings(ctx context.Context, q models.ListingQuery) ([]models.Listing, error)
	FeaturedListings(ctx context.Context, limit int) ([]models.Listing, error)
	Listing(ctx context.Context, id models.ID) (*models.Listing, error)
	ListingsBySeller(ctx context.Context, sellerID models.ID) ([]models.Listing, error)
	CreateListing(ctx context.Context, in models.ListingInput) (*models.Listing, error)
	UpdateListing(ctx context.Context, id models.ID, in models.ListingInput) (*models.Listing, error)
	DeleteListing(ctx context.Context, id models.ID) error
	UploadImages(ctx context.Context, files []models.ImageFile) ([]string, error)

	User(ctx context.Context, id models.ID) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, id models.ID, in models.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, id models.ID, currentPassword, newPassword string) error

	SellerRatings(ctx context.Context, userID models.ID) ([]models.Rating, error)
	ProductRatings(ctx context.Context, productID models.ID) ([]models.Rating, error)
	SellerAverage(ctx context.Context, userID models.ID) (*models.RatingAverage, error)
	// CheckRatedSeller returns the existing rating, or nil when fromUserID
	// has not rated the seller yet.
	CheckRatedSeller(ctx context.Context, fromUserID, toUserID models.ID) (*models.Rating, error)
	CheckRatedProduct(ctx context.Context, fromUserID, productID models.ID) (*models.Rating, error)
	CreateRating(ctx context.Context, in models.RatingSubmission) (*models.Rating, error)
}

var _ Client = (*HTTPClient)(nil)
