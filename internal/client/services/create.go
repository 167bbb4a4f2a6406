package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/common"
)

const (
	MaxImages     = 10
	MaxImageBytes = 5 << 20
)

// ListingDraft is a new listing as entered by the user.
type ListingDraft struct {
	Title       string
	Price       float64
	Category    string
	Description string
	Images      []models.ImageFile
}

func validateListing(title string, price float64, category string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return fmt.Errorf("%w: price must be a number", common.ErrValidation)
	}
	if price < 0 {
		return fmt.Errorf("%w: price must not be negative", common.ErrValidation)
	}
	if !slices.Contains(models.Categories, category) {
		return fmt.Errorf("%w: category must be one of %s", common.ErrValidation, strings.Join(models.Categories, ", "))
	}
	return nil
}

func validateImages(images []models.ImageFile) error {
	if len(images) == 0 {
		return fmt.Errorf("%w: add at least one image", common.ErrValidation)
	}
	if len(images) > MaxImages {
		return fmt.Errorf("%w: at most %d images", common.ErrValidation, MaxImages)
	}
	for _, img := range images {
		if !strings.HasPrefix(img.ContentType, "image/") {
			return fmt.Errorf("%w: %s is not an image", common.ErrValidation, img.Name)
		}
		if len(img.Data) > MaxImageBytes {
			return fmt.Errorf("%w: %s is larger than %d MB", common.ErrValidation, img.Name, MaxImageBytes>>20)
		}
	}
	return nil
}

// CreateListing uploads the draft's images and creates the listing. When the
// upload fails or returns nothing, the images are embedded as data URLs.
func (s *listingService) CreateListing(ctx context.Context, draft ListingDraft) (*models.Listing, error) {
	if s.session.CurrentUser() == nil {
		return nil, common.ErrNotAuthenticated
	}
	if err := validateListing(draft.Title, draft.Price, draft.Category); err != nil {
		return nil, err
	}
	if err := validateImages(draft.Images); err != nil {
		return nil, err
	}

	urls, err := s.api.UploadImages(ctx, draft.Images)
	if err != nil {
		s.log.Warn(ctx, "image upload failed, embedding images", "error", err)
	}
	if len(urls) == 0 {
		urls = make([]string, len(draft.Images))
		for i, img := range draft.Images {
			urls[i] = DataURL(img)
		}
	}

	return s.api.CreateListing(ctx, models.ListingInput{
		Title:       draft.Title,
		Price:       draft.Price,
		Category:    draft.Category,
		Description: draft.Description,
		Images:      urls,
	})
}

// DataURL encodes an image as an RFC 2397 data URL.
func DataURL(img models.ImageFile) string {
	return "data:" + img.ContentType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

func (s *listingService) UpdateListing(ctx context.Context, id models.ID, in models.ListingInput) (*models.Listing, error) {
	if s.session.CurrentUser() == nil {
		return nil, common.ErrNotAuthenticated
	}
	if err := validateListing(in.Title, in.Price, in.Category); err != nil {
		return nil, err
	}
	return s.api.UpdateListing(ctx, id, in)
}

func (s *listingService) DeleteListing(ctx context.Context, id models.ID) error {
	if s.session.CurrentUser() == nil {
		return common.ErrNotAuthenticated
	}
	return s.api.DeleteListing(ctx, id)
}
