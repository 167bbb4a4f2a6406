package services

import (
	"cmp"
	"context"
	"slices"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
)

// AllCategories is the category filter value meaning no filter.
const AllCategories = "All"

// DefaultFeaturedLimit is the number of listings on the home page.
const DefaultFeaturedLimit = 6

type BrowseQuery struct {
	Search   string
	Category string
	Sort     string
}

// Browse searches the marketplace. Price orders are also applied locally,
// since not every backend honours them.
func (s *listingService) Browse(ctx context.Context, q BrowseQuery) ([]models.Listing, error) {
	query := models.ListingQuery{Search: q.Search, Sort: q.Sort}
	if q.Category != AllCategories {
		query.Category = q.Category
	}
	if query.Sort == "" {
		query.Sort = models.SortNewest
	}

	ls, err := s.api.Listings(ctx, query)
	if err != nil {
		return nil, err
	}
	sortByPrice(ls, query.Sort)
	return ls, nil
}

func sortByPrice(ls []models.Listing, order string) {
	switch order {
	case models.SortPriceLow:
		slices.SortStableFunc(ls, func(a, b models.Listing) int { return cmp.Compare(a.Price, b.Price) })
	case models.SortPriceHigh:
		slices.SortStableFunc(ls, func(a, b models.Listing) int { return cmp.Compare(b.Price, a.Price) })
	}
}

func (s *listingService) Featured(ctx context.Context, limit int) ([]models.Listing, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	return s.api.FeaturedListings(ctx, limit)
}
