package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/openmarket/internal/client/client"
	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/client/ratings"
	"github.com/dmitrijs2005/openmarket/internal/client/services"
)

var sortOrders = []string{models.SortNewest, models.SortPriceLow, models.SortPriceHigh}

// parseBrowseArgs reads "category=X" and "sort=Y" tokens; the remaining
// words form the search text.
func parseBrowseArgs(args []string) (services.BrowseQuery, error) {
	var (
		q     services.BrowseQuery
		words []string
	)
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			words = append(words, arg)
			continue
		}
		switch key {
		case "category":
			q.Category = value
		case "sort":
			if !slices.Contains(sortOrders, value) {
				return q, usageError("browse [words] [category=<name>] [sort=" + strings.Join(sortOrders, "|") + "]")
			}
			q.Sort = value
		default:
			words = append(words, arg)
		}
	}
	q.Search = strings.Join(words, " ")
	return q, nil
}

// Browse searches the marketplace.
func (a *App) Browse(ctx context.Context, args []string) error {
	q, err := parseBrowseArgs(args)
	if err != nil {
		return err
	}
	ls, err := a.listings.Browse(ctx, q)
	if err != nil {
		return err
	}
	a.println(section(fmt.Sprintf("Marketplace (%d)", len(ls)), listingList(ls)))
	return nil
}

// Featured prints the newest listings shown on the home page.
func (a *App) Featured(ctx context.Context) error {
	ls, err := a.listings.Featured(ctx, services.DefaultFeaturedLimit)
	if err != nil {
		return err
	}
	a.println(section("Featured listings", listingList(ls)))
	return nil
}

// Show opens the listing detail view.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("show <listing-id>")
	}

	scope := a.openView(ctx)
	v, err := a.listings.LoadListing(scope, models.ID(args[0]))
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return fmt.Errorf("listing %s not found", args[0])
		}
		return err
	}

	a.mu.Lock()
	if a.scope == scope {
		a.listingView = v
	}
	a.mu.Unlock()

	a.renderListing(v)
	return nil
}

func (a *App) renderListing(v *services.ListingView) {
	s := v.Snapshot()
	l := s.Listing

	a.println(titleStyle.Render(l.Title))
	a.printf("%s  %s\n", priceStyle.Render(formatPrice(l.Price)), mutedStyle.Render(l.Category))
	if l.Description != "" {
		a.println(l.Description)
	}
	for _, img := range l.Images {
		a.println(mutedStyle.Render("image: " + img))
	}
	a.println()

	a.println(section("Product rating", ratingLine(s.ProductSummary)))
	a.println(ratingList(s.ProductRatings))
	a.println()
	a.println(section("Seller: "+sellerName(s.Seller), ratingLine(s.SellerSummary)))
	a.println(ratingList(s.SellerRatings))

	if a.isLoggedIn() {
		var hints []string
		if v.CanRateProduct() {
			hints = append(hints, "rate-product <1-5> [comment]")
		}
		if v.CanRateSeller() {
			hints = append(hints, "rate-seller <1-5> [comment]")
		}
		if len(hints) > 0 {
			a.println(mutedStyle.Render("You can " + strings.Join(hints, " or ")))
		}
	}
}

// Store opens a seller's store view.
func (a *App) Store(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("store <username>")
	}

	scope := a.openView(ctx)
	v, err := a.stores.LoadStore(scope, args[0])
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return fmt.Errorf("seller %q not found", args[0])
		}
		return err
	}

	a.mu.Lock()
	if a.scope == scope {
		a.storeView = v
	}
	a.mu.Unlock()

	a.renderStore(v)
	return nil
}

func (a *App) renderStore(v *services.StoreView) {
	s := v.Snapshot()
	a.println(userCard(s.Seller, s.Summary))
	a.println(section(fmt.Sprintf("Listings (%d)", len(s.Listings)), listingList(s.Listings)))
	a.println()
	a.println(section("Reviews", ratingList(s.Ratings)))
	if v.CanRate() {
		a.println(mutedStyle.Render("You can rate-store <1-5> [comment]"))
	}
}

// parseRatingArgs reads "<score> [comment...]"; with no arguments the score
// and comment are prompted for.
func (a *App) parseRatingArgs(args []string, usage string) (int, string, error) {
	if len(args) == 0 {
		a.println(mutedStyle.Render("1 Poor, 2 Fair, 3 Good, 4 Very Good, 5 Excellent"))
		score, err := promptInt(a.reader, "Your rating (1-5)", false, a.out)
		if err != nil {
			return 0, "", err
		}
		comment, err := getSimpleText(a.reader, "Comment (optional)", a.out)
		if err != nil {
			return 0, "", err
		}
		return score, comment, nil
	}
	score, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, "", usageError(usage)
	}
	return score, strings.Join(args[1:], " "), nil
}

func (a *App) ratingSubmitted(r *models.Rating, summary ratings.Summary) {
	a.println(okStyle.Render(fmt.Sprintf("Thanks! You rated %d (%s).", r.Rating, ratings.Label(r.Rating))))
	a.println(ratingLine(summary))
}

// RateProduct rates the product of the open listing view.
func (a *App) RateProduct(ctx context.Context, args []string) error {
	v := a.currentListing()
	if v == nil {
		return errors.New("open a listing with 'show <id>' first")
	}
	score, comment, err := a.parseRatingArgs(args, "rate-product <1-5> [comment]")
	if err != nil {
		return err
	}
	r, err := v.SubmitProductRating(ctx, score, comment)
	if err != nil {
		return err
	}
	a.ratingSubmitted(r, v.Snapshot().ProductSummary)
	return nil
}

// RateSeller rates the seller of the open listing view.
func (a *App) RateSeller(ctx context.Context, args []string) error {
	v := a.currentListing()
	if v == nil {
		return errors.New("open a listing with 'show <id>' first")
	}
	score, comment, err := a.parseRatingArgs(args, "rate-seller <1-5> [comment]")
	if err != nil {
		return err
	}
	r, err := v.SubmitSellerRating(ctx, score, comment)
	if err != nil {
		return err
	}
	a.ratingSubmitted(r, v.Snapshot().SellerSummary)
	return nil
}

// RateStore rates the seller of the open store view.
func (a *App) RateStore(ctx context.Context, args []string) error {
	v := a.currentStore()
	if v == nil {
		return errors.New("open a store with 'store <username>' first")
	}
	score, comment, err := a.parseRatingArgs(args, "rate-store <1-5> [comment]")
	if err != nil {
		return err
	}
	r, err := v.SubmitRating(ctx, score, comment)
	if err != nil {
		return err
	}
	a.ratingSubmitted(r, v.Snapshot().Summary)
	return nil
}

// sellerSummary is the server-side score of a user with no ratings loaded.
func sellerSummary(u models.User) ratings.Summary {
	return ratings.SellerScore(&u, nil)
}
