package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/client/services"
	"github.com/dmitrijs2005/openmarket/internal/common"
	"github.com/dmitrijs2005/openmarket/internal/filex"
)

// readImages loads the image files at paths. Size and type are checked again
// by the listing service; the read limit only avoids loading huge files.
func readImages(paths []string) ([]models.ImageFile, error) {
	images := make([]models.ImageFile, 0, len(paths))
	for _, p := range paths {
		data, ct, err := filex.ReadLimited(p, services.MaxImageBytes)
		if err != nil {
			if errors.Is(err, filex.ErrTooLarge) {
				return nil, fmt.Errorf("%w: %s is larger than %d MB", common.ErrValidation, p, services.MaxImageBytes>>20)
			}
			return nil, err
		}
		images = append(images, models.ImageFile{Name: filepath.Base(p), ContentType: ct, Data: data})
	}
	return images, nil
}

func (a *App) promptPrice(def string) (float64, error) {
	for {
		v, err := promptDefault(a.reader, "Price (R)", def, a.out)
		if err != nil {
			return 0, err
		}
		price, err := strconv.ParseFloat(strings.TrimPrefix(v, "R"), 64)
		if err == nil && price >= 0 && !math.IsInf(price, 0) {
			return price, nil
		}
		a.println("Please enter a price of 0 or more")
	}
}

// CreateListing prompts for a new listing and publishes it.
func (a *App) CreateListing(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotAuthenticated
	}

	var (
		d   services.ListingDraft
		err error
	)
	if d.Title, err = promptRequired(a.reader, "Title", a.out); err != nil {
		return err
	}
	if d.Price, err = a.promptPrice(""); err != nil {
		return err
	}
	if d.Category, err = promptChoice(a.reader, "Category", models.Categories, "", a.out); err != nil {
		return err
	}
	if d.Description, err = getSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}
	paths, err := promptRequired(a.reader, fmt.Sprintf("Image files, comma separated (up to %d)", services.MaxImages), a.out)
	if err != nil {
		return err
	}
	if d.Images, err = readImages(splitList(paths)); err != nil {
		return err
	}

	l, err := a.listings.CreateListing(ctx, d)
	if err != nil {
		return err
	}
	a.println(okStyle.Render("Listing published!"))
	a.println(listingRow(*l))
	return nil
}

// listingForEdit returns the listing with the given id, or the one in the
// open view when id is empty.
func (a *App) listingForEdit(ctx context.Context, id string) (*services.ListingView, error) {
	if v := a.currentListing(); v != nil && (id == "" || v.Snapshot().Listing.ID.String() == id) {
		return v, nil
	}
	if id == "" {
		return nil, usageError("edit-listing <listing-id>")
	}
	scope := a.openView(ctx)
	v, err := a.listings.LoadListing(scope, models.ID(id))
	if err != nil {
		return nil, err
	}
	a.mu.Lock()
	if a.scope == scope {
		a.listingView = v
	}
	a.mu.Unlock()
	return v, nil
}

// EditListing edits one of the user's own listings. Empty answers keep the
// current values.
func (a *App) EditListing(ctx context.Context, args []string) error {
	user := a.session.CurrentUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}
	var id string
	if len(args) > 0 {
		id = args[0]
	}
	v, err := a.listingForEdit(ctx, id)
	if err != nil {
		return err
	}
	s := v.Snapshot()
	l := s.Listing
	if s.Seller.ID != user.ID {
		return errors.New("you can only edit your own listings")
	}

	in := models.ListingInput{Images: l.Images}
	if in.Title, err = promptDefault(a.reader, "Title", l.Title, a.out); err != nil {
		return err
	}
	if in.Price, err = a.promptPrice(strconv.FormatFloat(l.Price, 'f', -1, 64)); err != nil {
		return err
	}
	if in.Category, err = promptChoice(a.reader, "Category", models.Categories, l.Category, a.out); err != nil {
		return err
	}
	if in.Description, err = promptDefault(a.reader, "Description", l.Description, a.out); err != nil {
		return err
	}

	updated, err := a.listings.UpdateListing(ctx, l.ID, in)
	if err != nil {
		return err
	}
	a.println(okStyle.Render("Listing updated."))
	if updated.ID == "" {
		updated.ID = l.ID
	}
	a.println(listingRow(*updated))
	return nil
}

// DeleteListing removes a listing after confirmation.
func (a *App) DeleteListing(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("delete-listing <listing-id>")
	}
	if !a.isLoggedIn() {
		return common.ErrNotAuthenticated
	}
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete listing %s? Type 'yes' to confirm", args[0]), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		a.println("Nothing deleted.")
		return nil
	}

	if err := a.listings.DeleteListing(ctx, models.ID(args[0])); err != nil {
		return err
	}
	if v := a.currentListing(); v != nil && v.Snapshot().Listing.ID.String() == args[0] {
		a.closeView()
	}
	a.println(okStyle.Render("Listing deleted."))
	return nil
}
