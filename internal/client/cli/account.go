package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/client/ratings"
	"github.com/dmitrijs2005/openmarket/internal/client/services"
	"github.com/dmitrijs2005/openmarket/internal/common"
)

// Profile prints the signed-in user's page: their card, listings and the
// number of ratings they received.
func (a *App) Profile(ctx context.Context) error {
	p, err := a.account.LoadProfile(ctx)
	if err != nil {
		return err
	}

	summary := ratings.SellerScore(&p.User, nil)
	summary.Count = p.RatingCount
	a.println(userCard(p.User, summary))
	if !p.User.Verified {
		a.println(mutedStyle.Render("Not verified yet. Type 'verify' to get the verified seller badge."))
	}
	a.println(section(fmt.Sprintf("My listings (%d)", len(p.Listings)), listingList(p.Listings)))
	return nil
}

// Settings edits username, email and bio. Empty answers keep the current
// values.
func (a *App) Settings(ctx context.Context) error {
	user := a.session.CurrentUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}

	var (
		in  models.ProfileUpdate
		err error
	)
	if in.Username, err = promptDefault(a.reader, "Username", user.Username, a.out); err != nil {
		return err
	}
	if in.Email, err = promptDefault(a.reader, "Email", user.Email, a.out); err != nil {
		return err
	}
	if in.Bio, err = promptDefault(a.reader, "Bio", user.Bio, a.out); err != nil {
		return err
	}

	updated, err := a.account.UpdateProfile(ctx, in)
	if err != nil {
		return err
	}
	a.println(okStyle.Render("Profile updated."))
	a.println(userCard(*updated, sellerSummary(*updated)))
	return nil
}

// Passwd changes the account password.
func (a *App) Passwd(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotAuthenticated
	}

	current, err := getPassword(a.reader, "Current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)
	next, err := getPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)
	confirm, err := getPassword(a.reader, "Confirm new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := a.account.ChangePassword(ctx, string(current), string(next), string(confirm)); err != nil {
		return err
	}
	a.println(okStyle.Render("Password changed."))
	return nil
}

// Verify shows the verified seller offer and simulates the checkout with
// the chosen payment method.
func (a *App) Verify(ctx context.Context, args []string) error {
	user := a.session.CurrentUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}
	if user.Verified {
		a.println(badgeStyle.Render("✓ Verified") + " Your account is already verified.")
		return nil
	}

	methods := []string{string(services.PaymentOzow), string(services.PaymentPayFast)}
	var method string
	if len(args) > 0 {
		method = strings.ToLower(args[0])
	} else {
		a.println(section("Get verified for "+services.VerificationFee, "  - "+strings.Join(services.VerificationBenefits, "\n  - ")))
		var err error
		if method, err = promptChoice(a.reader, "Payment method", methods, "", a.out); err != nil {
			return err
		}
	}

	q, err := a.account.GetVerified(ctx, services.PaymentMethod(method))
	if err != nil {
		return err
	}
	a.println(panelStyle.Render(q.Message))
	return nil
}
