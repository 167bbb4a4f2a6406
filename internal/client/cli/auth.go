package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/client/tokeninfo"
	"github.com/dmitrijs2005/openmarket/internal/common"
)

// Register asks for the account type and the fields it needs, then creates
// the account and signs in. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	kind, err := promptChoice(a.reader, "Account type",
		[]string{string(models.RegistrationQuick), string(models.RegistrationFull), string(models.RegistrationCompany)},
		string(models.RegistrationQuick), a.out)
	if err != nil {
		return err
	}

	email, err := promptRequired(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := a.newPassword("Choose password", "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	var req models.RegisterRequest
	switch models.RegistrationType(kind) {
	case models.RegistrationCompany:
		c, err := a.promptCompany(email)
		if err != nil {
			return err
		}
		req = models.CompanyRegistration(email, string(password), c)
	case models.RegistrationFull:
		p, err := a.promptPerson()
		if err != nil {
			return err
		}
		id, err := a.promptIdentity(p.Area)
		if err != nil {
			return err
		}
		req = models.FullRegistration(email, string(password), p, id)
	default:
		p, err := a.promptPerson()
		if err != nil {
			return err
		}
		req = models.QuickRegistration(email, string(password), p)
	}

	user, err := a.session.Register(ctx, req)
	if err != nil {
		return err
	}
	a.println(okStyle.Render(fmt.Sprintf("Welcome, %s! Your account was created.", user.Username)))
	return nil
}

// newPassword reads a password twice and requires both entries to match.
func (a *App) newPassword(prompt, confirmPrompt string) ([]byte, error) {
	pw, err := getPassword(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	confirm, err := getPassword(a.reader, confirmPrompt, a.out)
	if err != nil {
		common.WipeByteArray(pw)
		return nil, err
	}
	defer common.WipeByteArray(confirm)

	if len(pw) == 0 {
		common.WipeByteArray(pw)
		return nil, fmt.Errorf("%w: password is required", common.ErrValidation)
	}
	if string(pw) != string(confirm) {
		common.WipeByteArray(pw)
		return nil, fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}
	return pw, nil
}

func (a *App) promptPerson() (models.Person, error) {
	var (
		p   models.Person
		err error
	)
	if p.Name, err = promptRequired(a.reader, "First name", a.out); err != nil {
		return p, err
	}
	if p.MiddleName, err = getSimpleText(a.reader, "Middle name (optional)", a.out); err != nil {
		return p, err
	}
	if p.Surname, err = promptRequired(a.reader, "Surname", a.out); err != nil {
		return p, err
	}
	if p.Age, err = promptInt(a.reader, "Age (optional)", true, a.out); err != nil {
		return p, err
	}
	if p.Area, err = promptRequired(a.reader, "Area", a.out); err != nil {
		return p, err
	}
	return p, nil
}

func (a *App) promptIdentity(area string) (models.Identity, error) {
	var (
		id  models.Identity
		err error
	)
	if id.CellNumber, err = promptRequired(a.reader, "Cell number", a.out); err != nil {
		return id, err
	}
	if id.IDType, err = promptChoice(a.reader, "Identity document",
		[]string{models.IDTypeNational, models.IDTypePassport}, models.IDTypeNational, a.out); err != nil {
		return id, err
	}
	if id.IDType == models.IDTypePassport {
		id.PassportNumber, err = promptRequired(a.reader, "Passport number", a.out)
	} else {
		id.IDNumber, err = promptRequired(a.reader, "ID number", a.out)
	}
	if err != nil {
		return id, err
	}
	if id.Location, err = promptDefault(a.reader, "Location", area, a.out); err != nil {
		return id, err
	}
	if id.IDFileName, err = getSimpleText(a.reader, "ID document file name (optional)", a.out); err != nil {
		return id, err
	}
	return id, nil
}

func (a *App) promptCompany(email string) (models.Company, error) {
	var (
		c   models.Company
		err error
	)
	if c.Name, err = promptRequired(a.reader, "Company name", a.out); err != nil {
		return c, err
	}
	if c.Number, err = promptRequired(a.reader, "Company registration number", a.out); err != nil {
		return c, err
	}
	if c.Contact, err = promptRequired(a.reader, "Contact number", a.out); err != nil {
		return c, err
	}
	if c.Address, err = promptRequired(a.reader, "Address", a.out); err != nil {
		return c, err
	}
	if c.Email, err = promptDefault(a.reader, "Company email", email, a.out); err != nil {
		return c, err
	}
	if c.Website, err = getSimpleText(a.reader, "Website (optional)", a.out); err != nil {
		return c, err
	}
	return c, nil
}

// Login prompts for credentials and signs in. On failure the session is
// left as it was.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		a.log.Info(ctx, "login unsuccessful", "error", err)
		return err
	}
	a.log.Info(ctx, "login successful", "user", user.ID)
	a.println(okStyle.Render("Welcome back, " + user.Username + "!"))
	return nil
}

// Logout forgets the session and closes the open view.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return common.ErrNotAuthenticated
	}
	a.loggingOut.Store(true)
	a.session.Logout(ctx)
	a.loggingOut.Store(false)

	a.closeView()
	a.println("Logged out.")
	return nil
}

// WhoAmI prints the cached user and what the session token says about
// itself.
func (a *App) WhoAmI(ctx context.Context) error {
	user := a.session.CurrentUser()
	if user == nil {
		return common.ErrNotAuthenticated
	}
	a.println(userCard(*user, sellerSummary(*user)))
	a.printf("User ID: %s\n", user.ID)

	info, err := tokeninfo.Inspect(a.session.Token())
	switch {
	case errors.Is(err, tokeninfo.ErrOpaqueToken):
		a.println(mutedStyle.Render("Session token: opaque"))
	case err != nil:
		return err
	default:
		if !info.IssuedAt.IsZero() {
			a.printf("Signed in: %s\n", info.IssuedAt.Local().Format(time.DateTime))
		}
		switch {
		case info.ExpiresAt.IsZero():
			a.println("Session token does not expire")
		case info.Expired(time.Now()):
			a.println(warnStyle.Render("Session token expired at " + info.ExpiresAt.Local().Format(time.DateTime)))
		default:
			a.printf("Session token expires: %s\n", info.ExpiresAt.Local().Format(time.DateTime))
		}
	}
	return nil
}

// Refresh asks the server to confirm the session. A rejected session is
// cleared.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.session.Refresh(ctx); err != nil {
		return err
	}
	if u := a.session.CurrentUser(); u != nil {
		a.println(okStyle.Render("Session is valid for " + u.Username))
	}
	return nil
}
