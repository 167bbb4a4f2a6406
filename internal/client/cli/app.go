package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/openmarket/internal/client/client"
	"github.com/dmitrijs2005/openmarket/internal/client/config"
	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/client/services"
	"github.com/dmitrijs2005/openmarket/internal/client/session"
	"github.com/dmitrijs2005/openmarket/internal/client/tokenstore"
	"github.com/dmitrijs2005/openmarket/internal/logging"

	_ "modernc.org/sqlite"
)

// authSession is the part of the session manager the commands use.
type authSession interface {
	Start(ctx context.Context)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Logout(ctx context.Context)
	Refresh(ctx context.Context) error
	CurrentUser() *models.User
	Token() string
	State() session.State
}

type App struct {
	config   *config.Config
	db       *sql.DB
	log      logging.Logger
	session  authSession
	listings services.ListingService
	stores   services.StoreService
	account  services.AccountService
	reader   *bufio.Reader
	out      io.Writer

	// loggingOut suppresses the expiry notice while the user logs out.
	loggingOut atomic.Bool

	mu          sync.Mutex
	scope       *services.Scope
	listingView *services.ListingView
	storeView   *services.StoreView
}

// NewApp wires the local store, the API client, the session manager and the
// view services. With cfg.Ephemeral the session is kept in memory only.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	var (
		db    *sql.DB
		store tokenstore.Store
	)
	if cfg.Ephemeral {
		store = tokenstore.NewMemoryStore()
	} else {
		var err error
		db, err = client.InitDatabase(ctx, cfg.DatabasePath)
		if err != nil {
			log.Error(ctx, "error initializing database", "path", cfg.DatabasePath, "error", err)
			return nil, err
		}
		store = tokenstore.NewSQLiteStore(db)
	}

	api := client.NewHTTPClient(cfg.APIBaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log),
	)

	a := assemble(api, store, log, bufio.NewReader(os.Stdin), os.Stdout)
	a.config = cfg
	a.db = db
	return a, nil
}

// assemble builds an App around an API client and a token store.
func assemble(api *client.HTTPClient, store tokenstore.Store, log logging.Logger, in *bufio.Reader, out io.Writer) *App {
	a := &App{log: log, reader: in, out: out}

	sess := session.NewManager(api, store,
		session.WithLogger(log),
		session.WithOnChange(a.onSessionChange),
	)
	api.SetTokenSource(sess)

	a.session = sess
	a.listings = services.NewListingService(api, sess, log)
	a.stores = services.NewStoreService(api, sess, log)
	a.account = services.NewAccountService(api, sess, log)
	return a
}

// Run restores the saved session and runs the REPL until the user exits or
// ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Start(ctx)
	printlnFn("Welcome to OpenMarket (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}

// Close ends the open view and releases the local database.
func (a *App) Close() {
	a.closeView()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "failed to close database", "error", err)
		}
		a.db = nil
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.StateAuthenticated
}

func (a *App) status() string {
	if u := a.session.CurrentUser(); u != nil {
		return u.Username
	}
	return a.session.State().String()
}

// onSessionChange reports a signed-in session that was dropped by
// revalidation. Startup without a saved session and logouts issued by the
// user are not reported.
func (a *App) onSessionChange(from, to session.State) {
	if from == session.StateAuthenticated && to == session.StateAnonymous && !a.loggingOut.Load() {
		printlnFn(warnStyle.Render("Your saved session is no longer valid. Please log in again."))
	}
}

// openView closes the current view, cancelling its requests, and starts a
// new scope for the next one.
func (a *App) openView(ctx context.Context) *services.Scope {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.scope != nil {
		a.scope.Close()
	}
	a.scope = services.NewScope(ctx)
	a.listingView = nil
	a.storeView = nil
	return a.scope
}

func (a *App) closeView() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.scope != nil {
		a.scope.Close()
		a.scope = nil
	}
	a.listingView = nil
	a.storeView = nil
}

func (a *App) currentListing() *services.ListingView {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listingView
}

func (a *App) currentStore() *services.StoreView {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.storeView
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
