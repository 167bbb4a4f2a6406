package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/openmarket/internal/client/client"
	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/client/tokenstore"
	"github.com/dmitrijs2005/openmarket/internal/common"
	"github.com/dmitrijs2005/openmarket/internal/logging"
)

type State int

const (
	StateInitializing State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Ready reports whether the initial restore has finished.
func (s State) Ready() bool { return s != StateInitializing }

type Manager struct {
	api   client.AuthAPI
	store tokenstore.Store
	log   logging.Logger

	onChange func(from, to State)

	mu    sync.RWMutex
	state State
	token string
	user  *models.User
	// generation is bumped by every login, register and logout;
	// revalidation results from an older generation are dropped.
	generation uint64

	startOnce   sync.Once
	revalidated chan struct{}
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithOnChange registers a callback invoked with the previous and the new
// state after a change. It runs outside the manager's lock.
func WithOnChange(fn func(from, to State)) Option {
	return func(m *Manager) { m.onChange = fn }
}

func NewManager(api client.AuthAPI, store tokenstore.Store, opts ...Option) *Manager {
	m := &Manager{
		api:         api,
		store:       store,
		log:         logging.Discard(),
		revalidated: make(chan struct{}),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Start restores the persisted session. With a stored token and user the
// manager becomes Authenticated immediately and checks /auth/me in the
// background; Revalidated is closed once that check is applied. Start only
// has an effect the first time it is called.
func (m *Manager) Start(ctx context.Context) {
	m.startOnce.Do(func() { m.start(ctx) })
}

func (m *Manager) start(ctx context.Context) {
	creds, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, tokenstore.ErrNoCredentials) {
			m.log.Warn(ctx, "failed to load stored session", "error", err)
		}
		m.transition(func() {
			if m.state == StateInitializing {
				m.state = StateAnonymous
			}
		})
		close(m.revalidated)
		return
	}

	var (
		gen      uint64
		restored bool
	)
	m.transition(func() {
		// a login may have raced ahead of the restore
		if m.state != StateInitializing {
			return
		}
		user := creds.User
		m.token = creds.Token
		m.user = &user
		m.state = StateAuthenticated
		gen = m.generation
		restored = true
	})
	if !restored {
		close(m.revalidated)
		return
	}
	m.log.Debug(ctx, "session restored", "user", creds.User.Username)

	go func() {
		defer close(m.revalidated)
		_ = m.revalidate(ctx, gen)
	}()
}

// Revalidated is closed when the startup check has been applied or skipped.
func (m *Manager) Revalidated() <-chan struct{} {
	return m.revalidated
}

// Refresh re-checks the current token against /auth/me with the same policy
// as the startup check: success replaces the cached user, failure signs out.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.RLock()
	authenticated := m.state == StateAuthenticated
	gen := m.generation
	m.mu.RUnlock()

	if !authenticated {
		return common.ErrNotAuthenticated
	}
	return m.revalidate(ctx, gen)
}

func (m *Manager) revalidate(ctx context.Context, gen uint64) error {
	user, err := m.api.Me(ctx)
	if err != nil && ctx.Err() != nil {
		// abandoned by the caller, not answered by the server
		return err
	}

	var (
		token   string
		applied bool
	)
	m.transition(func() {
		if m.generation != gen || m.state != StateAuthenticated {
			return
		}
		applied = true
		if err != nil {
			m.clearLocked()
			return
		}
		m.user = user
		token = m.token
	})

	if !applied {
		m.log.Debug(ctx, "stale session check ignored")
		return err
	}
	if err != nil {
		m.log.Info(ctx, "stored session rejected, signed out", "error", err)
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			m.log.Warn(ctx, "failed to clear stored session", "error", clearErr)
		}
		return err
	}

	if saveErr := m.store.Save(ctx, token, *user); saveErr != nil {
		m.log.Warn(ctx, "failed to persist refreshed user", "error", saveErr)
	}
	return nil
}

// Login authenticates with email and password. On failure the gateway error
// is returned unchanged and the session is left as it was.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	res, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return m.establish(ctx, res), nil
}

// Register creates an account of any registration type and signs in.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	res, err := m.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return m.establish(ctx, res), nil
}

func (m *Manager) establish(ctx context.Context, res *models.AuthResult) *models.User {
	user := res.User
	m.transition(func() {
		m.generation++
		m.token = res.Token
		m.user = &user
		m.state = StateAuthenticated
	})

	if err := m.store.Save(ctx, res.Token, user); err != nil {
		m.log.Warn(ctx, "failed to persist session", "error", err)
	}
	m.log.Info(ctx, "signed in", "user", user.Username)

	out := user
	return &out
}

// Logout clears the session in memory and in the store. It cannot fail;
// store errors are logged.
func (m *Manager) Logout(ctx context.Context) {
	m.transition(func() {
		m.generation++
		m.clearLocked()
	})
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear stored session", "error", err)
	}
}

// UpdateCachedUser replaces the cached profile, e.g. after a settings change.
// The token is kept.
func (m *Manager) UpdateCachedUser(ctx context.Context, user models.User) error {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return common.ErrNotAuthenticated
	}
	m.user = &user
	token := m.token
	m.mu.Unlock()

	if err := m.store.Save(ctx, token, user); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}
	return nil
}

// CurrentUser returns a copy of the cached user, or nil when anonymous.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Token implements client.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) IsAuthenticated() bool {
	return m.State() == StateAuthenticated
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

func (m *Manager) clearLocked() {
	m.token = ""
	m.user = nil
	m.state = StateAnonymous
}

// transition runs fn under the lock and reports a state change afterwards.
func (m *Manager) transition(fn func()) {
	m.mu.Lock()
	before := m.state
	fn()
	after := m.state
	m.mu.Unlock()

	if m.onChange != nil && before != after {
		m.onChange(before, after)
	}
}

var _ client.TokenSource = (*Manager)(nil)
