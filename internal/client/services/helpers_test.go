package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/openmarket/internal/client/client"
	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/logging"
)

// ---- fake session ----

type fakeSession struct {
	mu   sync.Mutex
	user *models.User

	UpdateErr      error
	LastCachedUser *models.User
}

func (f *fakeSession) CurrentUser() *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.user == nil {
		return nil
	}
	u := *f.user
	return &u
}

func (f *fakeSession) UpdateCachedUser(_ context.Context, user models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastCachedUser = &user
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	f.user = &user
	return nil
}

func signedIn(id models.ID, username string) *fakeSession {
	return &fakeSession{user: &models.User{ID: id, Username: username}}
}

func anonymous() *fakeSession { return &fakeSession{} }

// ---- fake backend ----

type route struct {
	status int
	body   any
	drop   bool
}

// backend serves canned JSON per "METHOD /path" and records request bodies.
type backend struct {
	mu      sync.Mutex
	routes  map[string]route
	bodies  map[string][]byte
	queries map[string]string
	hits    map[string]int
}

func newBackend(t *testing.T) (*backend, *client.HTTPClient) {
	t.Helper()
	b := &backend{routes: map[string]route{}, bodies: map[string][]byte{}, queries: map[string]string{}, hits: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(srv.Close)
	return b, client.NewHTTPClient(srv.URL + "/api")
}

func (b *backend) on(method, path string, status int, body any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = route{status: status, body: body}
}

// drop makes the route close the connection without a response.
func (b *backend) drop(method, path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = route{drop: true}
}

func (b *backend) body(method, path string) map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	var m map[string]any
	_ = json.Unmarshal(b.bodies[method+" "+path], &m)
	return m
}

func (b *backend) query(method, path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queries[method+" "+path]
}

func (b *backend) hitCount(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[method+" "+path]
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	buf, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.hits[key]++
	b.bodies[key] = buf
	b.queries[key] = r.URL.RawQuery
	rt, ok := b.routes[key]
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "no route " + key})
		return
	}
	if rt.drop {
		if conn, _, err := http.NewResponseController(w).Hijack(); err == nil {
			_ = conn.Close()
		}
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rt.status)
	if rt.body != nil {
		_ = json.NewEncoder(w).Encode(rt.body)
	}
}

func discard() logging.Logger { return logging.Discard() }
