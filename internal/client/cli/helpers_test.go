package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/openmarket/internal/client/client"
	"github.com/dmitrijs2005/openmarket/internal/client/models"
	"github.com/dmitrijs2005/openmarket/internal/client/tokenstore"
	"github.com/dmitrijs2005/openmarket/internal/logging"
	"github.com/stretchr/testify/require"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

// capturePrintln redirects printlnFn into a buffer for the test.
func capturePrintln(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return fmt.Fprintln(&buf, a...)
	}
	t.Cleanup(func() { printlnFn = orig })
	return &buf
}

// pipedInput makes password prompts read plain lines from the reader.
func pipedInput(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}

type route struct {
	status int
	body   any
}

// backend serves canned JSON per "METHOD /path" and records request bodies.
type backend struct {
	mu     sync.Mutex
	routes map[string]route
	bodies map[string][]byte
	hits   map[string]int
}

func (b *backend) on(method, path string, status int, body any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = route{status: status, body: body}
}

func (b *backend) body(method, path string) map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	var m map[string]any
	_ = json.Unmarshal(b.bodies[method+" "+path], &m)
	return m
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
	rt, ok := b.routes[key]
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "no route " + key})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rt.status)
	if rt.body != nil {
		_ = json.NewEncoder(w).Encode(rt.body)
	}
}

type testApp struct {
	*App
	backend *backend
	out     *bytes.Buffer
}

// newTestApp builds an App over a fake backend with an anonymous in-memory
// session. lines are the answers to the prompts the command will issue.
func newTestApp(t *testing.T, lines ...string) *testApp {
	t.Helper()
	pipedInput(t)

	b := &backend{routes: map[string]route{}, bodies: map[string][]byte{}, hits: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(srv.Close)

	out := &bytes.Buffer{}
	api := client.NewHTTPClient(srv.URL + "/api")
	a := assemble(api, tokenstore.NewMemoryStore(), logging.Discard(), readerFromLines(lines...), out)
	a.session.Start(context.Background())
	t.Cleanup(a.Close)

	return &testApp{App: a, backend: b, out: out}
}

var alice = models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}

// signIn logs alice in through the fake backend.
func (ta *testApp) signIn(t *testing.T) {
	t.Helper()
	ta.backend.on("POST", "/api/auth/login", 200, map[string]any{"token": "tok-1", "user": alice})
	_, err := ta.session.Login(context.Background(), alice.Email, "pw")
	require.NoError(t, err)
}

// setInput replaces the prompt answers.
func (ta *testApp) setInput(lines ...string) {
	ta.reader = readerFromLines(lines...)
}
