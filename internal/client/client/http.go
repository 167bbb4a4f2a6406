package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/openmarket/internal/common"
	"github.com/dmitrijs2005/openmarket/internal/logging"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// HTTPClient implements Client against the OpenMarket REST API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger

	mu     sync.RWMutex
	tokens TokenSource
}

type Option func(*HTTPClient)

// WithTimeout sets a per-request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

// NewHTTPClient returns a client for the API rooted at baseURL,
// e.g. "http://localhost:3000/api".
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetTokenSource installs the token source after construction; the session
// manager is usually built on top of the client and plugged back in here.
func (c *HTTPClient) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if t := c.token(); t != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+t)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	return req, requestID, nil
}

// doJSON sends a JSON request and decodes a 2xx body into out (when non-nil).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, requestID, err := c.newRequest(ctx, method, path, body, "application/json")
	if err != nil {
		return err
	}
	raw, err := c.send(ctx, req, requestID)
	if err != nil {
		return err
	}
	return decodeBody(raw, out)
}

// getRaw performs a GET and returns the 2xx body as is.
func (c *HTTPClient) getRaw(ctx context.Context, path string) ([]byte, error) {
	req, requestID, err := c.newRequest(ctx, http.MethodGet, path, nil, "application/json")
	if err != nil {
		return nil, err
	}
	return c.send(ctx, req, requestID)
}

func (c *HTTPClient) send(ctx context.Context, req *http.Request, requestID string) ([]byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.log.Debug(ctx, "request failed", "request_id", requestID, "method", req.Method, "path", req.URL.Path, "error", err)
		return nil, unavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unavailable(err)
	}

	c.log.Debug(ctx, "request done",
		"request_id", requestID,
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, raw)
	}
	return raw, nil
}

func newAPIError(status int, raw []byte) *APIError {
	return &APIError{
		Status:  status,
		Message: errorMessage(status, raw),
		RawBody: raw,
	}
}

// errorMessage picks "message", then "error", then "HTTP <status>".
// A body that is not a JSON object counts as empty.
func errorMessage(status int, raw []byte) string {
	if gjson.ValidBytes(raw) {
		doc := gjson.ParseBytes(raw)
		if doc.IsObject() {
			for _, field := range []string{"message", "error"} {
				if v := doc.Get(field); truthy(v) {
					return v.String()
				}
			}
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.String:
		return v.Str != ""
	case gjson.Number:
		return v.Num != 0
	case gjson.True:
		return true
	case gjson.JSON:
		return true
	default:
		return false
	}
}

// decodeBody treats an empty success body as {}.
func decodeBody(raw []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return nil
}
