package apiclient

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
)

const defaultTimeout = 30 * time.Second

// exemptSuffixes lists the auth endpoints that never participate in the
// 401-refresh cycle. A 401 from these is a final answer.
var exemptSuffixes = []string{
	"/auth/login",
	"/auth/register",
	"/auth/refresh",
}

// Client is an HTTP client for the billing API. It attaches the stored
// access token to every request and transparently refreshes the session on
// 401: concurrent failures share a single refresh call, queued requests are
// replayed in arrival order, and each request is retried at most once.
type Client struct {
	httpClient *http.Client
	baseURL    string
	store      TokenStore
	onLogout   func()

	mu         sync.Mutex
	refreshing bool
	waiters    []chan error
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogoutHandler sets a hook invoked when the session cannot be
// recovered. The handler runs once per failed refresh, not once per queued
// request.
func WithLogoutHandler(fn func()) Option {
	return func(c *Client) { c.onLogout = fn }
}

// New creates a Client for the given base URL.
func New(baseURL string, store TokenStore, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		onLogout:   func() {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a GET request and decodes the envelope's data into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the envelope's
// data into out.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	status, respBody, err := c.send(ctx, method, path, payload)
	if err != nil {
		// Transport failure, not an auth failure. Never triggers a refresh.
		return err
	}

	if status == http.StatusUnauthorized && !isExempt(path) {
		original := errorFromResponse(status, respBody)
		if err := c.recoverSession(ctx, original); err != nil {
			return err
		}
		// One replay with the fresh token; a second 401 is final.
		status, respBody, err = c.send(ctx, method, path, payload)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			return &ErrSessionExpired{Cause: errorFromResponse(status, respBody)}
		}
	}

	if status < 200 || status >= 300 {
		return errorFromResponse(status, respBody)
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

// send performs one HTTP round trip and reads the full body.
func (c *Client) send(ctx context.Context, method, path string, payload []byte) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("building request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.store.AccessToken(); token != "" && !isExempt(path) {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// recoverSession refreshes the token pair. The first caller performs the
// refresh; everyone else queues and receives the shared outcome in FIFO
// order. On a failed refresh the triggering caller gets its own 401 back,
// while queued waiters see the refresh error.
func (c *Client) recoverSession(ctx context.Context, original *APIError) error {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan error, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()
		select {
		case err := <-ch:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	err := c.refresh(ctx)

	c.mu.Lock()
	c.refreshing = false
	waiters := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	if err != nil {
		c.store.Clear()
		c.onLogout()
	}
	for _, ch := range waiters {
		ch <- err
	}
	if err != nil {
		return &ErrSessionExpired{Cause: original}
	}
	return nil
}

// refresh exchanges the stored refresh token for a new pair and persists it.
func (c *Client) refresh(ctx context.Context) error {
	refreshToken := c.store.RefreshToken()
	if refreshToken == "" {
		// Nothing to exchange. Give up without calling the server.
		return &ErrSessionExpired{}
	}

	payload, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return fmt.Errorf("encoding refresh request: %w", err)
	}

	status, body, err := c.send(ctx, http.MethodPost, "/api/v1/auth/refresh", payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &ErrSessionExpired{Cause: errorFromResponse(status, body)}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decoding refresh response: %w", err)
	}
	var pair struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(env.Data, &pair); err != nil {
		return fmt.Errorf("decoding refresh response: %w", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return &ErrSessionExpired{}
	}

	c.store.SetTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

func isExempt(path string) bool {
	for _, suffix := range exemptSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}
