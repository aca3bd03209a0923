package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

var ErrSessionExpired = errors.New("apiclient: session expired, login required")

// Client talks to the catering service. A 401 on any call (outside the
// auth endpoints themselves) triggers one token refresh; concurrent
// callers share that refresh instead of racing their own.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Store   Store

	mu         sync.Mutex
	refreshing bool
	waiters    []chan error
}

func New(baseURL string, store Store) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Store:   store,
	}
}

// envelope is the service's standard response body.
type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// authExempt routes never trigger a refresh: a 401 from them is final.
func authExempt(path string) bool {
	return path == "/auth/login" || path == "/auth/refresh"
}

// do issues one request, refreshing the access token and retrying once
// on 401. out, if non-nil, receives the envelope's data field.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	status, raw, header, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && !authExempt(path) {
		if err := c.waitForRefresh(ctx); err != nil {
			return err
		}
		status, raw, header, err = c.send(ctx, method, path, body)
		if err != nil {
			return err
		}
	}

	return decode(status, raw, header, out)
}

func (c *Client) send(ctx context.Context, method, path string, body any) (int, []byte, http.Header, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, nil, err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return 0, nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if tok, err := c.Store.Get(KeyAccessToken); err == nil && tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, nil, err
	}
	return res.StatusCode, raw, res.Header, nil
}

func decode(status int, raw []byte, header http.Header, out any) error {
	if status == http.StatusTooManyRequests {
		return &RateLimitError{RetryAfter: parseRetryAfter(header)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if status >= 200 && status < 300 {
			return err
		}
		return &APIError{Status: status, Message: http.StatusText(status)}
	}

	if status < 200 || status >= 300 {
		msg := env.Error
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &APIError{Status: status, Message: msg}
	}

	if out == nil {
		return nil
	}
	if env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	// login/refresh put their fields at the top level
	return json.Unmarshal(raw, out)
}

// waitForRefresh ensures exactly one refresh is in flight. The first
// caller performs it; everyone else queues on a channel and gets the
// same result.
func (c *Client) waitForRefresh(ctx context.Context) error {
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

	err := c.refreshTokens(ctx)

	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- err
	}
	return err
}

// refreshTokens exchanges the stored refresh token for a new pair. On
// failure the store is cleared: the session is gone and the next call
// must come from a fresh login.
func (c *Client) refreshTokens(ctx context.Context) error {
	refresh, err := c.Store.Get(KeyRefreshToken)
	if err != nil || refresh == "" {
		_ = c.Store.Clear()
		return ErrSessionExpired
	}

	var out loginResponse
	err = c.do(ctx, http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": refresh}, &out)
	if err != nil {
		var rl *RateLimitError
		if errors.As(err, &rl) {
			return err
		}
		_ = c.Store.Clear()
		return ErrSessionExpired
	}

	return c.storePair(&out)
}

func (c *Client) storePair(out *loginResponse) error {
	if err := c.Store.Set(KeyAccessToken, out.AccessToken); err != nil {
		return err
	}
	if err := c.Store.Set(KeyRefreshToken, out.RefreshToken); err != nil {
		return err
	}
	if out.User != nil {
		b, err := json.Marshal(out.User)
		if err != nil {
			return err
		}
		return c.Store.Set(KeyUser, string(b))
	}
	return nil
}
