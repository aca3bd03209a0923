package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *MemStore {
	t.Helper()
	st := NewMemStore()
	require.NoError(t, st.Set(KeyAccessToken, "stale"))
	require.NoError(t, st.Set(KeyRefreshToken, "refresh-1"))
	return st
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// All concurrent 401s must fold into one refresh call, and every caller
// must succeed on its retry with the new token.
func TestConcurrent401sShareOneRefresh(t *testing.T) {
	const callers = 5

	var refreshCalls int64
	var mu sync.Mutex
	unauthorized := 0
	allStale := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			// hold the refresh until every caller has seen its 401, so
			// they all join the same in-flight refresh
			<-allStale
			atomic.AddInt64(&refreshCalls, 1)
			writeJSON(w, http.StatusOK, map[string]any{
				"ok":           true,
				"accessToken":  "fresh",
				"refreshToken": "refresh-2",
			})
		case "/things":
			if r.Header.Get("Authorization") != "Bearer fresh" {
				mu.Lock()
				unauthorized++
				if unauthorized == callers {
					close(allStale)
				}
				mu.Unlock()
				writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "error": "token expired"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "data": map[string]any{"n": 1}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, seededStore(t))

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var out struct {
				N int `json:"n"`
			}
			errs[i] = c.do(context.Background(), http.MethodGet, "/things", nil, &out)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "caller %d", i)
	}
	assert.Equal(t, int64(1), atomic.LoadInt64(&refreshCalls))

	tok, err := c.Store.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
	ref, err := c.Store.Get(KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh-2", ref)
}

// A failed refresh rejects every waiter and wipes the stored session.
func TestRefreshFailureRejectsAllWaiters(t *testing.T) {
	const callers = 3

	var mu sync.Mutex
	unauthorized := 0
	allStale := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			<-allStale
			writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "error": "invalid refresh token"})
		case "/things":
			mu.Lock()
			unauthorized++
			if unauthorized == callers {
				close(allStale)
			}
			mu.Unlock()
			writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "error": "token expired"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, seededStore(t))

	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.do(context.Background(), http.MethodGet, "/things", nil, nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.ErrorIs(t, err, ErrSessionExpired, "caller %d", i)
	}

	_, err := c.Store.Get(KeyAccessToken)
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = c.Store.Get(KeyRefreshToken)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRateLimitSurfacesRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		writeJSON(w, http.StatusTooManyRequests, map[string]any{"ok": false, "error": "slow down"})
	}))
	defer srv.Close()

	c := New(srv.URL, seededStore(t))

	err := c.do(context.Background(), http.MethodGet, "/things", nil, nil)
	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, int64(7), int64(rl.RetryAfter.Seconds()))
}

// Login must never trigger the refresh machinery: its 401 is final.
func TestLogin401IsFinal(t *testing.T) {
	var refreshCalls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			atomic.AddInt64(&refreshCalls, 1)
		}
		writeJSON(w, http.StatusUnauthorized, map[string]any{"ok": false, "error": "invalid credentials"})
	}))
	defer srv.Close()

	c := New(srv.URL, seededStore(t))

	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid credentials", apiErr.Message)
	assert.Equal(t, int64(0), atomic.LoadInt64(&refreshCalls))
}

func TestLoginStoresPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":           true,
			"accessToken":  "a1",
			"refreshToken": "r1",
			"user":         map[string]any{"id": 4, "email": "a@b.com", "role": "customer"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, NewMemStore())

	user, err := c.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, uint(4), user.ID)

	tok, err := c.Store.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a1", tok)

	cached, err := c.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", cached.Email)
	assert.Equal(t, "customer", cached.Role)
}
