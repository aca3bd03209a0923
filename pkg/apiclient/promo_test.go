package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promoServer(t *testing.T, calls *int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(calls, 1)
		var in struct {
			Code string `json:"code"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)

		switch in.Code {
		case "SAVE10":
			writeJSON(w, http.StatusOK, map[string]any{
				"ok":   true,
				"data": PromoResult{Valid: true, Code: "SAVE10", Discount: 500},
			})
		default:
			writeJSON(w, http.StatusOK, map[string]any{
				"ok":   true,
				"data": PromoResult{Valid: false, Code: in.Code, Reason: "invalid promo code"},
			})
		}
	}))
}

func TestPromoSetApply(t *testing.T) {
	var calls int64
	srv := promoServer(t, &calls)
	defer srv.Close()

	c := New(srv.URL, seededStore(t))
	set := c.Promos(12)

	res, err := set.Apply(context.Background(), "save10")
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "SAVE10", res.Code)
	assert.Equal(t, int64(500), res.Discount)
	assert.Equal(t, []string{"SAVE10"}, set.Codes())
}

// The duplicate check runs on the normalized code before any request
// goes out.
func TestPromoSetRejectsDuplicateWithoutNetwork(t *testing.T) {
	var calls int64
	srv := promoServer(t, &calls)
	defer srv.Close()

	c := New(srv.URL, seededStore(t))
	set := c.Promos(12)

	_, err := set.Apply(context.Background(), "SAVE10")
	require.NoError(t, err)
	require.Equal(t, int64(1), atomic.LoadInt64(&calls))

	_, err = set.Apply(context.Background(), "save10")
	assert.ErrorIs(t, err, ErrPromoAlreadyInSet)
	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
	assert.Equal(t, []string{"SAVE10"}, set.Codes())
}

func TestPromoSetInvalidCodeNotRecorded(t *testing.T) {
	var calls int64
	srv := promoServer(t, &calls)
	defer srv.Close()

	c := New(srv.URL, seededStore(t))
	set := c.Promos(12)

	res, err := set.Apply(context.Background(), "bogus")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "invalid promo code", res.Reason)
	assert.Empty(t, set.Codes())

	// retrying the same invalid code is allowed
	_, err = set.Apply(context.Background(), "bogus")
	require.NoError(t, err)
	assert.Equal(t, int64(2), atomic.LoadInt64(&calls))
}

func TestPromoSetSingleValidationAtATime(t *testing.T) {
	set := &PromoSet{client: New("http://unused", NewMemStore()), sessionID: 12}
	set.validating = true

	_, err := set.Apply(context.Background(), "SAVE10")
	assert.ErrorIs(t, err, ErrValidationInFlight)
}

func TestPromoSetInsertionOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "data": map[string]any{"removed": true}})
			return
		}
		var in struct {
			Code string `json:"code"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":   true,
			"data": PromoResult{Valid: true, Code: in.Code, Discount: 100},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, seededStore(t))
	set := c.Promos(12)

	for _, code := range []string{"first", "second", "third"} {
		_, err := set.Apply(context.Background(), code)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"FIRST", "SECOND", "THIRD"}, set.Codes())

	require.NoError(t, set.Remove(context.Background(), "second"))
	assert.Equal(t, []string{"FIRST", "THIRD"}, set.Codes())
}

func TestPromoSetEmptyCode(t *testing.T) {
	set := New("http://unused", NewMemStore()).Promos(12)
	_, err := set.Apply(context.Background(), "   ")
	assert.Error(t, err)
}
