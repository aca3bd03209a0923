package apiclient

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRetryAfterSeconds(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "7")
	assert.Equal(t, 7*time.Second, parseRetryAfter(h))
}

func TestParseRetryAfterMissing(t *testing.T) {
	assert.Equal(t, 60*time.Second, parseRetryAfter(http.Header{}))
}

func TestParseRetryAfterGarbage(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "soon")
	assert.Equal(t, 60*time.Second, parseRetryAfter(h))
}

func TestParseRetryAfterHTTPDate(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", time.Now().Add(30*time.Second).UTC().Format(http.TimeFormat))
	d := parseRetryAfter(h)
	assert.Greater(t, d, 20*time.Second)
	assert.LessOrEqual(t, d, 30*time.Second)
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{Status: 404, Message: "order not found"}
	assert.Equal(t, "api error 404: order not found", err.Error())
}
