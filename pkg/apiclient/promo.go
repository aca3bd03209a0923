package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

var (
	ErrPromoAlreadyInSet  = errors.New("apiclient: promo code already applied")
	ErrValidationInFlight = errors.New("apiclient: a promo validation is already running")
)

// PromoResult mirrors the service's validation outcome. Invalid codes
// are not errors: Valid is false and Reason says why.
type PromoResult struct {
	Valid    bool   `json:"valid"`
	Code     string `json:"code"`
	Discount int64  `json:"discount"`
	Reason   string `json:"reason"`
}

// PromoSet holds the applied codes in the order they were added. Codes
// are uppercased before anything else happens to them, so "save10" and
// "SAVE10" are the same entry. Only one validation may run at a time.
type PromoSet struct {
	client    *Client
	sessionID uint

	mu         sync.Mutex
	codes      []string
	validating bool
}

func (c *Client) Promos(sessionID uint) *PromoSet {
	return &PromoSet{client: c, sessionID: sessionID}
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Codes returns the applied codes in insertion order.
func (p *PromoSet) Codes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.codes))
	copy(out, p.codes)
	return out
}

func (p *PromoSet) contains(code string) bool {
	for _, c := range p.codes {
		if c == code {
			return true
		}
	}
	return false
}

// Apply validates the code against the session and, if the service
// accepts it, records it locally. The duplicate check runs on the
// normalized form before any network traffic.
func (p *PromoSet) Apply(ctx context.Context, code string) (*PromoResult, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, errors.New("apiclient: empty promo code")
	}

	p.mu.Lock()
	if p.contains(code) {
		p.mu.Unlock()
		return nil, ErrPromoAlreadyInSet
	}
	if p.validating {
		p.mu.Unlock()
		return nil, ErrValidationInFlight
	}
	p.validating = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.validating = false
		p.mu.Unlock()
	}()

	var out PromoResult
	err := p.client.do(ctx, http.MethodPost,
		fmt.Sprintf("/sessions/%d/promos", p.sessionID),
		map[string]string{"code": code}, &out)
	if err != nil {
		return nil, err
	}

	if out.Valid {
		p.mu.Lock()
		if !p.contains(out.Code) {
			p.codes = append(p.codes, out.Code)
		}
		p.mu.Unlock()
	}
	return &out, nil
}

// Remove drops the code from the session and the local set.
func (p *PromoSet) Remove(ctx context.Context, code string) error {
	code = NormalizeCode(code)

	err := p.client.do(ctx, http.MethodDelete,
		fmt.Sprintf("/sessions/%d/promos/%s", p.sessionID, code), nil, nil)
	if err != nil {
		return err
	}

	p.mu.Lock()
	for i, c := range p.codes {
		if c == code {
			p.codes = append(p.codes[:i], p.codes[i+1:]...)
			break
		}
	}
	p.mu.Unlock()
	return nil
}
