package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
)

type User struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}

// Login authenticates and persists the token pair and user profile.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	if err := c.storePair(&out); err != nil {
		return nil, err
	}
	return out.User, nil
}

type RegisterIn struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

func (c *Client) Register(ctx context.Context, in RegisterIn) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser returns the locally stored profile without a network call.
func (c *Client) CurrentUser() (*User, error) {
	raw, err := c.Store.Get(KeyUser)
	if err != nil {
		return nil, ErrSessionExpired
	}
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh forces a token rotation now, sharing any refresh already in
// flight.
func (c *Client) Refresh(ctx context.Context) error {
	return c.waitForRefresh(ctx)
}

// Logout drops all local session state. Filter preferences go too.
func (c *Client) Logout() error {
	return c.Store.Clear()
}
