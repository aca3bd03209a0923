package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

type CheckoutIn struct {
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Address       string `json:"address"`
	Postcode      string `json:"postcode"`
	EventType     string `json:"eventType"`
	EventDate     string `json:"eventDate"`
}

type CheckoutOut struct {
	ID          uint   `json:"id"`
	PublicToken string `json:"publicToken"`
	Total       int64  `json:"total"`
}

// SubmitOrder turns the session into an order. The server re-runs
// minimum-order validation and pricing; a stale client total is never
// trusted.
func (c *Client) SubmitOrder(ctx context.Context, sessionID uint, in CheckoutIn) (*CheckoutOut, error) {
	var out CheckoutOut
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/sessions/%d/checkout", sessionID), in, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type OrderSummary struct {
	ID            uint   `json:"id"`
	PublicToken   string `json:"publicToken"`
	Total         int64  `json:"total"`
	OrderStatusID uint   `json:"orderStatusId"`
	CreatedAt     string `json:"createdAt"`
}

func (c *Client) ListOrders(ctx context.Context) ([]OrderSummary, error) {
	var out struct {
		Items []OrderSummary `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

type TrackingView struct {
	PublicToken     string `json:"publicToken"`
	Status          string `json:"status"`
	CustomerName    string `json:"customerName"`
	EventType       string `json:"eventType"`
	EventDate       string `json:"eventDate"`
	Label           string `json:"label"`
	DeliveryAddress string `json:"deliveryAddress"`
	Postcode        string `json:"postcode"`
	Total           int64  `json:"total"`
}

// TrackOrder looks an order up by its public token. No login needed.
func (c *Client) TrackOrder(ctx context.Context, token string) (*TrackingView, error) {
	var out TrackingView
	if err := c.do(ctx, http.MethodGet, "/track/"+token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
