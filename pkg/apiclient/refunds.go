package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

type RefundLine struct {
	OrderItemID uint  `json:"orderItemId"`
	Qty         int   `json:"qty"`
	Amount      int64 `json:"amount"`
}

type RefundRequestIn struct {
	RestaurantID uint         `json:"restaurantId"`
	Reason       string       `json:"reason"`
	Items        []RefundLine `json:"items"`
}

type RefundRequestOut struct {
	ID              uint   `json:"ID"`
	OrderID         uint   `json:"orderId"`
	RestaurantID    uint   `json:"restaurantId"`
	Reason          string `json:"reason"`
	RequestedAmount int64  `json:"requestedAmount"`
	ApprovedAmount  int64  `json:"approvedAmount"`
	Note            string `json:"note"`
}

// RequestRefund raises an itemized refund against one restaurant's
// share of an order.
func (c *Client) RequestRefund(ctx context.Context, orderID uint, in RefundRequestIn) (*RefundRequestOut, error) {
	var out RefundRequestOut
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/refunds", orderID), in, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListRefunds(ctx context.Context, orderID uint) ([]RefundRequestOut, error) {
	var out struct {
		Items []RefundRequestOut `json:"items"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/refunds", orderID), nil, &out)
	if err != nil {
		return nil, err
	}
	return out.Items, nil
}

// ListRestaurantRefunds is the owner-side view of incoming requests.
func (c *Client) ListRestaurantRefunds(ctx context.Context, restaurantID uint) ([]RefundRequestOut, error) {
	var out struct {
		Items []RefundRequestOut `json:"items"`
	}
	path := fmt.Sprintf("/partner/restaurant/refunds?restaurantId=%d", restaurantID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

type ProcessRefundIn struct {
	Approve        bool   `json:"approve"`
	ApprovedAmount int64  `json:"approvedAmount"`
	Note           string `json:"note"`
}

// ProcessRefund settles a pending request (owner/admin only).
func (c *Client) ProcessRefund(ctx context.Context, refundID uint, in ProcessRefundIn) (*RefundRequestOut, error) {
	var out RefundRequestOut
	path := fmt.Sprintf("/partner/restaurant/refunds/%d/process", refundID)
	if err := c.do(ctx, http.MethodPatch, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
