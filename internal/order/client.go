package order

import (
	"context"

	"github.com/mamadbah2/Nexus/internal/api"
)

type commandRequest struct {
	Status        Status `json:"status"`
	PaymentMethod string `json:"paymentMethod"`
}

// Client is the order slice of the backend API.
type Client interface {
	Get(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	SubOrders(ctx context.Context, orderID string) ([]SubOrder, error)
	SellerSubOrders(ctx context.Context, sellerID string) ([]SubOrder, error)
	Confirm(ctx context.Context, orderID, paymentMethod string) (*Order, error)
	Command(ctx context.Context, orderID string, status Status, paymentMethod string) (*Order, error)
	Statistics(ctx context.Context, userID string) (*UserStatistics, error)
}

type client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) Client {
	return &client{api: apiClient}
}

func (c *client) Get(ctx context.Context, id string) (*Order, error) {
	var o Order
	if err := c.api.Get(ctx, "/api/orders/"+id, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *client) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	var orders []Order
	if err := c.api.Get(ctx, "/api/orders/user/"+userID, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *client) SubOrders(ctx context.Context, orderID string) ([]SubOrder, error) {
	var subOrders []SubOrder
	if err := c.api.Get(ctx, "/api/orders/"+orderID+"/sub-orders", nil, &subOrders); err != nil {
		return nil, err
	}
	for i := range subOrders {
		subOrders[i].Normalize()
	}
	return subOrders, nil
}

func (c *client) SellerSubOrders(ctx context.Context, sellerID string) ([]SubOrder, error) {
	var subOrders []SubOrder
	if err := c.api.Get(ctx, "/api/orders/seller/"+sellerID+"/sub-orders", nil, &subOrders); err != nil {
		return nil, err
	}
	for i := range subOrders {
		subOrders[i].Normalize()
	}
	return subOrders, nil
}

// Confirm performs checkout: the CART to PENDING transition, irreversible
// from the client's perspective.
func (c *client) Confirm(ctx context.Context, orderID, paymentMethod string) (*Order, error) {
	body := commandRequest{Status: StatusPending, PaymentMethod: paymentMethod}

	var o Order
	if err := c.api.Post(ctx, "/api/orders/"+orderID+"/confirm", body, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *client) Command(ctx context.Context, orderID string, status Status, paymentMethod string) (*Order, error) {
	body := commandRequest{Status: status, PaymentMethod: paymentMethod}

	var o Order
	if err := c.api.Patch(ctx, "/api/orders/"+orderID+"/command", body, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *client) Statistics(ctx context.Context, userID string) (*UserStatistics, error) {
	var stats UserStatistics
	if err := c.api.Get(ctx, "/api/orders/statistics/user/"+userID, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
