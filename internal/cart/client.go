package cart

import (
	"context"

	"github.com/mamadbah2/Nexus/internal/api"
	"github.com/mamadbah2/Nexus/internal/order"
)

type updateRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateRequest creates the user's cart lazily on the first add-to-cart; the
// backend has no cart until then and answers 404.
type CreateRequest struct {
	UserID        string            `json:"userId"`
	PaymentMethod string            `json:"paymentMethod"`
	Status        order.Status      `json:"status"`
	Items         []order.OrderItem `json:"items"`
}

// Client is the cart slice of the backend API. A cart is an order in status
// CART; mutations go through the cart endpoints, creation through the order
// collection.
type Client interface {
	GetCart(ctx context.Context, userID string) (*order.Order, error)
	CreateCart(ctx context.Context, req CreateRequest) (*order.Order, error)
	UpdateItem(ctx context.Context, cartID, productID string, quantity int) (*order.Order, error)
	RemoveItem(ctx context.Context, cartID, productID string) error
}

type client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) Client {
	return &client{api: apiClient}
}

func (c *client) GetCart(ctx context.Context, userID string) (*order.Order, error) {
	var o order.Order
	if err := c.api.Get(ctx, "/api/cart/user/"+userID, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *client) CreateCart(ctx context.Context, req CreateRequest) (*order.Order, error) {
	var o order.Order
	if err := c.api.Post(ctx, "/api/orders", req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateItem sets the line's quantity to an absolute value, not a delta.
func (c *client) UpdateItem(ctx context.Context, cartID, productID string, quantity int) (*order.Order, error) {
	body := updateRequest{ProductID: productID, Quantity: quantity}

	var o order.Order
	if err := c.api.Patch(ctx, "/api/cart/"+cartID, body, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *client) RemoveItem(ctx context.Context, cartID, productID string) error {
	return c.api.Delete(ctx, "/api/cart/"+cartID+"/products/"+productID)
}
