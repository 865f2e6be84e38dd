package cart

import (
	"context"

	"github.com/mamadbah2/Nexus/internal/api"
	"github.com/mamadbah2/Nexus/internal/order"
	"github.com/mamadbah2/Nexus/internal/session"
)

// Service holds the cart mutation logic shared by the catalog and cart
// views.
type Service interface {
	GetCart(ctx context.Context) (*order.Order, error)
	AddItemToCart(ctx context.Context, productID string, quantity int, price float64) (*order.Order, error)
	UpdateCartItem(ctx context.Context, cartID, productID string, quantity int) (*order.Order, error)
	RemoveFromCart(ctx context.Context, cartID, productID string) error
}

type service struct {
	client Client
	sess   *session.Session
}

func NewService(client Client, sess *session.Session) Service {
	return &service{client: client, sess: sess}
}

func (s *service) GetCart(ctx context.Context) (*order.Order, error) {
	if s.sess == nil {
		return nil, ErrNotAuthenticated
	}
	return s.client.GetCart(ctx, s.sess.UserID)
}

// AddItemToCart is idempotent by merge: if the product is already a line
// item, its quantity grows by quantity instead of duplicating the line. The
// fetch-then-patch is two round trips with no locking; a concurrent add from
// the same session can lose an update (last PATCH wins). Known limitation.
func (s *service) AddItemToCart(ctx context.Context, productID string, quantity int, price float64) (*order.Order, error) {
	if s.sess == nil {
		return nil, ErrNotAuthenticated
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.client.GetCart(ctx, s.sess.UserID)
	if err != nil {
		if api.IsNotFound(err) {
			return s.createCart(ctx, productID, quantity, price)
		}
		return nil, err
	}

	newQuantity := quantity
	for _, item := range cart.Items {
		if item.ProductID == productID {
			newQuantity = item.Quantity + quantity
			break
		}
	}

	return s.client.UpdateItem(ctx, cart.ID, productID, newQuantity)
}

// UpdateCartItem sets the line's quantity to the absolute value. Quantities
// below 1 are rejected; removal is a separate operation.
func (s *service) UpdateCartItem(ctx context.Context, cartID, productID string, quantity int) (*order.Order, error) {
	if s.sess == nil {
		return nil, ErrNotAuthenticated
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	return s.client.UpdateItem(ctx, cartID, productID, quantity)
}

func (s *service) RemoveFromCart(ctx context.Context, cartID, productID string) error {
	if s.sess == nil {
		return ErrNotAuthenticated
	}
	return s.client.RemoveItem(ctx, cartID, productID)
}

func (s *service) createCart(ctx context.Context, productID string, quantity int, price float64) (*order.Order, error) {
	req := CreateRequest{
		UserID:        s.sess.UserID,
		PaymentMethod: "",
		Status:        order.StatusCart,
		Items: []order.OrderItem{
			{ProductID: productID, Quantity: quantity, Price: price},
		},
	}
	return s.client.CreateCart(ctx, req)
}
