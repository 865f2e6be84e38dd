package cart

import (
	"context"

	"go.uber.org/zap"

	"github.com/mamadbah2/Nexus/internal/api"
	"github.com/mamadbah2/Nexus/internal/details"
	"github.com/mamadbah2/Nexus/internal/logger"
	"github.com/mamadbah2/Nexus/internal/notify"
	"github.com/mamadbah2/Nexus/internal/order"
	"github.com/mamadbah2/Nexus/internal/product"
)

const defaultPaymentMethod = "WAVE"

// View is the cart screen's controller. Like every view here it is driven
// by a single goroutine, mirroring the browser event loop; no locking.
type View struct {
	carts    Service
	orders   order.Client
	notifier notify.Notifier
	products *details.Cache[product.Product]

	cart          *order.Order
	loadError     string
	paymentMethod string
}

func NewView(carts Service, orders order.Client, products *details.Cache[product.Product], notifier notify.Notifier) *View {
	return &View{
		carts:         carts,
		orders:        orders,
		products:      products,
		notifier:      notifier,
		paymentMethod: defaultPaymentMethod,
	}
}

// Load fetches the user's open cart. A 404 means no cart yet, which renders
// as an empty cart, not an error.
func (v *View) Load(ctx context.Context) {
	v.loadError = ""

	cart, err := v.carts.GetCart(ctx)
	if err != nil {
		v.cart = nil
		if !api.IsNotFound(err) {
			logger.FromCtx(ctx).Error("failed to load cart", zap.Error(err))
			v.loadError = "Could not load cart."
		}
		return
	}

	v.cart = cart
	v.enrich(ctx, cart.Items)
}

func (v *View) Cart() *order.Order {
	return v.cart
}

func (v *View) LoadError() string {
	return v.loadError
}

func (v *View) IsEmpty() bool {
	return v.cart == nil || len(v.cart.Items) == 0
}

func (v *View) SetPaymentMethod(method string) {
	v.paymentMethod = method
}

// UpdateQuantity applies a +1/-1 step to a line item. A result below 1 is a
// no-op: quantity edits never drop below 1, removal is explicit. The cart is
// refetched before patching so the absolute quantity lands on the current
// cart id.
func (v *View) UpdateQuantity(ctx context.Context, productID string, delta int) error {
	if v.cart == nil {
		return ErrNoCart
	}

	var current *order.OrderItem
	for i := range v.cart.Items {
		if v.cart.Items[i].ProductID == productID {
			current = &v.cart.Items[i]
			break
		}
	}
	if current == nil {
		return nil
	}

	newQuantity := current.Quantity + delta
	if newQuantity < 1 {
		return nil
	}

	fresh, err := v.carts.GetCart(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to fetch cart for update", zap.Error(err))
		return err
	}

	updated, err := v.carts.UpdateCartItem(ctx, fresh.ID, productID, newQuantity)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to update quantity", zap.Error(err))
		return err
	}

	v.cart = updated
	return nil
}

// RemoveItem deletes a line and reloads. Removing the last item leaves an
// empty cart; the order itself is not deleted.
func (v *View) RemoveItem(ctx context.Context, productID string) error {
	if v.cart == nil {
		return ErrNoCart
	}

	if err := v.carts.RemoveFromCart(ctx, v.cart.ID, productID); err != nil {
		logger.FromCtx(ctx).Error("failed to remove item", zap.Error(err))
		return err
	}

	v.Load(ctx)
	return nil
}

// Checkout turns the cart into a placed order (CART to PENDING). On failure
// the user gets one notification; nothing is retried.
func (v *View) Checkout(ctx context.Context) error {
	if v.cart == nil {
		return ErrNoCart
	}

	if _, err := v.orders.Confirm(ctx, v.cart.ID, v.paymentMethod); err != nil {
		logger.FromCtx(ctx).Error("checkout failed", zap.Error(err))
		v.notifier.Error("Error", "Checkout failed. Please try again.")
		return err
	}

	v.notifier.Success("Success", "Order placed successfully!")
	v.cart = nil
	return nil
}

func (v *View) ProductName(productID string) string {
	if p, ok := v.products.Get(productID); ok {
		return p.Name
	}
	return "Loading Product..."
}

func (v *View) ProductPrice(productID string) float64 {
	if p, ok := v.products.Get(productID); ok {
		return p.PriceValue()
	}
	return 0
}

func (v *View) ProductImage(productID string) string {
	if p, ok := v.products.Get(productID); ok {
		return p.FirstImageURL()
	}
	return product.PlaceholderImage
}

func (v *View) enrich(ctx context.Context, items []order.OrderItem) {
	if len(items) == 0 {
		return
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	v.products.LoadAll(ctx, ids)
}
