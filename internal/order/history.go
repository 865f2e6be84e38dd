package order

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/mamadbah2/Nexus/internal/details"
	"github.com/mamadbah2/Nexus/internal/logger"
	"github.com/mamadbah2/Nexus/internal/notify"
	"github.com/mamadbah2/Nexus/internal/product"
	"github.com/mamadbah2/Nexus/internal/session"
)

// HistoryView lists the user's placed orders and aggregates sub-order state
// when a detail panel is opened.
type HistoryView struct {
	orders   Client
	sess     *session.Session
	notifier notify.Notifier
	products *details.Cache[product.Product]

	list      []Order
	selected  *Order
	subOrders []SubOrder
}

func NewHistoryView(orders Client, sess *session.Session, products *details.Cache[product.Product], notifier notify.Notifier) *HistoryView {
	return &HistoryView{
		orders:   orders,
		sess:     sess,
		products: products,
		notifier: notifier,
	}
}

// Load fetches the user's orders, drops the open cart and shows newest
// first.
func (v *HistoryView) Load(ctx context.Context) error {
	orders, err := v.orders.ListByUser(ctx, v.sess.UserID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load orders", zap.Error(err))
		v.notifier.Error("Error", "Failed to load orders")
		return err
	}

	placed := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.Status != StatusCart {
			placed = append(placed, o)
		}
	}
	sort.SliceStable(placed, func(i, j int) bool {
		return placed[i].CreatedAt.After(placed[j].CreatedAt)
	})

	v.list = placed
	return nil
}

func (v *HistoryView) Orders() []Order {
	return v.list
}

func (v *HistoryView) Selected() *Order {
	return v.selected
}

func (v *HistoryView) SubOrders() []SubOrder {
	return v.subOrders
}

// OpenDetails selects an order, fetches its sub-orders, enriches every line
// item and reconciles the parent's status. If the sub-order fetch fails the
// view falls back to the parent's own items.
func (v *HistoryView) OpenDetails(ctx context.Context, o Order) {
	selected := o
	v.selected = &selected
	v.subOrders = nil

	if o.Status == StatusCart {
		v.enrichItems(ctx, o.Items)
		return
	}

	subOrders, err := v.orders.SubOrders(ctx, o.ID)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to load sub-orders", zap.String("order_id", o.ID), zap.Error(err))
		v.enrichItems(ctx, o.Items)
		return
	}

	v.subOrders = subOrders
	var allItems []OrderItem
	for _, so := range subOrders {
		allItems = append(allItems, so.Items...)
	}
	v.enrichItems(ctx, allItems)

	v.syncParentStatus(ctx)
}

func (v *HistoryView) CloseDetails() {
	v.selected = nil
	v.subOrders = nil
}

// Progress is the selected order's 0-100 aggregate over its sub-orders.
func (v *HistoryView) Progress() int {
	return AggregateProgress(v.subOrders)
}

// syncParentStatus pushes the parent to DELIVERED once every sub-order got
// there. Fire and forget: a failure leaves the parent out of sync until the
// detail view is opened again.
func (v *HistoryView) syncParentStatus(ctx context.Context) {
	if v.selected == nil || !AllDelivered(v.subOrders) || v.selected.Status == StatusDelivered {
		return
	}

	updated, err := v.orders.Command(ctx, v.selected.ID, StatusDelivered, v.selected.PaymentMethod)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to sync order status",
			zap.String("order_id", v.selected.ID),
			zap.Error(err),
		)
		return
	}

	v.selected.Status = updated.Status
	for i := range v.list {
		if v.list[i].ID == updated.ID {
			v.list[i] = *updated
			break
		}
	}
	v.notifier.Success("Success", "Order marked as Delivered")
}

func (v *HistoryView) ProductName(productID string) string {
	if p, ok := v.products.Get(productID); ok {
		return p.Name
	}
	return "Loading..."
}

func (v *HistoryView) ProductPrice(productID string) float64 {
	if p, ok := v.products.Get(productID); ok {
		return p.PriceValue()
	}
	return 0
}

func (v *HistoryView) ProductImage(productID string) string {
	if p, ok := v.products.Get(productID); ok {
		return p.FirstImageURL()
	}
	return product.PlaceholderImage
}

func (v *HistoryView) enrichItems(ctx context.Context, items []OrderItem) {
	if len(items) == 0 {
		return
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	v.products.LoadAll(ctx, ids)
}
