package order

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/Nexus/internal/details"
	"github.com/mamadbah2/Nexus/internal/logger"
	"github.com/mamadbah2/Nexus/internal/notify"
	"github.com/mamadbah2/Nexus/internal/product"
	"github.com/mamadbah2/Nexus/internal/session"
	"github.com/mamadbah2/Nexus/internal/user"
)

// StatusFilterAll shows every sub-order regardless of status.
const StatusFilterAll = "ALL"

const unknownCustomer = "Unknown Customer"

// SellerView lists the sub-orders belonging to one seller, with local
// status/search filtering and customer enrichment.
type SellerView struct {
	orders    Client
	sess      *session.Session
	notifier  notify.Notifier
	products  *details.Cache[product.Product]
	customers *details.Cache[user.Profile]

	list         []SubOrder
	filtered     []SubOrder
	selected     *SubOrder
	statusFilter string
	searchQuery  string
}

func NewSellerView(orders Client, sess *session.Session, products *details.Cache[product.Product], customers *details.Cache[user.Profile], notifier notify.Notifier) *SellerView {
	return &SellerView{
		orders:       orders,
		sess:         sess,
		products:     products,
		customers:    customers,
		notifier:     notifier,
		statusFilter: StatusFilterAll,
	}
}

// Load fetches the seller's sub-orders, newest first, and resolves the
// customers behind them.
func (v *SellerView) Load(ctx context.Context) error {
	subOrders, err := v.orders.SellerSubOrders(ctx, v.sess.UserID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load seller orders", zap.Error(err))
		v.notifier.Error("Error", "Failed to load orders")
		return err
	}

	sort.SliceStable(subOrders, func(i, j int) bool {
		return subOrders[i].CreatedAt.After(subOrders[j].CreatedAt)
	})
	v.list = subOrders

	v.loadCustomers(ctx)
	v.applyFilters()
	return nil
}

func (v *SellerView) Orders() []SubOrder {
	return v.filtered
}

func (v *SellerView) Selected() *SubOrder {
	return v.selected
}

// TotalRevenue sums every sub-order's subtotal, regardless of filters.
func (v *SellerView) TotalRevenue() float64 {
	total := 0.0
	for _, so := range v.list {
		total += so.SubTotal
	}
	return total
}

func (v *SellerView) PendingCount() int {
	count := 0
	for _, so := range v.list {
		if so.Status == StatusPending {
			count++
		}
	}
	return count
}

// CompletedCount counts sub-orders that shipped or were delivered.
func (v *SellerView) CompletedCount() int {
	count := 0
	for _, so := range v.list {
		if so.Status == StatusShipped || so.Status == StatusDelivered {
			count++
		}
	}
	return count
}

func (v *SellerView) SetStatusFilter(status string) {
	v.statusFilter = status
	v.applyFilters()
}

func (v *SellerView) SetSearchQuery(query string) {
	v.searchQuery = query
	v.applyFilters()
}

func (v *SellerView) applyFilters() {
	query := strings.ToLower(strings.TrimSpace(v.searchQuery))

	filtered := make([]SubOrder, 0, len(v.list))
	for _, so := range v.list {
		if v.statusFilter != StatusFilterAll && string(so.Status) != v.statusFilter {
			continue
		}
		if query != "" {
			name := strings.ToLower(v.CustomerName(so.UserID))
			if !strings.Contains(strings.ToLower(so.ID), query) && !strings.Contains(name, query) {
				continue
			}
		}
		filtered = append(filtered, so)
	}
	v.filtered = filtered
}

// OpenDetails selects a sub-order, enriches its items and borrows the
// payment method from the parent order; sub-orders do not carry one
// themselves. A failed parent fetch just leaves it blank.
func (v *SellerView) OpenDetails(ctx context.Context, so SubOrder) {
	selected := so
	v.selected = &selected

	v.enrichItems(ctx, so.Items)
	v.denormalizeProductNames()

	if so.ParentOrderID == "" {
		logger.FromCtx(ctx).Warn("sub-order has no parent order id", zap.String("sub_order_id", so.ID))
		return
	}

	parent, err := v.orders.Get(ctx, so.ParentOrderID)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to fetch parent order",
			zap.String("parent_order_id", so.ParentOrderID),
			zap.Error(err),
		)
		return
	}
	if v.selected != nil && v.selected.ID == so.ID {
		v.selected.PaymentMethod = parent.PaymentMethod
	}
}

func (v *SellerView) CloseDetails() {
	v.selected = nil
}

func (v *SellerView) CustomerName(userID string) string {
	if u, ok := v.customers.Get(userID); ok {
		return u.Name
	}
	return unknownCustomer
}

func (v *SellerView) CustomerEmail(userID string) string {
	if u, ok := v.customers.Get(userID); ok {
		return u.Email
	}
	return ""
}

func (v *SellerView) ProductImage(productID string) string {
	if p, ok := v.products.Get(productID); ok {
		return p.FirstImageURL()
	}
	return product.PlaceholderImage
}

func (v *SellerView) loadCustomers(ctx context.Context) {
	ids := make([]string, 0, len(v.list))
	for _, so := range v.list {
		ids = append(ids, so.UserID)
	}
	v.customers.LoadAll(ctx, ids)
}

func (v *SellerView) enrichItems(ctx context.Context, items []OrderItem) {
	if len(items) == 0 {
		return
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	v.products.LoadAll(ctx, ids)
}

// denormalizeProductNames copies resolved product names onto the selected
// sub-order's items for display.
func (v *SellerView) denormalizeProductNames() {
	if v.selected == nil {
		return
	}
	for i := range v.selected.Items {
		if p, ok := v.products.Get(v.selected.Items[i].ProductID); ok {
			v.selected.Items[i].ProductName = p.Name
		}
	}
}
