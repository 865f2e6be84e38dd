package order

import (
	"math"
	"time"
)

type Status string

const (
	StatusCart       Status = "CART"
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

type OrderItem struct {
	ProductID string `json:"productId"`
	// ProductName is denormalized client-side after a product lookup; the
	// server copy is never trusted for display.
	ProductName string  `json:"productName,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	TotalPrice  float64 `json:"totalPrice,omitempty"`
}

// Order is both a placed order and, in status CART, the user's cart. A user
// has at most one order in status CART at a time.
type Order struct {
	ID            string      `json:"id"`
	UserID        string      `json:"userId"`
	Total         float64     `json:"total"`
	Status        Status      `json:"status"`
	PaymentMethod string      `json:"paymentMethod"`
	CreatedAt     time.Time   `json:"createdAt"`
	Items         []OrderItem `json:"items"`
}

// SubOrder is the slice of a placed order belonging to one seller, tracked
// and transitioned independently of its parent.
type SubOrder struct {
	ID            string      `json:"id"`
	ParentOrderID string      `json:"parentOrderId"`
	OrderID       string      `json:"orderId,omitempty"`
	SellerID      string      `json:"sellerId"`
	UserID        string      `json:"userId"`
	Items         []OrderItem `json:"items"`
	ItemsList     []OrderItem `json:"itemsList,omitempty"`
	SubTotal      float64     `json:"subTotal"`
	Status        Status      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
	PaymentMethod string      `json:"paymentMethod,omitempty"`
}

// Normalize reconciles the two shapes sub-order responses arrive in: some
// carry items under "itemsList" and the parent id under "orderId".
func (s *SubOrder) Normalize() {
	if len(s.Items) == 0 && len(s.ItemsList) > 0 {
		s.Items = s.ItemsList
	}
	if s.Items == nil {
		s.Items = []OrderItem{}
	}
	if s.ParentOrderID == "" {
		s.ParentOrderID = s.OrderID
	}
}

// StatusProgress maps a sub-order status to its fixed 0-100 score.
func StatusProgress(s Status) int {
	switch s {
	case StatusPending:
		return 10
	case StatusConfirmed:
		return 25
	case StatusProcessing:
		return 50
	case StatusShipped:
		return 75
	case StatusDelivered:
		return 100
	case StatusCancelled:
		return 0
	default:
		return 0
	}
}

// AggregateProgress is the parent order's displayed progress: the rounded
// unweighted mean of its sub-orders' status scores.
func AggregateProgress(subOrders []SubOrder) int {
	if len(subOrders) == 0 {
		return 0
	}

	total := 0
	for _, so := range subOrders {
		total += StatusProgress(so.Status)
	}
	return int(math.Round(float64(total) / float64(len(subOrders))))
}

// AllDelivered reports whether every sub-order in a non-empty set reached
// DELIVERED.
func AllDelivered(subOrders []SubOrder) bool {
	if len(subOrders) == 0 {
		return false
	}
	for _, so := range subOrders {
		if so.Status != StatusDelivered {
			return false
		}
	}
	return true
}

type ProductStatistic struct {
	ProductID     string  `json:"productId"`
	ProductName   string  `json:"productName"`
	TotalQuantity int     `json:"totalQuantity"`
	TotalRevenue  float64 `json:"totalRevenue"`
	OrderCount    int     `json:"orderCount"`
}

// UserStatistics is pre-aggregated by the backend; the client only displays
// it.
type UserStatistics struct {
	UserID                string             `json:"userId"`
	TotalSpent            float64            `json:"totalSpent"`
	TotalOrders           int                `json:"totalOrders"`
	MostPurchasedProducts []ProductStatistic `json:"mostPurchasedProducts"`
	BestSellingProducts   []ProductStatistic `json:"bestSellingProducts"`
}
