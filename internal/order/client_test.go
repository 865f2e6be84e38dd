package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/Nexus/internal/api"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(api.NewClient(srv.URL, "", time.Second))
}

func TestClient_SubOrders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/o-1/sub-orders", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":"so-1","orderId":"o-1","sellerId":"s-1",
			 "itemsList":[{"productId":"p-1","quantity":2,"price":1500}],
			 "subTotal":3000,"status":"SHIPPED"},
			{"id":"so-2","parentOrderId":"o-1","sellerId":"s-2",
			 "items":[{"productId":"p-2","quantity":1,"price":700}],
			 "subTotal":700,"status":"DELIVERED"}
		]`))
	})

	subOrders, err := c.SubOrders(context.Background(), "o-1")

	require.NoError(t, err)
	require.Len(t, subOrders, 2)
	// Legacy shape is normalized on the way in.
	assert.Equal(t, "o-1", subOrders[0].ParentOrderID)
	require.Len(t, subOrders[0].Items, 1)
	assert.Equal(t, "p-1", subOrders[0].Items[0].ProductID)
	assert.Equal(t, "o-1", subOrders[1].ParentOrderID)
}

func TestClient_SellerSubOrders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/seller/s-1/sub-orders", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"so-1","orderId":"o-9","status":"PENDING"}]`))
	})

	subOrders, err := c.SellerSubOrders(context.Background(), "s-1")

	require.NoError(t, err)
	require.Len(t, subOrders, 1)
	assert.Equal(t, "o-9", subOrders[0].ParentOrderID)
	assert.NotNil(t, subOrders[0].Items)
}

func TestClient_Confirm(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders/o-1/confirm", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "PENDING", body["status"])
		assert.Equal(t, "WAVE", body["paymentMethod"])

		_, _ = w.Write([]byte(`{"id":"o-1","status":"PENDING","paymentMethod":"WAVE"}`))
	})

	o, err := c.Confirm(context.Background(), "o-1", "WAVE")

	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
}

func TestClient_Command(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/orders/o-1/command", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "DELIVERED", body["status"])

		_, _ = w.Write([]byte(`{"id":"o-1","status":"DELIVERED"}`))
	})

	o, err := c.Command(context.Background(), "o-1", StatusDelivered, "WAVE")

	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, o.Status)
}

func TestClient_Statistics(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/statistics/user/u-1", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"userId":"u-1","totalSpent":4200,"totalOrders":3,
			"mostPurchasedProducts":[{"productId":"p-1","productName":"Mango","totalQuantity":6,"totalRevenue":9000,"orderCount":3}]
		}`))
	})

	stats, err := c.Statistics(context.Background(), "u-1")

	require.NoError(t, err)
	assert.Equal(t, 4200.0, stats.TotalSpent)
	assert.Equal(t, 3, stats.TotalOrders)
	require.Len(t, stats.MostPurchasedProducts, 1)
	assert.Equal(t, "Mango", stats.MostPurchasedProducts[0].ProductName)
}
