package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/storefront/internal/cart"
	"github.com/matthieukhl/storefront/internal/logging"
	"github.com/matthieukhl/storefront/internal/models"
	"github.com/matthieukhl/storefront/internal/orders"
	"github.com/matthieukhl/storefront/internal/storage"
)

func newTestIngester(t *testing.T) (*Ingester, *cart.Store, *orders.Store) {
	t.Helper()
	mem := storage.NewMemoryStore()
	c := cart.NewStore(mem, "cart", logging.Discard())
	o := orders.NewStore(mem, "orders", logging.Discard())
	return NewIngester(c, o, logging.Discard()), c, o
}

const browserDump = `{
  "cart": "[{\"id\":1,\"name\":\"Headphones\",\"price\":149.99,\"onSale\":true,\"salePrice\":129.99,\"quantity\":2,\"image\":\"\"}]",
  "orders": [
    {"id":"1709294400000","date":"2024-03-01T12:00:00Z","items":[],"total":259.98,"status":"pending","paymentMethod":"PayPal"},
    {"id":"1709294400001","date":"2024-03-01T12:00:00Z","items":[],"total":"10.5","status":"delivered","paymentMethod":"Card"}
  ]
}`

func TestImport(t *testing.T) {
	ing, c, o := newTestIngester(t)
	ctx := context.Background()

	result, err := ing.Import(ctx, strings.NewReader(browserDump))
	require.NoError(t, err)
	assert.Equal(t, Result{CartReplaced: true, CartItems: 1, OrdersAdded: 2}, result)

	items, err := c.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.MustCents("129.99"), items[0].SalePrice)

	order, err := o.Get(ctx, "1709294400001")
	require.NoError(t, err)
	assert.Equal(t, models.MustCents("10.50"), order.Total)

	result, err = ing.Import(ctx, strings.NewReader(`{"orders":[{"id":"1709294400000","status":"cancelled"}]}`))
	require.NoError(t, err)
	assert.Equal(t, Result{OrdersSkipped: 1}, result)

	order, err = o.Get(ctx, "1709294400000")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status, "existing orders are kept")

	items, err = c.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1, "a dump without a cart leaves the cart alone")
}

func TestImport_Rejects(t *testing.T) {
	tests := map[string]string{
		"not json":       `{`,
		"missing id":     `{"orders":[{"status":"pending"}]}`,
		"unknown status": `{"orders":[{"id":"1","status":"lost"}]}`,
		"bad cart line":  `{"cart":[{"id":1,"price":1,"quantity":0}]}`,
		"bad orders":     `{"orders":"nope"}`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			ing, _, o := newTestIngester(t)
			_, err := ing.Import(context.Background(), strings.NewReader(input))
			assert.Error(t, err)

			stored, err := o.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, stored)
		})
	}
}

func TestImport_RejectsLeavesStoreUntouched(t *testing.T) {
	ing, c, o := newTestIngester(t)
	ctx := context.Background()

	_, err := c.AddItem(ctx, models.OrderItem{ID: 5, Name: "Cable", Price: 999, Quantity: 1})
	require.NoError(t, err)

	tests := map[string]string{
		"bad cart line": `{
  "orders": [{"id":"1709294400000","status":"pending","total":10}],
  "cart": [{"id":1,"price":1,"quantity":0}]
}`,
		"bad order after good one": `{
  "orders": [{"id":"1","status":"pending"},{"id":"2","status":"lost"}],
  "cart": []
}`,
		"undecodable cart": `{
  "orders": [{"id":"1","status":"pending"}],
  "cart": "not json"
}`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ing.Import(ctx, strings.NewReader(input))
			require.Error(t, err)

			stored, err := o.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, stored)

			items, err := c.Items(ctx)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, 5, items[0].ID)
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src, c, _ := newTestIngester(t)
	ctx := context.Background()

	_, err := src.Import(ctx, strings.NewReader(browserDump))
	require.NoError(t, err)
	_, err = c.UpdateQuantity(ctx, 1, 5)
	require.NoError(t, err)

	var buf bytes.Buffer
	dump, err := src.Export(ctx, &buf)
	require.NoError(t, err)
	assert.Len(t, dump.Orders, 2)

	var decoded Dump
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, dump, decoded)

	dst, dstCart, dstOrders := newTestIngester(t)
	result, err := dst.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, result.OrdersAdded)

	items, err := dstCart.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, dump.Cart, items)

	history, err := dstOrders.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, dump.Orders, history)
}
