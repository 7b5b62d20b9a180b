package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/storefront/internal/cart"
	"github.com/matthieukhl/storefront/internal/logging"
	"github.com/matthieukhl/storefront/internal/models"
	"github.com/matthieukhl/storefront/internal/storage"
)

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func headphones(qty int) models.OrderItem {
	return models.OrderItem{
		ID:        1,
		Name:      "Headphones",
		Price:     models.MustCents("149.99"),
		OnSale:    true,
		SalePrice: models.MustCents("129.99"),
		Quantity:  qty,
	}
}

type fixture struct {
	mem     *storage.MemoryStore
	cart    *cart.Store
	store   *Store
	service *Service
	clock   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{mem: storage.NewMemoryStore(), clock: baseTime}
	f.cart = cart.NewStore(f.mem, "cart", logging.Discard())
	f.store = NewStore(f.mem, "orders", logging.Discard())
	f.service = NewService(f.store, f.cart, logging.Discard())
	f.service.now = func() time.Time { return f.clock }
	return f
}

func TestCreateOrder_Example(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.service.CreateOrder(ctx, []models.OrderItem{headphones(2)}, "PayPal")
	require.NoError(t, err)
	assert.Equal(t, models.MustCents("259.98"), first.Total)
	assert.Equal(t, "259.98", first.Total.String())
	assert.Equal(t, models.StatusPending, first.Status)
	assert.Equal(t, "PayPal", first.PaymentMethod)
	assert.Equal(t, baseTime, first.Date)

	second, err := f.service.CreateOrder(ctx, []models.OrderItem{headphones(2)}, "PayPal")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID, "same millisecond must still give distinct ids")
	assert.Greater(t, second.ID, first.ID)
}

func TestCreateOrder_TotalFormula(t *testing.T) {
	f := newFixture(t)
	items := []models.OrderItem{
		headphones(3),
		{ID: 2, Name: "Cable", Price: models.MustCents("0.10"), Quantity: 7},
		{ID: 3, Name: "Case", Price: models.MustCents("0.20"), Quantity: 1},
	}

	order, err := f.service.CreateOrder(context.Background(), items, "Card")
	require.NoError(t, err)
	assert.Equal(t, models.MustCents("390.87"), order.Total)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	f := newFixture(t)

	order, err := f.service.CreateOrder(context.Background(), nil, "Cash")
	require.NoError(t, err)
	assert.Equal(t, models.Cents(0), order.Total)
	assert.Empty(t, order.Items)
}

func TestCreateOrder_SnapshotIsImmutable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	before, err := f.store.List(ctx)
	require.NoError(t, err)

	items := []models.OrderItem{headphones(2)}
	order, err := f.service.CreateOrder(ctx, items, "PayPal")
	require.NoError(t, err)

	items[0].Quantity = 99
	items[0].Name = "changed"

	after, err := f.store.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, order, after[len(after)-1])
	assert.Equal(t, 2, after[len(after)-1].Items[0].Quantity)
}

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Checkout(ctx, "PayPal")
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = f.cart.AddItem(ctx, headphones(2))
	require.NoError(t, err)

	_, err = f.service.Checkout(ctx, "  ")
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)

	order, err := f.service.Checkout(ctx, "PayPal")
	require.NoError(t, err)
	assert.Equal(t, models.MustCents("259.98"), order.Total)

	items, err := f.cart.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	stored, err := f.store.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, stored)
}

func TestStore_GetAndListByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.service.CreateOrder(ctx, []models.OrderItem{headphones(1)}, "Card")
	require.NoError(t, err)
	b, err := f.service.CreateOrder(ctx, []models.OrderItem{headphones(1)}, "Card")
	require.NoError(t, err)
	_, err = f.service.Cancel(ctx, b.ID)
	require.NoError(t, err)

	_, err = f.store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	pending, err := f.store.ListByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, a.ID, pending[0].ID)

	shipped, err := f.store.ListByStatus(ctx, models.StatusShipped)
	require.NoError(t, err)
	assert.NotNil(t, shipped)
	assert.Empty(t, shipped)
}

func TestStore_FailSoftRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.mem.Set(ctx, "orders", []byte(`{"broken":`)))
	orders, err := f.store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestAdvance_HappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.service.CreateOrder(ctx, []models.OrderItem{headphones(2)}, "PayPal")
	require.NoError(t, err)

	for _, want := range []models.Status{models.StatusProcessing, models.StatusShipped, models.StatusDelivered} {
		f.clock = f.clock.Add(time.Hour)
		got, err := f.service.Advance(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got.Status)
		assert.Equal(t, order.Total, got.Total)
		assert.Equal(t, order.Items, got.Items)
		assert.Equal(t, f.clock, got.UpdatedAt)
		assert.Equal(t, order.Date, got.Date)
	}

	_, err = f.service.Advance(ctx, order.ID)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = f.service.Advance(ctx, "nope")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestSetStatus_Table(t *testing.T) {
	for _, from := range models.Statuses {
		for _, to := range models.Statuses {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				f := newFixture(t)
				ctx := context.Background()

				order := models.Order{
					ID:     "1",
					Date:   baseTime,
					Items:  []models.OrderItem{headphones(1)},
					Total:  models.MustCents("129.99"),
					Status: from,
				}
				require.NoError(t, f.store.Append(ctx, order))

				got, err := f.service.SetStatus(ctx, "1", to)
				stored, getErr := f.store.Get(ctx, "1")
				require.NoError(t, getErr)
				assert.Equal(t, order.Total, stored.Total)

				if from.CanTransition(to) {
					require.NoError(t, err)
					assert.Equal(t, to, got.Status)
					assert.Equal(t, to, stored.Status)
				} else {
					assert.ErrorIs(t, err, models.ErrInvalidTransition)
					assert.Equal(t, from, stored.Status)
				}
			})
		}
	}
}

func TestUpdate_KeepsSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.service.CreateOrder(ctx, []models.OrderItem{headphones(1)}, "Card")
	require.NoError(t, err)

	got, err := f.store.Update(ctx, order.ID, func(o *models.Order) error {
		o.Total = 1
		o.Items = nil
		o.PaymentMethod = "Cash"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, order.Total, got.Total)
	assert.Equal(t, order.Items, got.Items)
	assert.Equal(t, "Cash", got.PaymentMethod)
}

func TestMerge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Append(ctx, models.Order{ID: "1", Status: models.StatusPending}))

	added, err := f.store.Merge(ctx, []models.Order{
		{ID: "1", Status: models.StatusDelivered},
		{ID: "2", Status: models.StatusShipped},
		{ID: "2", Status: models.StatusPending},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	orders, err := f.store.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, models.StatusPending, orders[0].Status)
	assert.Equal(t, models.StatusShipped, orders[1].Status)
}

func TestIDGenerator(t *testing.T) {
	var g IDGenerator
	a := g.Next(baseTime)
	b := g.Next(baseTime)
	c := g.Next(baseTime.Add(-time.Second))
	d := g.Next(baseTime.Add(time.Hour))

	assert.Equal(t, "1709294400000", a)
	assert.Equal(t, "1709294400001", b)
	assert.Equal(t, "1709294400002", c)
	assert.Equal(t, "1709298000000", d)
}

func TestIDGenerator_Observe(t *testing.T) {
	var g IDGenerator
	g.Observe("1709294400005")
	g.Observe("legacy-7")
	g.Observe("12")

	assert.Equal(t, "1709294400006", g.Next(baseTime))
}

func TestCreateOrder_UniqueAcrossServices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A second service over the same storage, as a second CLI run would open.
	other := NewService(NewStore(f.mem, "orders", logging.Discard()), f.cart, logging.Discard())
	other.now = func() time.Time { return baseTime }

	a, err := f.service.CreateOrder(ctx, []models.OrderItem{headphones(1)}, "Card")
	require.NoError(t, err)
	b, err := other.CreateOrder(ctx, []models.OrderItem{headphones(1)}, "Card")
	require.NoError(t, err)
	c, err := f.service.CreateOrder(ctx, []models.OrderItem{headphones(1)}, "Card")
	require.NoError(t, err)

	assert.Equal(t, "1709294400000", a.ID)
	assert.Equal(t, "1709294400001", b.ID)
	assert.Equal(t, "1709294400002", c.ID)

	_, err = other.Cancel(ctx, b.ID)
	require.NoError(t, err)
	stored, err := f.store.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestAppend_RejectsDuplicateID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Append(ctx, models.Order{ID: "1", Status: models.StatusPending}))
	err := f.store.Append(ctx, models.Order{ID: "1", Status: models.StatusShipped})
	assert.ErrorIs(t, err, ErrDuplicateOrder)

	orders, err := f.store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

type failingCart struct{}

func (failingCart) Items(ctx context.Context) ([]models.OrderItem, error) {
	return []models.OrderItem{headphones(1)}, nil
}

func (failingCart) Clear(ctx context.Context) error {
	return errors.New("cart locked")
}

func TestCheckout_ClearFailure(t *testing.T) {
	mem := storage.NewMemoryStore()
	store := NewStore(mem, "orders", logging.Discard())
	svc := NewService(store, failingCart{}, logging.Discard())

	order, err := svc.Checkout(context.Background(), "Card")
	assert.ErrorContains(t, err, "cart locked")
	assert.ErrorIs(t, err, ErrCartNotCleared)
	assert.NotEmpty(t, order.ID)

	orders, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestSummarize(t *testing.T) {
	orders := []models.Order{
		{ID: "1", Total: models.MustCents("100.00"), Status: models.StatusDelivered},
		{ID: "2", Total: models.MustCents("50.00"), Status: models.StatusPending},
		{ID: "3", Total: models.MustCents("0.01"), Status: models.StatusShipped},
		{ID: "4", Total: models.MustCents("999.99"), Status: models.StatusCancelled},
	}

	sum := Summarize(orders)
	assert.Equal(t, 4, sum.Orders)
	assert.Equal(t, models.MustCents("150.01"), sum.Revenue)
	assert.Equal(t, models.MustCents("50.00"), sum.AverageOrder)
	assert.Equal(t, 1, sum.ByStatus[models.StatusCancelled])
	assert.Equal(t, 0, sum.ByStatus[models.StatusProcessing])

	empty := Summarize(nil)
	assert.Equal(t, models.Cents(0), empty.AverageOrder)
	assert.Len(t, empty.ByStatus, len(models.Statuses))
}

func TestSortNewestFirst(t *testing.T) {
	orders := []models.Order{
		{ID: "1", Date: baseTime},
		{ID: "3", Date: baseTime.Add(time.Hour)},
		{ID: "2", Date: baseTime},
	}
	SortNewestFirst(orders)
	assert.Equal(t, "3", orders[0].ID)
	assert.Equal(t, "2", orders[1].ID)
	assert.Equal(t, "1", orders[2].ID)
}
