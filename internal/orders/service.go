package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/matthieukhl/storefront/internal/models"
)

// ErrEmptyCart is returned by Checkout when there is nothing to order.
var ErrEmptyCart = errors.New("cart is empty")

// ErrCartNotCleared is returned by Checkout, together with the stored order,
// when the order was created but the cart could not be emptied.
var ErrCartNotCleared = errors.New("order created but cart not cleared")

// Cart is the part of the cart store checkout needs.
type Cart interface {
	Items(ctx context.Context) ([]models.OrderItem, error)
	Clear(ctx context.Context) error
}

// IDGenerator derives order ids from the clock in unix milliseconds. Two
// orders created in the same millisecond get consecutive ids, and no id is
// handed out at or below one passed to Observe.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
}

func (g *IDGenerator) Next(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// Observe records an id that is already taken. Non-numeric ids are ignored.
func (g *IDGenerator) Observe(id string) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if n > g.last {
		g.last = n
	}
}

// Service creates orders and drives them through their lifecycle.
type Service struct {
	store  *Store
	cart   Cart
	ids    *IDGenerator
	now    func() time.Time
	logger *slog.Logger
}

func NewService(store *Store, cart Cart, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		cart:   cart,
		ids:    &IDGenerator{},
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

func (s *Service) Store() *Store {
	return s.store
}

// CreateOrder snapshots items into a pending order and appends it to the
// history. An empty item list is accepted.
func (s *Service) CreateOrder(ctx context.Context, items []models.OrderItem, paymentMethod string) (models.Order, error) {
	now := s.now()
	order, err := s.store.Create(ctx, func(existing []models.Order) models.Order {
		for _, o := range existing {
			s.ids.Observe(o.ID)
		}
		return models.Order{
			ID:            s.ids.Next(now),
			Date:          now,
			Items:         models.CopyItems(items),
			Total:         models.SumItems(items),
			Status:        models.StatusPending,
			PaymentMethod: paymentMethod,
			UpdatedAt:     now,
		}
	})
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("order created",
		"id", order.ID,
		"items", len(order.Items),
		"total", order.Total.String(),
		"payment_method", order.PaymentMethod)
	return order, nil
}

// Checkout turns the current cart into an order and empties the cart.
func (s *Service) Checkout(ctx context.Context, paymentMethod string) (models.Order, error) {
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		return models.Order{}, models.Invalid("paymentMethod", "a payment method is required")
	}

	items, err := s.cart.Items(ctx)
	if err != nil {
		return models.Order{}, err
	}
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	order, err := s.CreateOrder(ctx, items, paymentMethod)
	if err != nil {
		return models.Order{}, err
	}

	if err := s.cart.Clear(ctx); err != nil {
		return order, fmt.Errorf("%w: order %s: %w", ErrCartNotCleared, order.ID, err)
	}
	return order, nil
}

// SetStatus moves an order to status to.
func (s *Service) SetStatus(ctx context.Context, id string, to models.Status) (models.Order, error) {
	order, err := s.store.UpdateStatus(ctx, id, to, s.now())
	if err != nil {
		return models.Order{}, err
	}
	s.logStatus(order)
	return order, nil
}

// Advance moves an order one step along pending, processing, shipped,
// delivered.
func (s *Service) Advance(ctx context.Context, id string) (models.Order, error) {
	order, err := s.store.Update(ctx, id, func(o *models.Order) error {
		next, ok := o.Status.Next()
		if !ok {
			return fmt.Errorf("%w: order %s is %s", models.ErrInvalidTransition, o.ID, o.Status)
		}
		return o.Transition(next, s.now())
	})
	if err != nil {
		return models.Order{}, err
	}
	s.logStatus(order)
	return order, nil
}

func (s *Service) Cancel(ctx context.Context, id string) (models.Order, error) {
	return s.SetStatus(ctx, id, models.StatusCancelled)
}

func (s *Service) logStatus(order models.Order) {
	s.logger.Info("order status changed", "id", order.ID, "status", order.Status)
}
