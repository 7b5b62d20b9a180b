package orders

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/matthieukhl/storefront/internal/models"
	"github.com/matthieukhl/storefront/internal/storage"
	"github.com/matthieukhl/storefront/internal/types"
)

// ErrOrderNotFound is returned when no stored order has the requested id.
var ErrOrderNotFound = errors.New("order not found")

// ErrDuplicateOrder is returned when an order id is already stored.
var ErrDuplicateOrder = errors.New("order id already exists")

// Store is the order history, persisted as one JSON array in insertion order.
type Store struct {
	storage types.Storage
	key     string
	logger  *slog.Logger

	mu sync.Mutex
}

func NewStore(s types.Storage, key string, logger *slog.Logger) *Store {
	return &Store{storage: s, key: key, logger: logger}
}

// List returns every order in insertion order. An absent or unreadable
// history is an empty one.
func (s *Store) List(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Append adds order to the end of the history.
func (s *Store) Append(ctx context.Context, order models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return err
	}
	if indexOf(orders, order.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateOrder, order.ID)
	}
	order.Items = models.CopyItems(order.Items)
	return s.save(ctx, append(orders, order))
}

// Create builds an order from the stored history and appends it, all under
// the store lock, so build sees every id taken so far.
func (s *Store) Create(ctx context.Context, build func(existing []models.Order) models.Order) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return models.Order{}, err
	}

	order := build(orders)
	if indexOf(orders, order.ID) >= 0 {
		return models.Order{}, fmt.Errorf("%w: %s", ErrDuplicateOrder, order.ID)
	}
	order.Items = models.CopyItems(order.Items)

	if err := s.save(ctx, append(orders, order)); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *Store) Get(ctx context.Context, id string) (models.Order, error) {
	orders, err := s.List(ctx)
	if err != nil {
		return models.Order{}, err
	}
	if i := indexOf(orders, id); i >= 0 {
		return orders[i], nil
	}
	return models.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
}

// ListByStatus returns the orders currently in status, in insertion order.
func (s *Store) ListByStatus(ctx context.Context, status models.Status) ([]models.Order, error) {
	orders, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := []models.Order{}
	for _, o := range orders {
		if o.Status == status {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

// Update applies fn to the order with id and persists the result.
func (s *Store) Update(ctx context.Context, id string, fn func(*models.Order) error) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return models.Order{}, err
	}

	i := indexOf(orders, id)
	if i < 0 {
		return models.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}

	updated := orders[i]
	if err := fn(&updated); err != nil {
		return models.Order{}, err
	}
	// Status changes never touch the snapshot.
	updated.Items = orders[i].Items
	updated.Total = orders[i].Total
	orders[i] = updated

	if err := s.save(ctx, orders); err != nil {
		return models.Order{}, err
	}
	return updated, nil
}

// UpdateStatus moves the order with id to status to if the lifecycle allows it.
func (s *Store) UpdateStatus(ctx context.Context, id string, to models.Status, at time.Time) (models.Order, error) {
	return s.Update(ctx, id, func(o *models.Order) error {
		return o.Transition(to, at)
	})
}

// Merge appends the orders whose id is not stored yet and returns how many
// were added.
func (s *Store) Merge(ctx context.Context, incoming []models.Order) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(orders))
	for _, o := range orders {
		seen[o.ID] = true
	}

	added := 0
	for _, o := range incoming {
		if seen[o.ID] {
			continue
		}
		seen[o.ID] = true
		o.Items = models.CopyItems(o.Items)
		orders = append(orders, o)
		added++
	}

	if added == 0 {
		return 0, nil
	}
	return added, s.save(ctx, orders)
}

func (s *Store) load(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	_, err := storage.ReadJSON(ctx, s.storage, s.key, &orders)
	if err != nil {
		if !errors.Is(err, storage.ErrMalformed) {
			return nil, fmt.Errorf("failed to read orders: %w", err)
		}
		s.logger.Warn("discarding unreadable order history", "key", s.key, "error", err)
		orders = nil
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *Store) save(ctx context.Context, orders []models.Order) error {
	if err := storage.WriteJSON(ctx, s.storage, s.key, orders); err != nil {
		return fmt.Errorf("failed to save orders: %w", err)
	}
	return nil
}

func indexOf(orders []models.Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}
