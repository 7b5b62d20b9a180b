package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/matthieukhl/storefront/internal/models"
	"github.com/matthieukhl/storefront/internal/storage"
	"github.com/matthieukhl/storefront/internal/types"
)

// ErrItemNotFound is returned when an operation names a product that has no
// line in the cart.
var ErrItemNotFound = errors.New("item not in cart")

// Store is the shopping cart, persisted as one JSON array under a single
// storage key. Every write replaces the whole array.
type Store struct {
	storage types.Storage
	key     string
	logger  *slog.Logger

	mu sync.Mutex
}

// Totals is what the cart badge and the checkout summary show.
type Totals struct {
	Lines    int          `json:"lines"`
	Units    int          `json:"units"`
	Subtotal models.Cents `json:"subtotal"`
}

func NewStore(s types.Storage, key string, logger *slog.Logger) *Store {
	return &Store{storage: s, key: key, logger: logger}
}

// Items returns the cart lines. An absent or unreadable cart is an empty cart.
func (s *Store) Items(ctx context.Context) ([]models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// AddItem merges item into the line with the same id, or appends it.
func (s *Store) AddItem(ctx context.Context, item models.OrderItem) ([]models.OrderItem, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	return s.update(ctx, func(items []models.OrderItem) ([]models.OrderItem, error) {
		for i := range items {
			if items[i].ID == item.ID {
				items[i].Quantity += item.Quantity
				return items, nil
			}
		}
		return append(items, item), nil
	})
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less
// removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, id, qty int) ([]models.OrderItem, error) {
	return s.update(ctx, func(items []models.OrderItem) ([]models.OrderItem, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %d", ErrItemNotFound, id)
		}
		if qty <= 0 {
			return append(items[:i], items[i+1:]...), nil
		}
		items[i].Quantity = qty
		return items, nil
	})
}

// RemoveItem drops the line for id. Removing an absent id is a no-op.
func (s *Store) RemoveItem(ctx context.Context, id int) ([]models.OrderItem, error) {
	return s.update(ctx, func(items []models.OrderItem) ([]models.OrderItem, error) {
		if i := indexOf(items, id); i >= 0 {
			items = append(items[:i], items[i+1:]...)
		}
		return items, nil
	})
}

// Increment adds one unit to the line for id.
func (s *Store) Increment(ctx context.Context, id int) ([]models.OrderItem, error) {
	return s.step(ctx, id, 1)
}

// Decrement takes one unit off the line for id but never goes below one;
// RemoveItem is how a line leaves the cart.
func (s *Store) Decrement(ctx context.Context, id int) ([]models.OrderItem, error) {
	return s.step(ctx, id, -1)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, []models.OrderItem{})
}

// Replace overwrites the cart with items. Used by imports.
func (s *Store) Replace(ctx context.Context, items []models.OrderItem) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, models.CopyItems(items))
}

func (s *Store) Totals(ctx context.Context) (Totals, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return Totals{}, err
	}
	return Summarize(items), nil
}

// Summarize computes the totals of a list of lines.
func Summarize(items []models.OrderItem) Totals {
	return Totals{
		Lines:    len(items),
		Units:    models.CountUnits(items),
		Subtotal: models.SumItems(items),
	}
}

func (s *Store) step(ctx context.Context, id, delta int) ([]models.OrderItem, error) {
	return s.update(ctx, func(items []models.OrderItem) ([]models.OrderItem, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %d", ErrItemNotFound, id)
		}
		items[i].Quantity = max(1, items[i].Quantity+delta)
		return items, nil
	})
}

// update runs one read-modify-write cycle under the store lock.
func (s *Store) update(ctx context.Context, fn func([]models.OrderItem) ([]models.OrderItem, error)) ([]models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	items, err = fn(items)
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, items); err != nil {
		return nil, err
	}
	return models.CopyItems(items), nil
}

func (s *Store) load(ctx context.Context) ([]models.OrderItem, error) {
	var items []models.OrderItem
	_, err := storage.ReadJSON(ctx, s.storage, s.key, &items)
	if err != nil {
		if !errors.Is(err, storage.ErrMalformed) {
			return nil, fmt.Errorf("failed to read cart: %w", err)
		}
		s.logger.Warn("discarding unreadable cart", "key", s.key, "error", err)
		items = nil
	}
	if items == nil {
		items = []models.OrderItem{}
	}
	return items, nil
}

func (s *Store) save(ctx context.Context, items []models.OrderItem) error {
	if items == nil {
		items = []models.OrderItem{}
	}
	if err := storage.WriteJSON(ctx, s.storage, s.key, items); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func indexOf(items []models.OrderItem, id int) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
