package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/matthieukhl/storefront/internal/cart"
	"github.com/matthieukhl/storefront/internal/models"
	"github.com/matthieukhl/storefront/internal/orders"
)

// Dump is a local storage export: the cart and the order history keyed the
// way the browser stored them.
type Dump struct {
	Cart   []models.OrderItem `json:"cart"`
	Orders []models.Order     `json:"orders"`
}

// Result reports what an import changed.
type Result struct {
	CartReplaced  bool `json:"cartReplaced"`
	CartItems     int  `json:"cartItems"`
	OrdersAdded   int  `json:"ordersAdded"`
	OrdersSkipped int  `json:"ordersSkipped"`
}

type Ingester struct {
	cart   *cart.Store
	orders *orders.Store
	logger *slog.Logger
}

func NewIngester(cartStore *cart.Store, orderStore *orders.Store, logger *slog.Logger) *Ingester {
	return &Ingester{cart: cartStore, orders: orderStore, logger: logger}
}

// Import reads a dump from r. Orders are merged by id, keeping the stored
// copy when an id already exists. The cart is replaced only when the dump
// has a cart entry. The whole dump is decoded and validated before anything
// is written, so a rejected dump leaves the stores untouched.
func (i *Ingester) Import(ctx context.Context, r io.Reader) (Result, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Result{}, fmt.Errorf("failed to decode dump: %w", err)
	}

	var incoming []models.Order
	if value, ok := raw["orders"]; ok {
		if err := decodeEntry(value, &incoming); err != nil {
			return Result{}, fmt.Errorf("failed to decode orders: %w", err)
		}
		for _, o := range incoming {
			if err := validateOrder(o); err != nil {
				return Result{}, err
			}
		}
	}

	var items []models.OrderItem
	value, hasCart := raw["cart"]
	if hasCart {
		if err := decodeEntry(value, &items); err != nil {
			return Result{}, fmt.Errorf("failed to decode cart: %w", err)
		}
		for _, item := range items {
			if err := item.Validate(); err != nil {
				return Result{}, fmt.Errorf("invalid cart line %d: %w", item.ID, err)
			}
		}
	}

	var result Result
	if len(incoming) > 0 {
		added, err := i.orders.Merge(ctx, incoming)
		if err != nil {
			return Result{}, fmt.Errorf("failed to import orders: %w", err)
		}
		result.OrdersAdded = added
		result.OrdersSkipped = len(incoming) - added
	}

	if hasCart {
		if err := i.cart.Replace(ctx, items); err != nil {
			return result, fmt.Errorf("failed to import cart: %w", err)
		}
		result.CartReplaced = true
		result.CartItems = len(items)
	}

	i.logger.Info("dump imported",
		"orders_added", result.OrdersAdded,
		"orders_skipped", result.OrdersSkipped,
		"cart_replaced", result.CartReplaced)
	return result, nil
}

// Export writes the current cart and order history to w as indented JSON.
func (i *Ingester) Export(ctx context.Context, w io.Writer) (Dump, error) {
	items, err := i.cart.Items(ctx)
	if err != nil {
		return Dump{}, fmt.Errorf("failed to read cart: %w", err)
	}
	history, err := i.orders.List(ctx)
	if err != nil {
		return Dump{}, fmt.Errorf("failed to read orders: %w", err)
	}

	dump := Dump{Cart: items, Orders: history}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dump); err != nil {
		return Dump{}, fmt.Errorf("failed to write dump: %w", err)
	}
	return dump, nil
}

// decodeEntry accepts the value either as JSON or, the way local storage
// keeps it, as a string holding JSON.
func decodeEntry(value json.RawMessage, v any) error {
	trimmed := strings.TrimSpace(string(value))
	if trimmed == "null" {
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var inner string
		if err := json.Unmarshal(value, &inner); err != nil {
			return err
		}
		if strings.TrimSpace(inner) == "" {
			return nil
		}
		return json.Unmarshal([]byte(inner), v)
	}
	return json.Unmarshal(value, v)
}

func validateOrder(o models.Order) error {
	if strings.TrimSpace(o.ID) == "" {
		return models.Invalid("id", "imported order has no id")
	}
	if !o.Status.Valid() {
		return models.Invalid("status", "order %s has unknown status %q", o.ID, o.Status)
	}
	return nil
}
