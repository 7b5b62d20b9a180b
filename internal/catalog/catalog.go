package catalog

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

var ErrProductNotFound = errors.New("product not found")

// Catalog is the product list the manager console edits. Until the first
// write it serves the sample products.
type Catalog struct {
	storage types.Storage
	key     string
	logger  *slog.Logger

	mu sync.Mutex
}

func New(s types.Storage, key string, logger *slog.Logger) *Catalog {
	return &Catalog{storage: s, key: key, logger: logger}
}

func (c *Catalog) List(ctx context.Context) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *Catalog) Get(ctx context.Context, id int) (models.Product, error) {
	products, err := c.List(ctx)
	if err != nil {
		return models.Product{}, err
	}
	if i := indexOf(products, id); i >= 0 {
		return products[i], nil
	}
	return models.Product{}, fmt.Errorf("%w: %d", ErrProductNotFound, id)
}

// Seed writes the sample products, replacing whatever is stored.
func (c *Catalog) Seed(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, SampleProducts())
}

// SetPrice changes the base price of a product. A running sale must stay
// below the new price.
func (c *Catalog) SetPrice(ctx context.Context, id int, price models.Cents) (models.Product, error) {
	return c.update(ctx, id, func(p *models.Product) {
		p.Price = price
	})
}

// SetSale puts a product on sale at salePrice.
func (c *Catalog) SetSale(ctx context.Context, id int, salePrice models.Cents) (models.Product, error) {
	return c.update(ctx, id, func(p *models.Product) {
		p.OnSale = true
		p.SalePrice = salePrice
	})
}

func (c *Catalog) ClearSale(ctx context.Context, id int) (models.Product, error) {
	return c.update(ctx, id, func(p *models.Product) {
		p.OnSale = false
		p.SalePrice = 0
	})
}

func (c *Catalog) update(ctx context.Context, id int, fn func(*models.Product)) (models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	products, err := c.load(ctx)
	if err != nil {
		return models.Product{}, err
	}

	i := indexOf(products, id)
	if i < 0 {
		return models.Product{}, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}

	updated := products[i]
	fn(&updated)
	if err := updated.Validate(); err != nil {
		return models.Product{}, err
	}
	products[i] = updated

	if err := c.save(ctx, products); err != nil {
		return models.Product{}, err
	}

	c.logger.Info("product updated",
		"id", updated.ID,
		"price", updated.Price.String(),
		"on_sale", updated.OnSale)
	return updated, nil
}

func (c *Catalog) load(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	found, err := storage.ReadJSON(ctx, c.storage, c.key, &products)
	if err != nil {
		if !errors.Is(err, storage.ErrMalformed) {
			return nil, fmt.Errorf("failed to read products: %w", err)
		}
		c.logger.Warn("falling back to sample products", "key", c.key, "error", err)
		found = false
	}
	if !found {
		return SampleProducts(), nil
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (c *Catalog) save(ctx context.Context, products []models.Product) error {
	if err := storage.WriteJSON(ctx, c.storage, c.key, products); err != nil {
		return fmt.Errorf("failed to save products: %w", err)
	}
	return nil
}

func indexOf(products []models.Product, id int) int {
	for i := range products {
		if products[i].ID == id {
			return i
		}
	}
	return -1
}
