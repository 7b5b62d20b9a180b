package storage

import (
	"context"
	"fmt"

	"github.com/matthieukhl/storefront/internal/config"
	"github.com/matthieukhl/storefront/internal/database"
	"github.com/matthieukhl/storefront/internal/types"
)

// New opens the storage backend selected by cfg.Driver
func New(ctx context.Context, cfg *config.StorageConfig) (types.Storage, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverFile:
		return NewFileStore(cfg.Path)
	case config.DriverMySQL:
		db, err := database.NewConnection(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewSQLStore(db), nil
	case config.DriverMongo:
		return NewMongoStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
