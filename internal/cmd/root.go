package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/storefront/internal/cart"
	"github.com/matthieukhl/storefront/internal/catalog"
	"github.com/matthieukhl/storefront/internal/config"
	"github.com/matthieukhl/storefront/internal/logging"
	"github.com/matthieukhl/storefront/internal/orders"
	"github.com/matthieukhl/storefront/internal/storage"
	"github.com/matthieukhl/storefront/internal/types"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront - cart, checkout and order lifecycle",
	Long: `Storefront keeps a shopping cart and an order history in a key/value
store and drives orders from checkout to delivery.

It can run as a JSON API server for the shop and manager front ends, or be
used via CLI commands to work on the cart, orders and product catalog.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: config.yaml in ./deploy, ., $HOME/.storefront, /etc/storefront)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the stores every command works on.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	storage types.Storage
	cart    *cart.Store
	orders  *orders.Service
	catalog *catalog.Catalog
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openApp loads the config and opens the configured storage backend.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Log)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Storage.Timeout)
	defer cancel()

	store, err := storage.New(connectCtx, &cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}
	logger.Debug("storage opened", "driver", cfg.Storage.Driver)

	cartStore := cart.NewStore(store, cfg.Keys.Cart, logger)
	orderStore := orders.NewStore(store, cfg.Keys.Orders, logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		storage: store,
		cart:    cartStore,
		orders:  orders.NewService(orderStore, cartStore, logger),
		catalog: catalog.New(store, cfg.Keys.Products, logger),
	}, nil
}

func (a *app) Close() error {
	return a.storage.Close()
}
