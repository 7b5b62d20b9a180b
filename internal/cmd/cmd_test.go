package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/storefront/internal/logging"
	"github.com/matthieukhl/storefront/internal/models"
	"github.com/matthieukhl/storefront/internal/orders"
	"github.com/matthieukhl/storefront/internal/storage"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestCartCheckoutFlow(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STOREFRONT_STORAGE_DRIVER", "file")
	t.Setenv("STOREFRONT_STORAGE_PATH", dir)

	require.NoError(t, run(t, "setup-storage"))
	require.NoError(t, run(t, "cart", "add", "--product", "1", "--qty", "2"))
	require.NoError(t, run(t, "products", "set-price", "2", "75.00"))
	require.NoError(t, run(t, "checkout", "--payment", "PayPal"))

	ctx := context.Background()
	fs, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	history, err := orders.NewStore(fs, "orders", logging.Discard()).List(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.MustCents("259.98"), history[0].Total)
	assert.Equal(t, "PayPal", history[0].PaymentMethod)

	require.NoError(t, run(t, "orders", "advance", history[0].ID))
	require.NoError(t, run(t, "orders", "set-status", history[0].ID, "shipped"))

	err = run(t, "orders", "set-status", history[0].ID, "pending")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	err = run(t, "checkout")
	assert.ErrorIs(t, err, orders.ErrEmptyCart)

	require.NoError(t, run(t, "generate-orders", "--count", "3"))
	history, err = orders.NewStore(fs, "orders", logging.Discard()).List(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 4)
}
