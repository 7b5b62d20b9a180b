package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/storefront/internal/orders"
)

var checkCmd = &cobra.Command{
	Use:   "check-storage",
	Short: "Check the storage backend and what it holds",
	Long: `Pings the configured storage backend and reports the size of the cart,
the order history and the product catalog.`,
	RunE: checkStorage,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkStorage(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Printf("🔍 Checking %s storage...\n", a.cfg.Storage.Driver)
	if err := a.storage.Ping(ctx); err != nil {
		return fmt.Errorf("storage is not reachable: %w", err)
	}
	fmt.Println("✅ Storage reachable")

	totals, err := a.cart.Totals(ctx)
	if err != nil {
		return err
	}
	history, err := a.orders.Store().List(ctx)
	if err != nil {
		return err
	}
	products, err := a.catalog.List(ctx)
	if err != nil {
		return err
	}

	fmt.Println(strings.Repeat("─", 60))
	fmt.Printf("🛒 Cart:     %d line(s), %d unit(s), subtotal %s\n", totals.Lines, totals.Units, totals.Subtotal)
	fmt.Printf("📋 Orders:   %d\n", len(history))
	fmt.Printf("📦 Products: %d\n", len(products))

	if len(history) == 0 {
		fmt.Println("\n💡 No orders yet. Try 'storefront cart add --product 1' then 'storefront checkout'")
		return nil
	}

	sum := orders.Summarize(history)
	fmt.Printf("💰 Revenue:  %s (average %s)\n", sum.Revenue, sum.AverageOrder)
	return nil
}
