package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/storefront/internal/orders"
)

var paymentMethod string

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Turn the cart into a pending order",
	Long: `Creates a pending order from the current cart, priced at the cart's
unit prices, and empties the cart.`,
	Args: cobra.NoArgs,
	RunE: checkout,
}

func init() {
	rootCmd.AddCommand(checkoutCmd)

	checkoutCmd.Flags().StringVar(&paymentMethod, "payment", "Credit Card", "Payment method shown on the order")
}

func checkout(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Println("💳 Checking out...")
	order, err := a.orders.Checkout(cmd.Context(), paymentMethod)
	if errors.Is(err, orders.ErrCartNotCleared) {
		fmt.Printf("⚠️  Order %s placed (total %s) but the cart was not emptied; do not check out again\n", order.ID, order.Total)
		return err
	}
	if err != nil {
		return err
	}

	fmt.Printf("✅ Order %s placed: %d item%s, total %s\n", order.ID, order.ItemCount(), plural(order.ItemCount()), order.Total)
	return nil
}
