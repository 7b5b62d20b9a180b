package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/storefront/internal/models"
	"github.com/matthieukhl/storefront/internal/orders"
)

var (
	generateCount   int
	generateSeed    uint64
	generateMaxQty  int
	generateAdvance bool
)

var paymentMethods = []string{"Credit Card", "PayPal", "Debit Card", "Cash on Delivery"}

var generateCmd = &cobra.Command{
	Use:   "generate-orders",
	Short: "Generate demo orders from the catalog",
	Long: `Generate orders made of random catalog products so the order list and
the finance summary have something to show.

With --advance each order is moved a random number of steps along its
lifecycle, and some are cancelled.`,
	Args: cobra.NoArgs,
	RunE: generateOrders,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVar(&generateCount, "count", 5, "Number of orders to generate")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 1, "Random seed, for reproducible data")
	generateCmd.Flags().IntVar(&generateMaxQty, "max-qty", 3, "Maximum quantity per line")
	generateCmd.Flags().BoolVar(&generateAdvance, "advance", true, "Spread orders across statuses")
}

func generateOrders(cmd *cobra.Command, args []string) error {
	if generateCount < 1 || generateMaxQty < 1 {
		return models.Invalid("count", "--count and --max-qty must be at least 1")
	}

	fmt.Printf("🧪 Generating %d order%s...\n", generateCount, plural(generateCount))

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	products, err := a.catalog.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("catalog is empty, run 'storefront setup-storage' first")
	}

	rng := rand.New(rand.NewPCG(generateSeed, generateSeed^0x5eed))
	for i := 0; i < generateCount; i++ {
		items := randomItems(rng, products, generateMaxQty)
		payment := paymentMethods[rng.IntN(len(paymentMethods))]

		order, err := a.orders.CreateOrder(cmd.Context(), items, payment)
		if err != nil {
			return fmt.Errorf("failed to create order %d: %w", i+1, err)
		}

		if generateAdvance {
			order, err = randomLifecycle(cmd.Context(), rng, a.orders, order)
			if err != nil {
				return err
			}
		}

		fmt.Printf("   ✅ Order %s: %d item%s, %s, %s\n", order.ID, order.ItemCount(), plural(order.ItemCount()), order.Total, order.Status)
	}

	fmt.Println("\n💡 Use 'storefront orders summary' to see the totals")
	return nil
}

// randomItems picks one to three distinct products.
func randomItems(rng *rand.Rand, products []models.Product, maxQty int) []models.OrderItem {
	lines := 1 + rng.IntN(min(3, len(products)))
	items := make([]models.OrderItem, 0, lines)
	for _, i := range rng.Perm(len(products))[:lines] {
		items = append(items, products[i].ToItem(1+rng.IntN(maxQty)))
	}
	return items
}

// randomLifecycle advances order zero to three steps, or cancels it.
func randomLifecycle(ctx context.Context, rng *rand.Rand, svc *orders.Service, order models.Order) (models.Order, error) {
	if rng.IntN(6) == 0 {
		return svc.Cancel(ctx, order.ID)
	}

	var err error
	for steps := rng.IntN(4); steps > 0; steps-- {
		order, err = svc.Advance(ctx, order.ID)
		if err != nil {
			return order, err
		}
	}
	return order, nil
}
