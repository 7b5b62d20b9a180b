package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/storefront/internal/models"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse the catalog and manage prices",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog products",
	Args:  cobra.NoArgs,
	RunE:  listProducts,
}

var productsSetPriceCmd = &cobra.Command{
	Use:   "set-price <product-id> <price>",
	Short: "Change the base price of a product",
	Args:  cobra.ExactArgs(2),
	RunE:  setProductPrice,
}

var productsSaleCmd = &cobra.Command{
	Use:   "sale <product-id> <sale-price>",
	Short: "Put a product on sale",
	Args:  cobra.ExactArgs(2),
	RunE:  setProductSale,
}

var productsClearSaleCmd = &cobra.Command{
	Use:   "clear-sale <product-id>",
	Short: "End the sale on a product",
	Args:  cobra.ExactArgs(1),
	RunE:  clearProductSale,
}

func init() {
	rootCmd.AddCommand(productsCmd)
	productsCmd.AddCommand(productsListCmd, productsSetPriceCmd, productsSaleCmd, productsClearSaleCmd)
}

func listProducts(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	products, err := a.catalog.List(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("📦 %d product%s:\n", len(products), plural(len(products)))
	for _, p := range products {
		printProduct(p)
	}
	return nil
}

func setProductPrice(cmd *cobra.Command, args []string) error {
	return updateProduct(cmd, args, func(a *app, id int, amount models.Cents) (models.Product, error) {
		return a.catalog.SetPrice(cmd.Context(), id, amount)
	})
}

func setProductSale(cmd *cobra.Command, args []string) error {
	return updateProduct(cmd, args, func(a *app, id int, amount models.Cents) (models.Product, error) {
		return a.catalog.SetSale(cmd.Context(), id, amount)
	})
}

func clearProductSale(cmd *cobra.Command, args []string) error {
	return updateProduct(cmd, args, func(a *app, id int, _ models.Cents) (models.Product, error) {
		return a.catalog.ClearSale(cmd.Context(), id)
	})
}

// updateProduct parses <product-id> [amount] and applies fn.
func updateProduct(cmd *cobra.Command, args []string, fn func(*app, int, models.Cents) (models.Product, error)) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var amount models.Cents
	if len(args) > 1 {
		amount, err = models.ParseCents(args[1])
		if err != nil {
			return err
		}
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	product, err := fn(a, id, amount)
	if err != nil {
		return err
	}

	fmt.Println("✅ Product updated")
	printProduct(product)
	return nil
}
