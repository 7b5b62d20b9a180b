package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/storefront/internal/models"
)

var (
	addProductID int
	addQuantity  int
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and edit the shopping cart",
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cart lines and subtotal",
	Args:  cobra.NoArgs,
	RunE:  listCart,
}

var cartAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a catalog product to the cart",
	Long: `Add a catalog product to the cart. Adding a product already in the cart
raises the quantity of its line.`,
	Args: cobra.NoArgs,
	RunE: addToCart,
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <product-id> <quantity>",
	Short: "Set the quantity of a line (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE:  updateCart,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  removeFromCart,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE:  clearCart,
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartListCmd, cartAddCmd, cartUpdateCmd, cartRemoveCmd, cartClearCmd)

	cartAddCmd.Flags().IntVarP(&addProductID, "product", "p", 0, "Catalog product id")
	cartAddCmd.Flags().IntVarP(&addQuantity, "qty", "q", 1, "Quantity to add")
	cartAddCmd.MarkFlagRequired("product")
}

func listCart(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	items, err := a.cart.Items(cmd.Context())
	if err != nil {
		return err
	}
	printCart(items)
	return nil
}

func addToCart(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	product, err := a.catalog.Get(cmd.Context(), addProductID)
	if err != nil {
		return err
	}

	items, err := a.cart.AddItem(cmd.Context(), product.ToItem(addQuantity))
	if err != nil {
		return err
	}

	fmt.Printf("➕ Added %d x %s\n", addQuantity, product.Name)
	printCart(items)
	return nil
}

func updateCart(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return models.Invalid("quantity", "%q is not a number", args[1])
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	items, err := a.cart.UpdateQuantity(cmd.Context(), id, qty)
	if err != nil {
		return err
	}
	printCart(items)
	return nil
}

func removeFromCart(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	items, err := a.cart.RemoveItem(cmd.Context(), id)
	if err != nil {
		return err
	}
	printCart(items)
	return nil
}

func clearCart(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.cart.Clear(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("🗑️  Cart cleared")
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, models.Invalid("id", "%q is not a number", s)
	}
	return id, nil
}
