package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/storefront/internal/models"
	"github.com/matthieukhl/storefront/internal/orders"
)

var listStatus string

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Browse orders and manage their status",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders, most recent first",
	Args:  cobra.NoArgs,
	RunE:  listOrders,
}

var ordersShowCmd = &cobra.Command{
	Use:   "show <order-id>",
	Short: "Show one order with its lines",
	Args:  cobra.ExactArgs(1),
	RunE:  showOrder,
}

var ordersAdvanceCmd = &cobra.Command{
	Use:   "advance <order-id>",
	Short: "Move an order to its next status (pending, processing, shipped, delivered)",
	Args:  cobra.ExactArgs(1),
	RunE:  advanceOrder,
}

var ordersCancelCmd = &cobra.Command{
	Use:   "cancel <order-id>",
	Short: "Cancel a pending or processing order",
	Args:  cobra.ExactArgs(1),
	RunE:  cancelOrder,
}

var ordersSetStatusCmd = &cobra.Command{
	Use:   "set-status <order-id> <status>",
	Short: "Move an order to a given status",
	Args:  cobra.ExactArgs(2),
	RunE:  setOrderStatus,
}

var ordersSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show order counts and revenue",
	Args:  cobra.NoArgs,
	RunE:  summarizeOrders,
}

func init() {
	rootCmd.AddCommand(ordersCmd)
	ordersCmd.AddCommand(ordersListCmd, ordersShowCmd, ordersAdvanceCmd, ordersCancelCmd, ordersSetStatusCmd, ordersSummaryCmd)

	ordersListCmd.Flags().StringVar(&listStatus, "status", "", "Only show orders in this status")
}

func listOrders(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	var list []models.Order
	if listStatus != "" {
		status, err := models.ParseStatus(listStatus)
		if err != nil {
			return err
		}
		list, err = a.orders.Store().ListByStatus(cmd.Context(), status)
		if err != nil {
			return err
		}
	} else {
		list, err = a.orders.Store().List(cmd.Context())
		if err != nil {
			return err
		}
	}

	if len(list) == 0 {
		fmt.Println("📭 No orders found")
		return nil
	}

	orders.SortNewestFirst(list)
	fmt.Printf("📋 %d order%s:\n", len(list), plural(len(list)))
	for _, o := range list {
		printOrderLine(o)
	}
	return nil
}

func showOrder(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	order, err := a.orders.Store().Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	printOrder(order)
	return nil
}

func advanceOrder(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	order, err := a.orders.Advance(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("🚚 Order %s is now %s\n", order.ID, order.Status)
	return nil
}

func cancelOrder(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	order, err := a.orders.Cancel(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("❌ Order %s cancelled\n", order.ID)
	return nil
}

func setOrderStatus(cmd *cobra.Command, args []string) error {
	status, err := models.ParseStatus(args[1])
	if err != nil {
		return err
	}

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	order, err := a.orders.SetStatus(cmd.Context(), args[0], status)
	if err != nil {
		return err
	}
	fmt.Printf("✅ Order %s is now %s\n", order.ID, order.Status)
	return nil
}

func summarizeOrders(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := a.orders.Store().List(cmd.Context())
	if err != nil {
		return err
	}

	sum := orders.Summarize(list)
	fmt.Printf("📊 %d order%s\n", sum.Orders, plural(sum.Orders))
	for _, status := range models.Statuses {
		fmt.Printf("   %-10s %d\n", status, sum.ByStatus[status])
	}
	fmt.Printf("💰 Revenue: %s\n", sum.Revenue)
	fmt.Printf("📈 Average order: %s\n", sum.AverageOrder)
	return nil
}
