package cmd

import (
	"fmt"
	"strings"

	"github.com/matthieukhl/storefront/internal/cart"
	"github.com/matthieukhl/storefront/internal/models"
)

func printCart(items []models.OrderItem) {
	if len(items) == 0 {
		fmt.Println("🛒 Cart is empty")
		return
	}

	fmt.Printf("🛒 Cart (%d line%s):\n", len(items), plural(len(items)))
	for _, item := range items {
		price := item.UnitPrice().String()
		if item.OnSale {
			price += fmt.Sprintf(" (was %s)", item.Price)
		}
		fmt.Printf("   #%d %-24s %3d x %-20s = %s\n", item.ID, item.Name, item.Quantity, price, item.LineTotal())
	}

	totals := cart.Summarize(items)
	fmt.Println("   " + strings.Repeat("─", 60))
	fmt.Printf("   %d unit%s, subtotal %s\n", totals.Units, plural(totals.Units), totals.Subtotal)
}

func printOrderLine(o models.Order) {
	fmt.Printf("   %s  %s  %-10s %10s  %d item%s  %s\n",
		o.ID,
		o.Date.Local().Format("2006-01-02 15:04"),
		o.Status,
		o.Total,
		o.ItemCount(),
		plural(o.ItemCount()),
		o.PaymentMethod)
}

func printOrder(o models.Order) {
	fmt.Printf("📋 Order %s\n", o.ID)
	fmt.Printf("   Date:    %s\n", o.Date.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("   Status:  %s (updated %s)\n", o.Status, o.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("   Payment: %s\n", o.PaymentMethod)
	for _, item := range o.Items {
		fmt.Printf("   #%d %-24s %3d x %s = %s\n", item.ID, item.Name, item.Quantity, item.UnitPrice(), item.LineTotal())
	}
	fmt.Printf("   Total:   %s\n", o.Total)
	if next, ok := o.Status.Next(); ok {
		fmt.Printf("\n💡 Use 'storefront orders advance %s' to move it to %s\n", o.ID, next)
	}
}

func printProduct(p models.Product) {
	sale := ""
	if p.OnSale {
		sale = fmt.Sprintf("  🏷️  sale %s", p.SalePrice)
	}
	fmt.Printf("   #%d %-20s %-12s %10s  stock %3d%s\n", p.ID, p.Name, p.Category, p.Price, p.Stock, sale)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
