package models

// OrderItem is one cart line, and later one line of an order snapshot.
// ID is the product id: a cart holds at most one line per product.
type OrderItem struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Price     Cents  `json:"price"`
	OnSale    bool   `json:"onSale"`
	SalePrice Cents  `json:"salePrice,omitempty"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
}

// UnitPrice is the price actually charged for one unit.
func (i OrderItem) UnitPrice() Cents {
	if i.OnSale {
		return i.SalePrice
	}
	return i.Price
}

// LineTotal is UnitPrice times Quantity.
func (i OrderItem) LineTotal() Cents {
	return i.UnitPrice().Times(i.Quantity)
}

// Validate checks a line before it enters a cart.
func (i OrderItem) Validate() error {
	if i.Quantity < 1 {
		return Invalid("quantity", "must be at least 1, got %d", i.Quantity)
	}
	if i.Price < 0 {
		return Invalid("price", "must not be negative")
	}
	if i.OnSale && i.SalePrice <= 0 {
		return Invalid("salePrice", "item %d is on sale without a sale price", i.ID)
	}
	return nil
}

// SumItems adds up the line totals of items.
func SumItems(items []OrderItem) Cents {
	var total Cents
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

// CountUnits adds up the quantities of items.
func CountUnits(items []OrderItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

// CopyItems returns a copy of items that shares no memory with the input.
func CopyItems(items []OrderItem) []OrderItem {
	out := make([]OrderItem, len(items))
	copy(out, items)
	return out
}
