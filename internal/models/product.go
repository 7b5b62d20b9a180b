package models

// Product is a catalog entry the manager console prices and the shop adds to
// carts.
type Product struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     Cents  `json:"price"`
	OnSale    bool   `json:"onSale"`
	SalePrice Cents  `json:"salePrice,omitempty"`
	Stock     int    `json:"stock"`
	Image     string `json:"image"`
}

// Product categories
const (
	CategoryAudio       = "audio"
	CategoryElectronics = "electronics"
	CategoryAccessories = "accessories"
	CategoryHome        = "home"
)

// EffectivePrice is the price a customer pays for one unit today.
func (p Product) EffectivePrice() Cents {
	if p.OnSale {
		return p.SalePrice
	}
	return p.Price
}

// ToItem snapshots p into a cart line of qty units.
func (p Product) ToItem(qty int) OrderItem {
	item := OrderItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		OnSale:   p.OnSale,
		Quantity: qty,
		Image:    p.Image,
	}
	if p.OnSale {
		item.SalePrice = p.SalePrice
	}
	return item
}

// Validate checks the pricing rules of the manager console.
func (p Product) Validate() error {
	if p.Price <= 0 {
		return Invalid("price", "must be greater than zero")
	}
	if p.OnSale {
		if p.SalePrice <= 0 {
			return Invalid("salePrice", "must be greater than zero")
		}
		if p.SalePrice >= p.Price {
			return Invalid("salePrice", "%s must be lower than the price %s", p.SalePrice, p.Price)
		}
	}
	return nil
}
