package catalog

import "github.com/matthieukhl/storefront/internal/models"

// sampleProducts is the catalog a fresh store starts with.
var sampleProducts = []models.Product{
	{
		ID:        1,
		Name:      "Headphones",
		Category:  models.CategoryAudio,
		Price:     models.MustCents("149.99"),
		OnSale:    true,
		SalePrice: models.MustCents("129.99"),
		Stock:     25,
		Image:     "/images/headphones.jpg",
	},
	{
		ID:       2,
		Name:     "Bluetooth Speaker",
		Category: models.CategoryAudio,
		Price:    models.MustCents("79.50"),
		Stock:    40,
		Image:    "/images/speaker.jpg",
	},
	{
		ID:        3,
		Name:      "Smart Watch",
		Category:  models.CategoryElectronics,
		Price:     models.MustCents("199.00"),
		OnSale:    true,
		SalePrice: models.MustCents("169.00"),
		Stock:     12,
		Image:     "/images/watch.jpg",
	},
	{
		ID:       4,
		Name:     "Wireless Charger",
		Category: models.CategoryElectronics,
		Price:    models.MustCents("29.99"),
		Stock:    60,
		Image:    "/images/charger.jpg",
	},
	{
		ID:       5,
		Name:     "Laptop Sleeve",
		Category: models.CategoryAccessories,
		Price:    models.MustCents("34.95"),
		Stock:    30,
		Image:    "/images/sleeve.jpg",
	},
	{
		ID:       6,
		Name:     "Desk Lamp",
		Category: models.CategoryHome,
		Price:    models.MustCents("45.00"),
		Stock:    18,
		Image:    "/images/lamp.jpg",
	},
}

// SampleProducts returns a copy of the starting catalog.
func SampleProducts() []models.Product {
	out := make([]models.Product, len(sampleProducts))
	copy(out, sampleProducts)
	return out
}
