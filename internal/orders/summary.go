package orders

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/matthieukhl/storefront/internal/models"
)

// Summary holds the figures of the finance dashboard.
type Summary struct {
	Orders       int                   `json:"orders"`
	ByStatus     map[models.Status]int `json:"byStatus"`
	Revenue      models.Cents          `json:"revenue"`
	AverageOrder models.Cents          `json:"averageOrder"`
}

// Summarize counts orders per status and sums revenue. Cancelled orders are
// counted but earn nothing, and are left out of the average.
func Summarize(orders []models.Order) Summary {
	sum := Summary{
		Orders:   len(orders),
		ByStatus: make(map[models.Status]int, len(models.Statuses)),
	}
	for _, status := range models.Statuses {
		sum.ByStatus[status] = 0
	}

	billed := 0
	for _, o := range orders {
		sum.ByStatus[o.Status]++
		if o.Status == models.StatusCancelled {
			continue
		}
		sum.Revenue += o.Total
		billed++
	}

	if billed > 0 {
		avg := sum.Revenue.Decimal().Div(decimal.NewFromInt(int64(billed)))
		sum.AverageOrder = models.NewCents(avg)
	}
	return sum
}

// SortNewestFirst orders by date, most recent first. Ties keep the later
// id first.
func SortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].Date.Equal(orders[j].Date) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].Date.After(orders[j].Date)
	})
}
