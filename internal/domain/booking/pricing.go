package booking

import (
	"github.com/shopspring/decimal"

	"github.com/festhub/festival-api/internal/domain/catalog"
)

// ComputeTotal derives the draft's total price from the catalog prices of
// its ticket, beverage and food selections. Unselected (None) and unknown
// IDs contribute zero. AmountShifts never prices: shifts are volunteer
// labor, not a purchase.
//
// Totals computed against a placeholder catalog carry its -1 sentinel
// prices and must not be treated as final.
func ComputeTotal(b *Booking, c *catalog.FormContent) decimal.Decimal {
	total := c.TicketPrice(b.TicketID)
	total = total.Add(c.BeveragePrice(b.BeverageID))
	total = total.Add(c.FoodPrice(b.FoodID))
	return total
}
