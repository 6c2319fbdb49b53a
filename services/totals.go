package services

import (
	"math"

	"backend/entity"
)

// Round2 rounds money to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateTotals recomputes the derived financials of an order from the given
// item list. It must run as the last step before any mutated order is saved;
// an empty list yields a zero subtotal and the total is floored at zero.
func CalculateTotals(order *entity.CoffeeOrder, items []entity.OrderItem) {
	subtotal := 0.0
	for _, item := range items {
		subtotal += float64(item.Quantity) * item.UnitPrice
	}
	order.Subtotal = Round2(subtotal)
	order.TotalAmount = Round2(math.Max(order.Subtotal-order.DiscountAmount+order.TaxAmount, 0))
}
