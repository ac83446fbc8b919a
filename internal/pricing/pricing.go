// Package pricing computes every derived amount in the system. Cart display,
// checkout and counter sales all go through Quote.
package pricing

import (
	"restaurant-storefront/internal/domain"

	"github.com/shopspring/decimal"
)

func LineTotal(item domain.CartItem) decimal.Decimal {
	unit := decimal.NewFromFloat(item.Price).Sub(decimal.NewFromFloat(item.Discount))
	return unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

func Subtotal(items []domain.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(LineTotal(item))
	}
	return sum
}

// DeliveryFee is fee for delivery orders and zero otherwise.
func DeliveryFee(orderType domain.OrderType, fee float64) decimal.Decimal {
	if orderType != domain.OrderDelivery {
		return decimal.Zero
	}
	return decimal.NewFromFloat(fee)
}

func Quote(items []domain.CartItem, orderType domain.OrderType, fee float64) domain.Quote {
	subtotal := Subtotal(items)
	delivery := DeliveryFee(orderType, fee)
	return domain.Quote{
		Subtotal:    subtotal.InexactFloat64(),
		DeliveryFee: delivery.InexactFloat64(),
		Total:       subtotal.Add(delivery).InexactFloat64(),
	}
}

// Format renders an amount the way receipts show it: no trailing zeros.
func Format(amount float64) string {
	return decimal.NewFromFloat(amount).String()
}

// Sum adds order totals without float drift.
func Sum(amounts ...float64) float64 {
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(decimal.NewFromFloat(a))
	}
	return sum.InexactFloat64()
}
