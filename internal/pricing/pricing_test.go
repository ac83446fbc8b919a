package pricing_test

import (
	"testing"

	"restaurant-storefront/internal/domain"
	"restaurant-storefront/internal/pricing"

	"github.com/jaswdr/faker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(price, discount float64, qty int) domain.CartItem {
	return domain.CartItem{MenuItem: domain.MenuItem{Price: price, Discount: discount}, Quantity: qty}
}

func TestSubtotalMatchesFormula(t *testing.T) {
	fake := faker.New()
	for round := 0; round < 25; round++ {
		var items []domain.CartItem
		want := 0
		for i := fake.IntBetween(1, 6); i > 0; i-- {
			price := fake.IntBetween(0, 500)
			discount := fake.IntBetween(0, price)
			qty := fake.IntBetween(1, 5)
			want += (price - discount) * qty
			items = append(items, line(float64(price), float64(discount), qty))
		}

		first := pricing.Subtotal(items)
		assert.True(t, decimal.NewFromInt(int64(want)).Equal(first))
		assert.True(t, first.Equal(pricing.Subtotal(items)), "repeat call must agree")
	}
}

func TestQuote(t *testing.T) {
	items := []domain.CartItem{line(100, 0, 2)}

	tests := []struct {
		name      string
		orderType domain.OrderType
		want      domain.Quote
	}{
		{name: "delivery adds fee", orderType: domain.OrderDelivery, want: domain.Quote{Subtotal: 200, DeliveryFee: 20, Total: 220}},
		{name: "takeaway has no fee", orderType: domain.OrderTakeaway, want: domain.Quote{Subtotal: 200, Total: 200}},
		{name: "dine-in has no fee", orderType: domain.OrderDineIn, want: domain.Quote{Subtotal: 200, Total: 200}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, pricing.Quote(items, testCase.orderType, 20))
		})
	}
}

func TestQuoteAvoidsFloatDrift(t *testing.T) {
	items := []domain.CartItem{line(0.1, 0, 3)}
	assert.Equal(t, 0.3, pricing.Quote(items, domain.OrderTakeaway, 0).Total)
}

func TestFormatAndSum(t *testing.T) {
	assert.Equal(t, "220", pricing.Format(220))
	assert.Equal(t, "75.5", pricing.Format(75.5))
	assert.Equal(t, 0.6, pricing.Sum(0.1, 0.2, 0.3))
	assert.Equal(t, float64(0), pricing.Sum())
}
