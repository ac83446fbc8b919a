// Package seed fills a store with demo traffic by driving the real checkout
// and counter flows.
package seed

import (
	"context"
	"fmt"

	"restaurant-storefront/internal/domain"
	"restaurant-storefront/internal/service"

	"github.com/jaswdr/faker"
)

type Generator struct {
	Menu     service.MenuServiceInterface
	Cart     service.CartServiceInterface
	POSCart  service.CartServiceInterface
	Checkout service.CheckoutServiceInterface
	Fake     faker.Faker

	// Customers is the size of the pool orders are drawn from, so repeat
	// phones exercise the upsert path.
	Customers int
	// SaleEvery makes every n-th order a counter sale. Zero disables sales.
	SaleEvery int
}

type Result struct {
	Checkouts int
	Sales     int
}

func (g *Generator) customerPool() []domain.CustomerRef {
	n := g.Customers
	if n <= 0 {
		n = 10
	}
	pool := make([]domain.CustomerRef, n)
	for i := range pool {
		pool[i] = domain.CustomerRef{
			Name:  g.Fake.Person().Name(),
			Phone: fmt.Sprintf("01%09d", g.Fake.IntBetween(0, 999999999)),
		}
	}
	return pool
}

// Run places n orders. progress is called after each one.
func (g *Generator) Run(ctx context.Context, n int, progress func()) (Result, error) {
	var res Result
	menu, err := g.Menu.List(ctx, service.MenuFilter{})
	if err != nil {
		return res, err
	}
	if len(menu) == 0 {
		return res, fmt.Errorf("menu is empty, nothing to order")
	}
	pool := g.customerPool()

	for i := 1; i <= n; i++ {
		sale := g.SaleEvery > 0 && i%g.SaleEvery == 0
		cart := g.Cart
		if sale {
			cart = g.POSCart
		}
		for lines := g.Fake.IntBetween(1, 3); lines > 0; lines-- {
			item := menu[g.Fake.IntBetween(0, len(menu)-1)]
			if _, err := cart.Add(ctx, item.ID, g.Fake.IntBetween(1, 4), ""); err != nil {
				return res, fmt.Errorf("add %s: %w", item.ID, err)
			}
		}

		orderType := domain.OrderTypes[g.Fake.IntBetween(0, len(domain.OrderTypes)-1)]
		customer := pool[g.Fake.IntBetween(0, len(pool)-1)]
		if sale {
			req := service.SaleRequest{Type: orderType, PaymentMethod: domain.PaymentCash}
			if g.Fake.IntBetween(0, 1) == 1 {
				req.Customer = &customer
			}
			if _, err := g.Checkout.ConfirmSale(ctx, req); err != nil {
				return res, fmt.Errorf("sale %d: %w", i, err)
			}
			res.Sales++
		} else {
			req := service.CheckoutRequest{
				Name:          customer.Name,
				Phone:         customer.Phone,
				Type:          orderType,
				PaymentMethod: domain.PaymentCash,
			}
			if orderType == domain.OrderDelivery {
				req.Address = g.Fake.Address().City()
			}
			if _, err := g.Checkout.Checkout(ctx, req); err != nil {
				return res, fmt.Errorf("checkout %d: %w", i, err)
			}
			res.Checkouts++
		}
		if progress != nil {
			progress()
		}
	}
	return res, nil
}
