package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"restaurant-storefront/internal/domain"
	"restaurant-storefront/internal/service"
	"restaurant-storefront/internal/storage"

	"github.com/stretchr/testify/require"
)

var (
	itemA = domain.MenuItem{ID: "A", Name: "Item A", Price: 100, Category: "mains"}
	itemB = domain.MenuItem{ID: "B", Name: "Item B", Description: "iced", Price: 40, Discount: 10, Category: "drinks"}
)

var fixedNow = time.Date(2024, 5, 1, 13, 30, 0, 0, time.Local)

type fixture struct {
	repo  *storage.Repository
	store *service.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, storage.NewMemoryKV())
}

func newFixtureWith(t *testing.T, kv storage.KV) *fixture {
	t.Helper()
	repo := storage.NewRepository(kv)
	require.NoError(t, repo.Apply(context.Background(), domain.Changeset{
		domain.CollectionMenu:      []domain.MenuItem{itemA, itemB},
		domain.CollectionCustomers: []domain.Customer{},
	}))
	return &fixture{repo: repo, store: service.NewStore(repo)}
}

func (f *fixture) cart(t *testing.T) domain.Cart {
	t.Helper()
	cart, err := f.repo.Cart(context.Background(), domain.CollectionCart)
	require.NoError(t, err)
	return cart
}

func (f *fixture) posCart(t *testing.T) domain.Cart {
	t.Helper()
	cart, err := f.repo.Cart(context.Background(), domain.CollectionPOSCart)
	require.NoError(t, err)
	return cart
}

func (f *fixture) orders(t *testing.T) []domain.Order {
	t.Helper()
	orders, err := f.repo.Orders(context.Background())
	require.NoError(t, err)
	return orders
}

func (f *fixture) customers(t *testing.T) []domain.Customer {
	t.Helper()
	customers, err := f.repo.Customers(context.Background())
	require.NoError(t, err)
	return customers
}

func (f *fixture) setDeliveryFee(t *testing.T, fee float64) {
	t.Helper()
	settings := domain.DefaultSettings()
	settings.DeliveryFee = fee
	require.NoError(t, f.repo.Apply(context.Background(), domain.Changeset{domain.CollectionSettings: settings}))
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}
