package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"restaurant-storefront/internal/domain"
	"restaurant-storefront/internal/mocks"
	"restaurant-storefront/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCheckout(t *testing.T, f *fixture, notifier service.Notifier, publisher service.EventPublisher) *service.CheckoutService {
	t.Helper()
	return service.NewCheckoutService(f.store, notifier, publisher,
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithOrderIDs(sequentialIDs("ord")),
	)
}

func TestCheckout_DeliveryScenario(t *testing.T) {
	f := newFixture(t)
	f.setDeliveryFee(t, 20)
	ctx := context.Background()
	_, err := service.NewCartService(f.store, domain.CollectionCart).Add(ctx, "A", 2, "")
	require.NoError(t, err)

	notifier := mocks.NewNotifier(t)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.Phone == "01000000000" && strings.Contains(n.Text, "ord1")
	})).Return("https://wa.me/01000000000?text=x", nil).Once()
	publisher := mocks.NewEventPublisher(t)
	publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderCreated && e.OrderID == "ord1" && e.Total == 220
	})).Return(nil).Once()

	result, err := newCheckout(t, f, notifier, publisher).Checkout(ctx, service.CheckoutRequest{
		Name:    "سارة",
		Phone:   "01234567890",
		Address: "شارع النيل",
		Type:    domain.OrderDelivery,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://wa.me/01000000000?text=x", result.NotificationURL)
	assert.Equal(t, 220.0, result.Order.Total)
	assert.Equal(t, domain.StatusWaiting, result.Order.Status)
	assert.Equal(t, domain.PaymentCash, result.Order.PaymentMethod)
	assert.Equal(t, "شارع النيل", result.Order.Address)
	assert.Equal(t, fixedNow.UnixMilli(), result.Order.Timestamp)

	assert.Empty(t, f.cart(t))
	orders := f.orders(t)
	require.NotEmpty(t, orders)
	assert.Equal(t, result.Order, orders[0])
}

func TestCheckout_NewestOrderFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cart := service.NewCartService(f.store, domain.CollectionCart)
	checkout := newCheckout(t, f, notifierStub(t), publisherStub(t))

	for range 2 {
		_, err := cart.Add(ctx, "B", 1, "")
		require.NoError(t, err)
		_, err = checkout.Checkout(ctx, service.CheckoutRequest{Name: "x", Phone: "0100", Type: domain.OrderDineIn})
		require.NoError(t, err)
	}

	orders := f.orders(t)
	require.Len(t, orders, 2)
	assert.Equal(t, "ord2", orders[0].ID)
	assert.Equal(t, "ord1", orders[1].ID)
	assert.Empty(t, orders[0].Address)
}

func TestCheckout_RejectsWithoutMutation(t *testing.T) {
	tests := []struct {
		name    string
		fill    bool
		req     service.CheckoutRequest
		wantErr error
	}{
		{
			name:    "empty cart",
			req:     service.CheckoutRequest{Name: "x", Phone: "0100", Type: domain.OrderTakeaway},
			wantErr: service.ErrEmptyCart,
		},
		{
			name:    "missing name",
			fill:    true,
			req:     service.CheckoutRequest{Name: "  ", Phone: "0100", Type: domain.OrderTakeaway},
			wantErr: service.ErrMissingDetails,
		},
		{
			name:    "missing phone",
			fill:    true,
			req:     service.CheckoutRequest{Name: "x", Type: domain.OrderTakeaway},
			wantErr: service.ErrMissingDetails,
		},
		{
			name:    "delivery without address",
			fill:    true,
			req:     service.CheckoutRequest{Name: "x", Phone: "0100", Type: domain.OrderDelivery},
			wantErr: service.ErrMissingDetails,
		},
		{
			name:    "unknown order type",
			fill:    true,
			req:     service.CheckoutRequest{Name: "x", Phone: "0100", Type: "drive-thru"},
			wantErr: service.ErrValidation,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			if testCase.fill {
				_, err := service.NewCartService(f.store, domain.CollectionCart).Add(ctx, "A", 1, "")
				require.NoError(t, err)
			}
			cartBefore := f.cart(t)

			// no expectations: any notification or event fails the test
			checkout := newCheckout(t, f, mocks.NewNotifier(t), mocks.NewEventPublisher(t))
			result, err := checkout.Checkout(ctx, testCase.req)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, testCase.wantErr)
			assert.ErrorIs(t, err, service.ErrValidation)
			assert.Empty(t, f.orders(t))
			assert.Empty(t, f.customers(t))
			assert.Equal(t, cartBefore, f.cart(t))
		})
	}
}

func TestCheckout_DisabledPaymentMethod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	settings := domain.DefaultSettings()
	settings.PaymentMethods.Card = false
	require.NoError(t, f.repo.Apply(ctx, domain.Changeset{domain.CollectionSettings: settings}))
	_, err := service.NewCartService(f.store, domain.CollectionCart).Add(ctx, "A", 1, "")
	require.NoError(t, err)

	_, err = newCheckout(t, f, mocks.NewNotifier(t), mocks.NewEventPublisher(t)).Checkout(ctx, service.CheckoutRequest{
		Name: "x", Phone: "0100", Type: domain.OrderTakeaway, PaymentMethod: domain.PaymentCard,
	})
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Len(t, f.cart(t), 1)
}

func TestCheckout_CustomerUpsert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cart := service.NewCartService(f.store, domain.CollectionCart)
	checkout := newCheckout(t, f, notifierStub(t), publisherStub(t))

	place := func(name string) {
		_, err := cart.Add(ctx, "A", 1, "")
		require.NoError(t, err)
		_, err = checkout.Checkout(ctx, service.CheckoutRequest{Name: name, Phone: "01234567890", Type: domain.OrderTakeaway})
		require.NoError(t, err)
	}

	place("First Name")
	customers := f.customers(t)
	require.Len(t, customers, 1)
	first := customers[0]
	assert.Equal(t, 1, first.TotalOrders)
	assert.Equal(t, "C-1001", first.Code)
	assert.NotEmpty(t, first.ID)

	place("Second Name")
	customers = f.customers(t)
	require.Len(t, customers, 1)
	assert.Equal(t, domain.Customer{
		ID:          first.ID,
		Code:        first.Code,
		Name:        "Second Name",
		Phone:       "01234567890",
		TotalOrders: 2,
	}, customers[0])
}

func TestCheckout_NotifyFailureKeepsOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := service.NewCartService(f.store, domain.CollectionCart).Add(ctx, "A", 1, "")
	require.NoError(t, err)

	notifier := mocks.NewNotifier(t)
	notifier.On("Notify", mock.Anything, mock.Anything).Return("", assert.AnError).Once()
	publisher := mocks.NewEventPublisher(t)
	publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	result, err := newCheckout(t, f, notifier, publisher).Checkout(ctx, service.CheckoutRequest{
		Name: "x", Phone: "0100", Type: domain.OrderTakeaway,
	})
	require.NoError(t, err)
	assert.Empty(t, result.NotificationURL)
	assert.Len(t, f.orders(t), 1)
}

func TestConfirmSale_WithoutCustomer(t *testing.T) {
	f := newFixture(t)
	f.setDeliveryFee(t, 20)
	ctx := context.Background()
	_, err := service.NewCartService(f.store, domain.CollectionPOSCart).Add(ctx, "B", 3, "")
	require.NoError(t, err)

	publisher := mocks.NewEventPublisher(t)
	publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Status == domain.StatusReady
	})).Return(nil).Once()

	order, err := newCheckout(t, f, mocks.NewNotifier(t), publisher).ConfirmSale(ctx, service.SaleRequest{
		Type:          domain.OrderDelivery,
		PaymentMethod: domain.PaymentReceipt,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusReady, order.Status)
	assert.Equal(t, 110.0, order.Total)
	assert.Empty(t, order.CustomerName)
	assert.Empty(t, order.CustomerPhone)
	_, ok := order.Customer()
	assert.False(t, ok)

	assert.Empty(t, f.customers(t))
	assert.Empty(t, f.posCart(t))
	assert.Equal(t, *order, f.orders(t)[0])
}

func TestConfirmSale_WithCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pos := service.NewCartService(f.store, domain.CollectionPOSCart)
	storefront := service.NewCartService(f.store, domain.CollectionCart)
	_, err := pos.Add(ctx, "A", 1, "")
	require.NoError(t, err)
	_, err = storefront.Add(ctx, "B", 1, "")
	require.NoError(t, err)

	order, err := newCheckout(t, f, mocks.NewNotifier(t), publisherStub(t)).ConfirmSale(ctx, service.SaleRequest{
		Customer: &domain.CustomerRef{Name: " Omar ", Phone: "0155"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderTakeaway, order.Type)
	assert.Equal(t, "Omar", order.CustomerName)
	customers := f.customers(t)
	require.Len(t, customers, 1)
	assert.Equal(t, 1, customers[0].TotalOrders)
	assert.Len(t, f.cart(t), 1, "storefront cart untouched")
}

func TestConfirmSale_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	checkout := newCheckout(t, f, mocks.NewNotifier(t), mocks.NewEventPublisher(t))

	_, err := checkout.ConfirmSale(ctx, service.SaleRequest{})
	assert.ErrorIs(t, err, service.ErrEmptyCart)

	_, err = service.NewCartService(f.store, domain.CollectionPOSCart).Add(ctx, "A", 1, "")
	require.NoError(t, err)
	_, err = checkout.ConfirmSale(ctx, service.SaleRequest{Customer: &domain.CustomerRef{Name: "x"}})
	assert.ErrorIs(t, err, service.ErrMissingDetails)
	assert.Len(t, f.posCart(t), 1)
	assert.Empty(t, f.orders(t))
}

func notifierStub(t *testing.T) *mocks.Notifier {
	n := mocks.NewNotifier(t)
	n.On("Notify", mock.Anything, mock.Anything).Return("https://wa.me/x", nil).Maybe()
	return n
}

func publisherStub(t *testing.T) *mocks.EventPublisher {
	p := mocks.NewEventPublisher(t)
	p.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil).Maybe()
	return p
}
