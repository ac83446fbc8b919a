package service_test

import (
	"context"
	"testing"

	"restaurant-storefront/internal/domain"
	"restaurant-storefront/internal/mocks"
	"restaurant-storefront/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedOrders(t *testing.T, f *fixture, orders ...domain.Order) {
	t.Helper()
	require.NoError(t, f.repo.Apply(context.Background(), domain.Changeset{domain.CollectionOrders: orders}))
}

func TestOrderService_AdvanceWalksLifecycle(t *testing.T) {
	f := newFixture(t)
	seedOrders(t, f, domain.Order{ID: "o1", Status: domain.StatusWaiting, Type: domain.OrderTakeaway})
	publisher := mocks.NewEventPublisher(t)
	publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e domain.OrderEvent) bool {
		return e.Type == domain.EventOrderStatusChanged && e.OrderID == "o1"
	})).Return(nil).Times(3)
	svc := service.NewOrderService(f.store, mocks.NewNotifier(t), publisher, mocks.NewQRGenerator(t))
	ctx := context.Background()

	for _, want := range []domain.OrderStatus{domain.StatusPreparing, domain.StatusReady, domain.StatusDone} {
		order, err := svc.Advance(ctx, "o1")
		require.NoError(t, err)
		assert.Equal(t, want, order.Status)
		assert.Equal(t, want, f.orders(t)[0].Status)
	}

	_, err := svc.Advance(ctx, "o1")
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
	assert.Equal(t, domain.StatusDone, f.orders(t)[0].Status)
}

func TestOrderService_Transition(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.OrderStatus
		to      domain.OrderStatus
		wantErr error
	}{
		{name: "adjacent", from: domain.StatusWaiting, to: domain.StatusPreparing},
		{name: "skip to done", from: domain.StatusWaiting, to: domain.StatusDone, wantErr: service.ErrInvalidTransition},
		{name: "skip to ready", from: domain.StatusWaiting, to: domain.StatusReady, wantErr: service.ErrInvalidTransition},
		{name: "backwards", from: domain.StatusReady, to: domain.StatusPreparing, wantErr: service.ErrInvalidTransition},
		{name: "same status", from: domain.StatusPreparing, to: domain.StatusPreparing, wantErr: service.ErrInvalidTransition},
		{name: "from done", from: domain.StatusDone, to: domain.StatusWaiting, wantErr: service.ErrInvalidTransition},
		{name: "unknown status", from: domain.StatusWaiting, to: "cancelled", wantErr: service.ErrValidation},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newFixture(t)
			seedOrders(t, f, domain.Order{ID: "o1", Status: testCase.from})
			svc := service.NewOrderService(f.store, mocks.NewNotifier(t), publisherStub(t), mocks.NewQRGenerator(t))

			order, err := svc.Transition(context.Background(), "o1", testCase.to)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Equal(t, testCase.from, f.orders(t)[0].Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.to, order.Status)
		})
	}
}

func TestOrderService_UnknownOrder(t *testing.T) {
	f := newFixture(t)
	svc := service.NewOrderService(f.store, mocks.NewNotifier(t), mocks.NewEventPublisher(t), mocks.NewQRGenerator(t))
	ctx := context.Background()

	_, err := svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.Advance(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.QRCode(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestOrderService_List(t *testing.T) {
	f := newFixture(t)
	seedOrders(t, f,
		domain.Order{ID: "o3", Status: domain.StatusReady, CustomerName: "Mona", CustomerPhone: "0111"},
		domain.Order{ID: "o2", Status: domain.StatusWaiting},
		domain.Order{ID: "o1", Status: domain.StatusReady, CustomerName: "Ali", CustomerPhone: "0122"},
	)
	svc := service.NewOrderService(f.store, mocks.NewNotifier(t), mocks.NewEventPublisher(t), mocks.NewQRGenerator(t))
	ctx := context.Background()

	ids := func(orders []domain.Order) []string {
		out := []string{}
		for _, o := range orders {
			out = append(out, o.ID)
		}
		return out
	}

	all, err := svc.List(ctx, service.OrderFilter{Status: "all"})
	require.NoError(t, err)
	assert.Equal(t, []string{"o3", "o2", "o1"}, ids(all))

	ready, err := svc.List(ctx, service.OrderFilter{Status: string(domain.StatusReady)})
	require.NoError(t, err)
	assert.Equal(t, []string{"o3", "o1"}, ids(ready))

	byPhone, err := svc.List(ctx, service.OrderFilter{Query: "0122"})
	require.NoError(t, err)
	assert.Equal(t, []string{"o1"}, ids(byPhone))
}

func TestOrderService_ReadyNotification(t *testing.T) {
	f := newFixture(t)
	seedOrders(t, f,
		domain.Order{ID: "o1", Status: domain.StatusReady, CustomerName: "Mona", CustomerPhone: "0111"},
		domain.Order{ID: "o2", Status: domain.StatusReady},
	)
	notifier := mocks.NewNotifier(t)
	notifier.On("Notify", mock.Anything, domain.Notification{
		Phone: "0111",
		Text:  "مرحباً، طلبك رقم o1 من مطعم السعادة جاهز الآن!",
	}).Return("https://wa.me/0111?text=ready", nil).Once()
	svc := service.NewOrderService(f.store, notifier, mocks.NewEventPublisher(t), mocks.NewQRGenerator(t))
	ctx := context.Background()

	link, err := svc.ReadyNotification(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/0111?text=ready", link)

	_, err = svc.ReadyNotification(ctx, "o2")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestOrderService_QRCode(t *testing.T) {
	f := newFixture(t)
	seedOrders(t, f, domain.Order{ID: "o1", Status: domain.StatusWaiting})
	qr := mocks.NewQRGenerator(t)
	qr.On("Generate", "o1").Return([]byte("png"), nil).Once()
	svc := service.NewOrderService(f.store, mocks.NewNotifier(t), mocks.NewEventPublisher(t), qr)

	png, err := svc.QRCode(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)
}

func TestDefaultQRGenerator(t *testing.T) {
	g := &service.DefaultQRGenerator{BaseURL: "http://localhost:8080/"}
	assert.Equal(t, "http://localhost:8080/api/orders/o%201", g.Link("o 1"))

	png, err := g.Generate("o1")
	require.NoError(t, err)
	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}
