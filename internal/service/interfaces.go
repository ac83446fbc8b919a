package service

import (
	"context"

	"restaurant-storefront/internal/domain"
)

type Repository interface {
	Menu(ctx context.Context) ([]domain.MenuItem, error)
	Cart(ctx context.Context, c domain.Collection) (domain.Cart, error)
	Orders(ctx context.Context) ([]domain.Order, error)
	Customers(ctx context.Context) ([]domain.Customer, error)
	Settings(ctx context.Context) (domain.Settings, error)
	Authenticated(ctx context.Context) (bool, error)
	Apply(ctx context.Context, cs domain.Changeset) error
}

// Notifier hands a message to an external messaging target and returns the
// link it was sent through.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) (string, error)
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

type MenuServiceInterface interface {
	List(ctx context.Context, filter MenuFilter) ([]domain.MenuItem, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id string) (*domain.MenuItem, error)
	Create(ctx context.Context, item *domain.MenuItem) error
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id string) error
}

type CartServiceInterface interface {
	Items(ctx context.Context) (domain.Cart, error)
	Add(ctx context.Context, itemID string, quantity int, notes string) (domain.Cart, error)
	Remove(ctx context.Context, itemID string) (domain.Cart, error)
	SetQuantity(ctx context.Context, itemID string, quantity int) (domain.Cart, error)
	Adjust(ctx context.Context, itemID string, delta int) (domain.Cart, error)
	Clear(ctx context.Context) error
	Quote(ctx context.Context, orderType domain.OrderType) (domain.Quote, error)
}

type CustomerServiceInterface interface {
	List(ctx context.Context, query string) ([]domain.Customer, error)
	Create(ctx context.Context, ref domain.CustomerRef) (*domain.Customer, error)
	Lookup(ctx context.Context, query string) (*domain.Customer, bool, error)
}

type OrderServiceInterface interface {
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Advance(ctx context.Context, id string) (*domain.Order, error)
	Transition(ctx context.Context, id string, to domain.OrderStatus) (*domain.Order, error)
	ReadyNotification(ctx context.Context, id string) (string, error)
	QRCode(ctx context.Context, id string) ([]byte, error)
}

type CheckoutServiceInterface interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
	ConfirmSale(ctx context.Context, req SaleRequest) (*domain.Order, error)
}

type SettingsServiceInterface interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Save(ctx context.Context, settings *domain.Settings) error
}

type AuthServiceInterface interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	Authenticated(ctx context.Context) (bool, error)
}

type DashboardServiceInterface interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}

var (
	_ MenuServiceInterface      = (*MenuService)(nil)
	_ CartServiceInterface      = (*CartService)(nil)
	_ CustomerServiceInterface  = (*CustomerService)(nil)
	_ OrderServiceInterface     = (*OrderService)(nil)
	_ CheckoutServiceInterface  = (*CheckoutService)(nil)
	_ SettingsServiceInterface  = (*SettingsService)(nil)
	_ AuthServiceInterface      = (*AuthService)(nil)
	_ DashboardServiceInterface = (*DashboardService)(nil)
)
