package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restaurant-storefront/internal/domain"
	"restaurant-storefront/internal/logging"
	"restaurant-storefront/internal/notify"
	"restaurant-storefront/internal/pricing"

	"github.com/google/uuid"
	"github.com/lucsky/cuid"
)

type CheckoutRequest struct {
	Name          string               `json:"name"`
	Phone         string               `json:"phone"`
	Address       string               `json:"address"`
	Type          domain.OrderType     `json:"type"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
}

type CheckoutResult struct {
	Order           domain.Order `json:"order"`
	NotificationURL string       `json:"notificationUrl,omitempty"`
}

// SaleRequest is a counter sale. Customer is nil when none is attached.
type SaleRequest struct {
	Type          domain.OrderType     `json:"type"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	Customer      *domain.CustomerRef  `json:"customer,omitempty"`
}

type CheckoutService struct {
	store      *Store
	notifier   Notifier
	publisher  EventPublisher
	now        func() time.Time
	newOrderID func() string
	newID      func() string
}

type CheckoutOption func(*CheckoutService)

func WithClock(now func() time.Time) CheckoutOption {
	return func(s *CheckoutService) { s.now = now }
}

func WithOrderIDs(newOrderID func() string) CheckoutOption {
	return func(s *CheckoutService) { s.newOrderID = newOrderID }
}

func NewCheckoutService(store *Store, notifier Notifier, publisher EventPublisher, opts ...CheckoutOption) *CheckoutService {
	s := &CheckoutService{
		store:      store,
		notifier:   notifier,
		publisher:  publisher,
		now:        time.Now,
		newOrderID: cuid.New,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func normalizeTypeAndPayment(t domain.OrderType, m domain.PaymentMethod, settings domain.Settings) (domain.OrderType, domain.PaymentMethod, error) {
	if t == "" {
		t = domain.OrderTakeaway
	}
	if m == "" {
		m = domain.PaymentCash
	}
	if !t.Valid() {
		return "", "", fmt.Errorf("%w: unknown order type %q", ErrValidation, t)
	}
	if !m.Valid() {
		return "", "", fmt.Errorf("%w: unknown payment method %q", ErrValidation, m)
	}
	if !settings.PaymentMethods.Enabled(m) {
		return "", "", fmt.Errorf("%w: payment method %s is disabled", ErrValidation, m)
	}
	return t, m, nil
}

// Checkout turns the storefront cart into a waiting order. The customer
// upsert, the new ledger and the emptied cart are written as one batch; the
// notification runs after and never undoes it.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	l := logging.FromContext(ctx).With("svc", "checkout")

	order, settings, err := s.placeCheckout(ctx, req)
	if err != nil {
		return nil, err
	}
	l.Info("order_created", "order_id", order.ID, "type", order.Type, "total", order.Total)

	result := &CheckoutResult{Order: order}
	link, err := s.notifier.Notify(ctx, domain.Notification{
		Phone: settings.WhatsApp,
		Text:  notify.OrderMessage(order),
	})
	if err != nil {
		l.Info("checkout_notify_skipped", "order_id", order.ID, "error", err)
	} else {
		result.NotificationURL = link
	}

	publish(ctx, s.publisher, domain.EventOrderCreated, order)
	return result, nil
}

func (s *CheckoutService) placeCheckout(ctx context.Context, req CheckoutRequest) (domain.Order, domain.Settings, error) {
	ctx, unlock := s.store.lock(ctx)
	defer unlock()
	repo := s.store.repo

	cart, err := repo.Cart(ctx, domain.CollectionCart)
	if err != nil {
		return domain.Order{}, domain.Settings{}, err
	}
	settings, err := repo.Settings(ctx)
	if err != nil {
		return domain.Order{}, domain.Settings{}, err
	}

	ref := normalizeRef(domain.CustomerRef{Name: req.Name, Phone: req.Phone})
	address := strings.TrimSpace(req.Address)
	if len(cart) == 0 {
		return domain.Order{}, settings, ErrEmptyCart
	}
	if ref.Name == "" || ref.Phone == "" || (req.Type == domain.OrderDelivery && address == "") {
		return domain.Order{}, settings, ErrMissingDetails
	}
	orderType, payment, err := normalizeTypeAndPayment(req.Type, req.PaymentMethod, settings)
	if err != nil {
		return domain.Order{}, settings, err
	}
	if orderType != domain.OrderDelivery {
		address = ""
	}

	customers, err := repo.Customers(ctx)
	if err != nil {
		return domain.Order{}, settings, err
	}
	orders, err := repo.Orders(ctx)
	if err != nil {
		return domain.Order{}, settings, err
	}

	quote := pricing.Quote(cart, orderType, settings.DeliveryFee)
	customers, _ = upsertCustomer(customers, ref, s.newID)
	order := domain.Order{
		ID:            s.newOrderID(),
		Items:         cart.Snapshot(),
		Total:         quote.Total,
		Status:        domain.StatusWaiting,
		Type:          orderType,
		PaymentMethod: payment,
		CustomerPhone: ref.Phone,
		CustomerName:  ref.Name,
		Address:       address,
		Timestamp:     s.now().UnixMilli(),
	}

	err = repo.Apply(ctx, domain.Changeset{
		domain.CollectionCustomers: customers,
		domain.CollectionOrders:    prepend(order, orders),
		domain.CollectionCart:      domain.Cart{},
	})
	if err != nil {
		return domain.Order{}, settings, fmt.Errorf("save checkout: %w", err)
	}
	return order, settings, nil
}

// ConfirmSale records a counter sale from the POS cart. The order starts as
// ready and the customer is optional.
func (s *CheckoutService) ConfirmSale(ctx context.Context, req SaleRequest) (*domain.Order, error) {
	order, err := s.placeSale(ctx, req)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).With("svc", "pos").
		Info("sale_confirmed", "order_id", order.ID, "type", order.Type, "total", order.Total)

	publish(ctx, s.publisher, domain.EventOrderCreated, order)
	return &order, nil
}

func (s *CheckoutService) placeSale(ctx context.Context, req SaleRequest) (domain.Order, error) {
	ctx, unlock := s.store.lock(ctx)
	defer unlock()
	repo := s.store.repo

	cart, err := repo.Cart(ctx, domain.CollectionPOSCart)
	if err != nil {
		return domain.Order{}, err
	}
	if len(cart) == 0 {
		return domain.Order{}, ErrEmptyCart
	}
	settings, err := repo.Settings(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	orderType, payment, err := normalizeTypeAndPayment(req.Type, req.PaymentMethod, settings)
	if err != nil {
		return domain.Order{}, err
	}

	var ref *domain.CustomerRef
	if req.Customer != nil {
		r := normalizeRef(*req.Customer)
		if r.Name == "" || r.Phone == "" {
			return domain.Order{}, ErrMissingDetails
		}
		ref = &r
	}

	orders, err := repo.Orders(ctx)
	if err != nil {
		return domain.Order{}, err
	}

	quote := pricing.Quote(cart, orderType, settings.DeliveryFee)
	order := domain.Order{
		ID:            s.newOrderID(),
		Items:         cart.Snapshot(),
		Total:         quote.Total,
		Status:        domain.StatusReady,
		Type:          orderType,
		PaymentMethod: payment,
		Timestamp:     s.now().UnixMilli(),
	}
	changes := domain.Changeset{
		domain.CollectionPOSCart: domain.Cart{},
	}

	if ref != nil {
		customers, err := repo.Customers(ctx)
		if err != nil {
			return domain.Order{}, err
		}
		customers, _ = upsertCustomer(customers, *ref, s.newID)
		changes[domain.CollectionCustomers] = customers
		order.CustomerName = ref.Name
		order.CustomerPhone = ref.Phone
	}
	changes[domain.CollectionOrders] = prepend(order, orders)

	if err := repo.Apply(ctx, changes); err != nil {
		return domain.Order{}, fmt.Errorf("save sale: %w", err)
	}
	return order, nil
}

func prepend(order domain.Order, orders []domain.Order) []domain.Order {
	out := make([]domain.Order, 0, len(orders)+1)
	out = append(out, order)
	return append(out, orders...)
}
