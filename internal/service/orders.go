package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restaurant-storefront/internal/domain"
	"restaurant-storefront/internal/logging"
	"restaurant-storefront/internal/notify"
)

// OrderFilter narrows the ledger. An empty or "all" status keeps every order.
type OrderFilter struct {
	Status string
	Query  string
}

func (f OrderFilter) matches(o domain.Order) bool {
	if f.Status != "" && f.Status != "all" && string(o.Status) != f.Status {
		return false
	}
	q := strings.TrimSpace(f.Query)
	return strings.Contains(o.ID, q) ||
		strings.Contains(o.CustomerName, q) ||
		strings.Contains(o.CustomerPhone, q)
}

type OrderService struct {
	store     *Store
	notifier  Notifier
	publisher EventPublisher
	qr        QRGenerator
}

func NewOrderService(store *Store, notifier Notifier, publisher EventPublisher, qr QRGenerator) *OrderService {
	return &OrderService{
		store:     store,
		notifier:  notifier,
		publisher: publisher,
		qr:        qr,
	}
}

func (s *OrderService) List(ctx context.Context, filter OrderFilter) ([]domain.Order, error) {
	orders, err := s.store.repo.Orders(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if filter.matches(o) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	orders, err := s.store.repo.Orders(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
}

// Advance moves the order one step along its lifecycle.
func (s *OrderService) Advance(ctx context.Context, id string) (*domain.Order, error) {
	return s.update(ctx, id, func(current domain.OrderStatus) (domain.OrderStatus, error) {
		next, ok := current.Next()
		if !ok {
			return "", fmt.Errorf("%w: order %s is %s", ErrInvalidTransition, id, current)
		}
		return next, nil
	})
}

// Transition applies to only when it is the immediate successor of the
// current status.
func (s *OrderService) Transition(ctx context.Context, id string, to domain.OrderStatus) (*domain.Order, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, to)
	}
	return s.update(ctx, id, func(current domain.OrderStatus) (domain.OrderStatus, error) {
		if next, ok := current.Next(); !ok || next != to {
			return "", fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current, to)
		}
		return to, nil
	})
}

func (s *OrderService) update(ctx context.Context, id string, step func(domain.OrderStatus) (domain.OrderStatus, error)) (*domain.Order, error) {
	order, err := func() (*domain.Order, error) {
		ctx, unlock := s.store.lock(ctx)
		defer unlock()
		orders, err := s.store.repo.Orders(ctx)
		if err != nil {
			return nil, err
		}
		for i := range orders {
			if orders[i].ID != id {
				continue
			}
			next, err := step(orders[i].Status)
			if err != nil {
				return nil, err
			}
			orders[i].Status = next
			if err := s.store.repo.Apply(ctx, domain.Changeset{domain.CollectionOrders: orders}); err != nil {
				return nil, err
			}
			updated := orders[i]
			return &updated, nil
		}
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}()
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, domain.EventOrderStatusChanged, *order)
	return order, nil
}

// ReadyNotification builds the "order ready" message link for the order's
// customer.
func (s *OrderService) ReadyNotification(ctx context.Context, id string) (string, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	customer, ok := order.Customer()
	if !ok {
		return "", fmt.Errorf("%w: order %s has no customer phone", ErrValidation, id)
	}
	settings, err := s.store.repo.Settings(ctx)
	if err != nil {
		return "", err
	}
	return s.notifier.Notify(ctx, domain.Notification{
		Phone: customer.Phone,
		Text:  notify.ReadyMessage(order.ID, settings.RestaurantName),
	})
}

func (s *OrderService) QRCode(ctx context.Context, id string) ([]byte, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.qr.Generate(id)
}

func publish(ctx context.Context, publisher EventPublisher, eventType string, order domain.Order) {
	if publisher == nil {
		return
	}
	err := publisher.PublishOrderEvent(ctx, domain.OrderEvent{
		Type:      eventType,
		OrderID:   order.ID,
		Status:    order.Status,
		OrderType: order.Type,
		Total:     order.Total,
		Timestamp: time.Now(),
	})
	if err != nil {
		logging.FromContext(ctx).Warn("order_event_failed", "order_id", order.ID, "type", eventType, "error", err)
	}
}
