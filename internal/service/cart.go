package service

import (
	"context"
	"fmt"

	"restaurant-storefront/internal/domain"
	"restaurant-storefront/internal/pricing"
)

// CartService manages one cart collection. The storefront and the counter
// each get their own instance.
type CartService struct {
	store      *Store
	collection domain.Collection
}

func NewCartService(store *Store, collection domain.Collection) *CartService {
	return &CartService{store: store, collection: collection}
}

func (s *CartService) Items(ctx context.Context) (domain.Cart, error) {
	return s.store.repo.Cart(ctx, s.collection)
}

func (s *CartService) mutate(ctx context.Context, fn func(domain.Cart) domain.Cart) (domain.Cart, error) {
	ctx, unlock := s.store.lock(ctx)
	defer unlock()
	cart, err := s.store.repo.Cart(ctx, s.collection)
	if err != nil {
		return nil, err
	}
	if cart = fn(cart); cart == nil {
		cart = domain.Cart{}
	}
	if err := s.store.repo.Apply(ctx, domain.Changeset{s.collection: cart}); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) Add(ctx context.Context, itemID string, quantity int, notes string) (domain.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	menu, err := s.store.repo.Menu(ctx)
	if err != nil {
		return nil, err
	}
	var item *domain.MenuItem
	for i := range menu {
		if menu[i].ID == itemID {
			item = &menu[i]
			break
		}
	}
	if item == nil {
		return nil, fmt.Errorf("%w: menu item %s", ErrNotFound, itemID)
	}

	return s.mutate(ctx, func(cart domain.Cart) domain.Cart {
		cart = cart.Add(*item, quantity)
		if notes != "" {
			cart = cart.SetNotes(itemID, notes)
		}
		return cart
	})
}

func (s *CartService) Remove(ctx context.Context, itemID string) (domain.Cart, error) {
	return s.mutate(ctx, func(cart domain.Cart) domain.Cart {
		return cart.Remove(itemID)
	})
}

func (s *CartService) SetQuantity(ctx context.Context, itemID string, quantity int) (domain.Cart, error) {
	return s.mutate(ctx, func(cart domain.Cart) domain.Cart {
		return cart.SetQuantity(itemID, quantity)
	})
}

func (s *CartService) Adjust(ctx context.Context, itemID string, delta int) (domain.Cart, error) {
	return s.mutate(ctx, func(cart domain.Cart) domain.Cart {
		return cart.Adjust(itemID, delta)
	})
}

func (s *CartService) Clear(ctx context.Context) error {
	_, err := s.mutate(ctx, func(domain.Cart) domain.Cart {
		return domain.Cart{}
	})
	return err
}

// Quote prices the cart for orderType using the current delivery fee.
func (s *CartService) Quote(ctx context.Context, orderType domain.OrderType) (domain.Quote, error) {
	cart, err := s.store.repo.Cart(ctx, s.collection)
	if err != nil {
		return domain.Quote{}, err
	}
	settings, err := s.store.repo.Settings(ctx)
	if err != nil {
		return domain.Quote{}, err
	}
	return pricing.Quote(cart, orderType, settings.DeliveryFee), nil
}
