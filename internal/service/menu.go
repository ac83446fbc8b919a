package service

import (
	"context"
	"fmt"
	"strings"

	"restaurant-storefront/internal/domain"

	"github.com/google/uuid"
)

// AllCategories is the label the storefront uses for "no category filter".
const AllCategories = "الكل"

type MenuFilter struct {
	Category string
	Query    string
}

func (f MenuFilter) matches(item domain.MenuItem) bool {
	switch f.Category {
	case "", "all", AllCategories:
	default:
		if item.Category != f.Category {
			return false
		}
	}
	q := strings.TrimSpace(f.Query)
	return strings.Contains(item.Name, q) || strings.Contains(item.Description, q)
}

type MenuService struct {
	store *Store
}

func NewMenuService(store *Store) *MenuService {
	return &MenuService{store: store}
}

func (s *MenuService) List(ctx context.Context, filter MenuFilter) ([]domain.MenuItem, error) {
	menu, err := s.store.repo.Menu(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.MenuItem, 0, len(menu))
	for _, item := range menu {
		if filter.matches(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Categories lists distinct categories in catalog order.
func (s *MenuService) Categories(ctx context.Context) ([]string, error) {
	menu, err := s.store.repo.Menu(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	categories := []string{}
	for _, item := range menu {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}
	return categories, nil
}

func (s *MenuService) Get(ctx context.Context, id string) (*domain.MenuItem, error) {
	menu, err := s.store.repo.Menu(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range menu {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, fmt.Errorf("%w: menu item %s", ErrNotFound, id)
}

func validateMenuItem(item *domain.MenuItem) error {
	item.Name = strings.TrimSpace(item.Name)
	switch {
	case item.Name == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case item.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	case item.Discount < 0:
		return fmt.Errorf("%w: discount must not be negative", ErrValidation)
	case item.Discount > item.Price:
		return fmt.Errorf("%w: discount must not exceed price", ErrValidation)
	}
	return nil
}

func (s *MenuService) Create(ctx context.Context, item *domain.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	ctx, unlock := s.store.lock(ctx)
	defer unlock()
	menu, err := s.store.repo.Menu(ctx)
	if err != nil {
		return err
	}
	for _, existing := range menu {
		if existing.ID == item.ID {
			return fmt.Errorf("%w: menu item %s already exists", ErrConflict, item.ID)
		}
	}
	menu = append(menu, *item)
	return s.store.repo.Apply(ctx, domain.Changeset{domain.CollectionMenu: menu})
}

func (s *MenuService) Update(ctx context.Context, item *domain.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}

	ctx, unlock := s.store.lock(ctx)
	defer unlock()
	menu, err := s.store.repo.Menu(ctx)
	if err != nil {
		return err
	}
	for i := range menu {
		if menu[i].ID == item.ID {
			menu[i] = *item
			return s.store.repo.Apply(ctx, domain.Changeset{domain.CollectionMenu: menu})
		}
	}
	return fmt.Errorf("%w: menu item %s", ErrNotFound, item.ID)
}

func (s *MenuService) Delete(ctx context.Context, id string) error {
	ctx, unlock := s.store.lock(ctx)
	defer unlock()
	menu, err := s.store.repo.Menu(ctx)
	if err != nil {
		return err
	}
	out := make([]domain.MenuItem, 0, len(menu))
	for _, item := range menu {
		if item.ID != id {
			out = append(out, item)
		}
	}
	if len(out) == len(menu) {
		return fmt.Errorf("%w: menu item %s", ErrNotFound, id)
	}
	return s.store.repo.Apply(ctx, domain.Changeset{domain.CollectionMenu: out})
}
