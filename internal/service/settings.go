package service

import (
	"context"
	"fmt"

	"restaurant-storefront/internal/domain"
)

type SettingsService struct {
	store *Store
}

func NewSettingsService(store *Store) *SettingsService {
	return &SettingsService{store: store}
}

func (s *SettingsService) Get(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.store.repo.Settings(ctx)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save replaces the settings record and the theme attribute together.
func (s *SettingsService) Save(ctx context.Context, settings *domain.Settings) error {
	if settings.DeliveryFee < 0 {
		return fmt.Errorf("%w: delivery fee must not be negative", ErrValidation)
	}
	if settings.Theme == "" {
		settings.Theme = "default"
	}
	if !settings.Theme.Valid() {
		return fmt.Errorf("%w: unknown theme %q", ErrValidation, settings.Theme)
	}

	ctx, unlock := s.store.lock(ctx)
	defer unlock()
	return s.store.repo.Apply(ctx, domain.Changeset{
		domain.CollectionSettings: settings,
		domain.CollectionTheme:    settings.Theme,
	})
}
