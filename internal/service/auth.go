package service

import (
	"context"

	"restaurant-storefront/internal/domain"
)

const (
	adminUsername = "admin"
	adminPassword = "123456"
)

type AuthService struct {
	store *Store
}

func NewAuthService(store *Store) *AuthService {
	return &AuthService{store: store}
}

func (s *AuthService) Login(ctx context.Context, username, password string) error {
	if username != adminUsername || password != adminPassword {
		return ErrInvalidCredentials
	}
	ctx, unlock := s.store.lock(ctx)
	defer unlock()
	return s.store.repo.Apply(ctx, domain.Changeset{domain.CollectionAuth: true})
}

func (s *AuthService) Logout(ctx context.Context) error {
	ctx, unlock := s.store.lock(ctx)
	defer unlock()
	return s.store.repo.Apply(ctx, domain.Changeset{domain.CollectionAuth: false})
}

func (s *AuthService) Authenticated(ctx context.Context) (bool, error) {
	return s.store.repo.Authenticated(ctx)
}
