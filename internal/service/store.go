package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"restaurant-storefront/internal/storage"
)

var (
	ErrValidation         = errors.New("validation")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("admin login required")

	ErrEmptyCart      = fmt.Errorf("%w: cart is empty", ErrValidation)
	ErrMissingDetails = fmt.Errorf("%w: please complete all required details", ErrValidation)
)

// Store is the shared application state. Every service that reads and then
// writes a collection holds the lock for the whole sequence.
type Store struct {
	mu   sync.Mutex
	repo Repository
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// lock serializes a read-modify-write. Reads made with the returned context
// fail on backend errors instead of falling back to defaults.
func (s *Store) lock(ctx context.Context) (context.Context, func()) {
	s.mu.Lock()
	return storage.ForUpdate(ctx), s.mu.Unlock
}
