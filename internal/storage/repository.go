package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"restaurant-storefront/internal/domain"
	"restaurant-storefront/internal/logging"
)

// Repository maps collections onto a KV store as JSON documents. Reads that
// find nothing usable return the built-in default for that collection.
type Repository struct {
	kv KV
}

func NewRepository(kv KV) *Repository {
	return &Repository{kv: kv}
}

type forUpdateKey struct{}

// ForUpdate marks ctx as the read half of a read-modify-write. Under it a
// backend read error is returned instead of replaced by the default, so the
// caller cannot write a default back over stored data.
func ForUpdate(ctx context.Context) context.Context {
	return context.WithValue(ctx, forUpdateKey{}, true)
}

func isForUpdate(ctx context.Context) bool {
	v, _ := ctx.Value(forUpdateKey{}).(bool)
	return v
}

func load[T any](ctx context.Context, r *Repository, c domain.Collection, fallback func() T) (T, error) {
	key, err := KeyFor(c)
	if err != nil {
		var zero T
		return zero, err
	}

	l := logging.FromContext(ctx).With("storage", "repository", "key", key)
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			var zero T
			return zero, ctxErr
		}
		if !errors.Is(err, ErrNotFound) {
			if isForUpdate(ctx) {
				var zero T
				return zero, fmt.Errorf("load %s: %w", key, err)
			}
			l.Warn("load_failed_using_default", "error", err)
		}
		return fallback(), nil
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		l.Warn("malformed_value_using_default", "error", err)
		return fallback(), nil
	}
	return value, nil
}

func (r *Repository) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	return load(ctx, r, domain.CollectionMenu, domain.DefaultMenu)
}

func (r *Repository) Cart(ctx context.Context, c domain.Collection) (domain.Cart, error) {
	if c != domain.CollectionCart && c != domain.CollectionPOSCart {
		return nil, fmt.Errorf("%q is not a cart collection", c)
	}
	return load(ctx, r, c, func() domain.Cart { return domain.Cart{} })
}

func (r *Repository) Orders(ctx context.Context) ([]domain.Order, error) {
	return load(ctx, r, domain.CollectionOrders, func() []domain.Order { return []domain.Order{} })
}

func (r *Repository) Customers(ctx context.Context) ([]domain.Customer, error) {
	return load(ctx, r, domain.CollectionCustomers, domain.DefaultCustomers)
}

func (r *Repository) Settings(ctx context.Context) (domain.Settings, error) {
	return load(ctx, r, domain.CollectionSettings, domain.DefaultSettings)
}

func (r *Repository) Authenticated(ctx context.Context) (bool, error) {
	return load(ctx, r, domain.CollectionAuth, func() bool { return false })
}

// Apply serializes every collection in cs and writes them in one batch.
func (r *Repository) Apply(ctx context.Context, cs domain.Changeset) error {
	if len(cs) == 0 {
		return nil
	}
	entries := make(map[string][]byte, len(cs))
	for c, value := range cs {
		key, err := KeyFor(c)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		entries[key] = raw
	}
	return r.kv.SetMany(ctx, entries)
}
