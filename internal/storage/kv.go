package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"restaurant-storefront/internal/domain"
)

var ErrNotFound = errors.New("key not found")

// KV is the persistence collaborator: JSON documents under fixed keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// SetMany writes every entry or none of them.
	SetMany(ctx context.Context, entries map[string][]byte) error
}

const (
	KeyMenu      = "db_menu"
	KeyCart      = "db_cart"
	KeyPOSCart   = "db_pos_cart"
	KeyOrders    = "db_orders"
	KeyCustomers = "db_customers"
	KeySettings  = "restaurant_settings"
	KeyAuth      = "is_admin"
	KeyTheme     = "data_theme"
)

var collectionKeys = map[domain.Collection]string{
	domain.CollectionMenu:      KeyMenu,
	domain.CollectionCart:      KeyCart,
	domain.CollectionPOSCart:   KeyPOSCart,
	domain.CollectionOrders:    KeyOrders,
	domain.CollectionCustomers: KeyCustomers,
	domain.CollectionSettings:  KeySettings,
	domain.CollectionAuth:      KeyAuth,
	domain.CollectionTheme:     KeyTheme,
}

func KeyFor(c domain.Collection) (string, error) {
	key, ok := collectionKeys[c]
	if !ok {
		return "", fmt.Errorf("unknown collection %q", c)
	}
	return key, nil
}

func Set(ctx context.Context, kv KV, key string, value []byte) error {
	return kv.SetMany(ctx, map[string][]byte{key: value})
}

func sortedKeys(entries map[string][]byte) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
