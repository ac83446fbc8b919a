package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"restaurant-storefront/internal/domain"

	"github.com/google/uuid"
)

// minLookupLength is the shortest counter search that triggers a lookup.
const minLookupLength = 4

type CustomerService struct {
	store *Store
	newID func() string
}

func NewCustomerService(store *Store) *CustomerService {
	return &CustomerService{store: store, newID: uuid.NewString}
}

func (s *CustomerService) List(ctx context.Context, query string) ([]domain.Customer, error) {
	customers, err := s.store.repo.Customers(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.TrimSpace(query)
	out := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if strings.Contains(c.Name, q) || strings.Contains(c.Phone, q) || strings.Contains(c.Code, q) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Lookup finds the first customer whose phone or code contains query. Short
// queries and misses report false without an error.
func (s *CustomerService) Lookup(ctx context.Context, query string) (*domain.Customer, bool, error) {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < minLookupLength {
		return nil, false, nil
	}
	customers, err := s.store.repo.Customers(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, c := range customers {
		if strings.Contains(c.Phone, q) || strings.Contains(c.Code, q) {
			return &c, true, nil
		}
	}
	return nil, false, nil
}

// Create registers a customer at the counter without counting an order.
func (s *CustomerService) Create(ctx context.Context, ref domain.CustomerRef) (*domain.Customer, error) {
	ref = normalizeRef(ref)
	if ref.Name == "" || ref.Phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", ErrValidation)
	}

	ctx, unlock := s.store.lock(ctx)
	defer unlock()
	customers, err := s.store.repo.Customers(ctx)
	if err != nil {
		return nil, err
	}
	if findByPhone(customers, ref.Phone) >= 0 {
		return nil, fmt.Errorf("%w: customer with phone %s already exists", ErrConflict, ref.Phone)
	}

	customer := domain.Customer{
		ID:    s.newID(),
		Code:  nextCustomerCode(customers),
		Name:  ref.Name,
		Phone: ref.Phone,
	}
	customers = append(customers, customer)
	if err := s.store.repo.Apply(ctx, domain.Changeset{domain.CollectionCustomers: customers}); err != nil {
		return nil, err
	}
	return &customer, nil
}

func normalizeRef(ref domain.CustomerRef) domain.CustomerRef {
	return domain.CustomerRef{Name: strings.TrimSpace(ref.Name), Phone: strings.TrimSpace(ref.Phone)}
}

func findByPhone(customers []domain.Customer, phone string) int {
	for i, c := range customers {
		if c.Phone == phone {
			return i
		}
	}
	return -1
}

// nextCustomerCode derives C-(1000+count+1), stepping past any code already
// taken.
func nextCustomerCode(customers []domain.Customer) string {
	taken := make(map[string]bool, len(customers))
	for _, c := range customers {
		taken[c.Code] = true
	}
	n := 1000 + len(customers) + 1
	for taken[fmt.Sprintf("C-%d", n)] {
		n++
	}
	return fmt.Sprintf("C-%d", n)
}

// upsertCustomer records one completed order for ref.Phone. The input slice
// is not modified.
func upsertCustomer(customers []domain.Customer, ref domain.CustomerRef, newID func() string) ([]domain.Customer, domain.Customer) {
	out := make([]domain.Customer, len(customers), len(customers)+1)
	copy(out, customers)

	if i := findByPhone(out, ref.Phone); i >= 0 {
		out[i].Name = ref.Name
		out[i].TotalOrders++
		return out, out[i]
	}

	customer := domain.Customer{
		ID:          newID(),
		Code:        nextCustomerCode(out),
		Name:        ref.Name,
		Phone:       ref.Phone,
		TotalOrders: 1,
	}
	return append(out, customer), customer
}
