package service

import (
	"context"
	"time"

	"restaurant-storefront/internal/domain"
	"restaurant-storefront/internal/pricing"
)

type DashboardService struct {
	store *Store
	now   func() time.Time
}

func NewDashboardService(store *Store, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{store: store, now: now}
}

// Stats summarizes the ledger. "Today" starts at local midnight.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	orders, err := s.store.repo.Orders(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.store.repo.Customers(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).UnixMilli()

	stats := &domain.DashboardStats{
		TotalOrders:    len(orders),
		TotalCustomers: len(customers),
		OrdersByType:   make(map[domain.OrderType]int, len(domain.OrderTypes)),
	}
	for _, t := range domain.OrderTypes {
		stats.OrdersByType[t] = 0
	}

	var all, today []float64
	for _, o := range orders {
		all = append(all, o.Total)
		stats.OrdersByType[o.Type]++
		if o.Timestamp >= midnight {
			today = append(today, o.Total)
			stats.TodayOrders++
		}
	}
	stats.TotalRevenue = pricing.Sum(all...)
	stats.TodayRevenue = pricing.Sum(today...)
	return stats, nil
}
