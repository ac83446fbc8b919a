package analytics

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"restaurant-storefront/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	dayLayout = "2006-01-02"
	retention = 7 * 24 * time.Hour
)

// RedisTally keeps one hash per local calendar day. ByStatus counts the
// orders that reached each status that day.
type RedisTally struct {
	Client *redis.Client
	Prefix string
}

func NewRedisTally(client *redis.Client, prefix string) *RedisTally {
	return &RedisTally{Client: client, Prefix: prefix}
}

func (t *RedisTally) dayKey(day string) string {
	return fmt.Sprintf("%sanalytics:daily:%s", t.Prefix, day)
}

func dayOf(ts time.Time) string {
	if ts.IsZero() {
		ts = time.Now()
	}
	return ts.Local().Format(dayLayout)
}

func (t *RedisTally) RecordOrder(ctx context.Context, event domain.OrderEvent) error {
	key := t.dayKey(dayOf(event.Timestamp))
	_, err := t.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, "orders", 1)
		pipe.HIncrByFloat(ctx, key, "revenue", event.Total)
		pipe.HIncrBy(ctx, key, "type:"+string(event.OrderType), 1)
		pipe.HIncrBy(ctx, key, "status:"+string(event.Status), 1)
		pipe.Expire(ctx, key, retention)
		return nil
	})
	return err
}

func (t *RedisTally) RecordStatus(ctx context.Context, event domain.OrderEvent) error {
	key := t.dayKey(dayOf(event.Timestamp))
	_, err := t.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, "status:"+string(event.Status), 1)
		pipe.Expire(ctx, key, retention)
		return nil
	})
	return err
}

// Daily reads the tally for the local day containing day. A day with no
// events yields zero counts.
func (t *RedisTally) Daily(ctx context.Context, day time.Time) (*domain.DailySales, error) {
	date := dayOf(day)
	fields, err := t.Client.HGetAll(ctx, t.dayKey(date)).Result()
	if err != nil {
		return nil, fmt.Errorf("read tally %s: %w", date, err)
	}

	stats := &domain.DailySales{
		Date:     date,
		ByType:   make(map[domain.OrderType]int, len(domain.OrderTypes)),
		ByStatus: make(map[domain.OrderStatus]int),
	}
	for _, ot := range domain.OrderTypes {
		stats.ByType[ot] = 0
	}

	for field, value := range fields {
		switch {
		case field == "orders":
			stats.Orders, _ = strconv.Atoi(value)
		case field == "revenue":
			if revenue, err := decimal.NewFromString(value); err == nil {
				stats.Revenue = revenue.Round(2).InexactFloat64()
			}
		case strings.HasPrefix(field, "type:"):
			n, _ := strconv.Atoi(value)
			stats.ByType[domain.OrderType(strings.TrimPrefix(field, "type:"))] = n
		case strings.HasPrefix(field, "status:"):
			n, _ := strconv.Atoi(value)
			stats.ByStatus[domain.OrderStatus(strings.TrimPrefix(field, "status:"))] = n
		}
	}
	return stats, nil
}
