// Package analytics turns the order event stream into daily sales tallies.
package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"restaurant-storefront/internal/domain"
	"restaurant-storefront/internal/logging"

	"github.com/segmentio/kafka-go"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type Tally interface {
	RecordOrder(ctx context.Context, event domain.OrderEvent) error
	RecordStatus(ctx context.Context, event domain.OrderEvent) error
}

const defaultReadBackoff = time.Second

type Consumer struct {
	Reader MessageReader
	Tally  Tally

	// Backoff is the pause after a failed read before the next attempt.
	Backoff time.Duration
}

func NewConsumer(reader MessageReader, tally Tally) *Consumer {
	return &Consumer{
		Reader:  reader,
		Tally:   tally,
		Backoff: defaultReadBackoff,
	}
}

// Start reads until ctx is cancelled or the reader is closed. Messages that
// cannot be decoded or tallied are logged and skipped.
func (c *Consumer) Start(ctx context.Context) error {
	l := logging.FromContext(ctx).With("svc", "analytics")
	l.Info("consumer_started")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				l.Info("consumer_stopped")
				return nil
			}
			l.Warn("read_failed", "error", err, "retry_in", c.Backoff)
			select {
			case <-ctx.Done():
				l.Info("consumer_stopped")
				return nil
			case <-time.After(c.Backoff):
			}
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			l.Warn("malformed_event", "offset", message.Offset, "error", err)
			continue
		}
		if err := c.Process(ctx, event); err != nil {
			l.Warn("tally_failed", "order_id", event.OrderID, "type", event.Type, "error", err)
			continue
		}
		l.Debug("event_tallied", "order_id", event.OrderID, "type", event.Type)
	}
}

func (c *Consumer) Process(ctx context.Context, event domain.OrderEvent) error {
	switch event.Type {
	case domain.EventOrderCreated:
		return c.Tally.RecordOrder(ctx, event)
	case domain.EventOrderStatusChanged:
		return c.Tally.RecordStatus(ctx, event)
	}
	return nil
}
