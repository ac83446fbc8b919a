package storage_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"restaurant-storefront/internal/domain"
	"restaurant-storefront/internal/mocks"
	"restaurant-storefront/internal/storage"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestKafkaPublisher_PublishOrderEvent(t *testing.T) {
	writer := mocks.NewMessageWriter(t)
	publisher := storage.NewKafkaPublisher(writer)

	event := domain.OrderEvent{
		Type:      domain.EventOrderCreated,
		OrderID:   "ord-1",
		Status:    domain.StatusWaiting,
		OrderType: domain.OrderDelivery,
		Total:     220,
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	writer.On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
		if len(msgs) != 1 || string(msgs[0].Key) != "ord-1" {
			return false
		}
		var got domain.OrderEvent
		if err := json.Unmarshal(msgs[0].Value, &got); err != nil {
			return false
		}
		return got.Type == domain.EventOrderCreated && got.Total == 220
	})).Return(nil).Once()

	require.NoError(t, publisher.PublishOrderEvent(context.Background(), event))
}

func TestKafkaPublisher_WriterError(t *testing.T) {
	writer := mocks.NewMessageWriter(t)
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	err := storage.NewKafkaPublisher(writer).PublishOrderEvent(context.Background(), domain.OrderEvent{OrderID: "x"})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, storage.NopPublisher{}.PublishOrderEvent(context.Background(), domain.OrderEvent{}))
}
