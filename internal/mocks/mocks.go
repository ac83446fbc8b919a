// Package mocks holds testify mocks for the service collaborators, in the
// shape mockery generates them.
package mocks

import (
	"context"

	"restaurant-storefront/internal/domain"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type Notifier struct {
	mock.Mock
}

func (m *Notifier) Notify(ctx context.Context, n domain.Notification) (string, error) {
	ret := m.Called(ctx, n)
	return ret.String(0), ret.Error(1)
}

func NewNotifier(t testingT) *Notifier {
	m := &Notifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	ret := m.Called(ctx, event)
	return ret.Error(0)
}

func NewEventPublisher(t testingT) *EventPublisher {
	m := &EventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type QRGenerator struct {
	mock.Mock
}

func (m *QRGenerator) Generate(orderID string) ([]byte, error) {
	ret := m.Called(orderID)
	var qr []byte
	if v := ret.Get(0); v != nil {
		qr = v.([]byte)
	}
	return qr, ret.Error(1)
}

func NewQRGenerator(t testingT) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type MessageWriter struct {
	mock.Mock
}

func (m *MessageWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	ret := m.Called(ctx, msgs)
	return ret.Error(0)
}

func NewMessageWriter(t testingT) *MessageWriter {
	m := &MessageWriter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type MessageReader struct {
	mock.Mock
}

func (m *MessageReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	ret := m.Called(ctx)
	return ret.Get(0).(kafka.Message), ret.Error(1)
}

func NewMessageReader(t testingT) *MessageReader {
	m := &MessageReader{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
