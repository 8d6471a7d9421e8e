package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/logger"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	publishErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	f.declared = append(f.declared, name+":"+kind)
	return nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          42,
		PackageID:   5,
		ClientID:    9,
		WeddingDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Status:      domain.StatusConfirmed,
	}
}

func TestPublish(t *testing.T) {
	ch := &fakeChannel{}
	p, err := NewPublisherWithChannel(ch, "planner.bookings", logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"planner.bookings:topic"}, ch.declared)

	event := NewBookingEvent(EventTypeForStatus(domain.StatusConfirmed), testBooking(), time.Now())
	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, ch.published, 1)
	assert.Equal(t, EventBookingConfirmed, ch.keys[0])
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)

	var decoded Event
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &decoded))
	assert.Equal(t, "2025-12-01", decoded.Booking.WeddingDate)
	assert.Equal(t, event.ID, decoded.ID)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublishError(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	p, err := NewPublisherWithChannel(ch, "planner.bookings", logger.NewNop())
	require.NoError(t, err)

	err = p.Publish(context.Background(), NewBookingEvent(EventBookingCreated, testBooking(), time.Now()))

	assert.ErrorIs(t, err, ErrPublish)
}

func TestEventTypeForStatus(t *testing.T) {
	assert.Equal(t, EventBookingCancelled, EventTypeForStatus(domain.StatusCancelled))
	assert.Equal(t, EventBookingCompleted, EventTypeForStatus(domain.StatusCompleted))
}
