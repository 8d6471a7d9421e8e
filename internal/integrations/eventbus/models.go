package eventbus

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

// Типы событий жизненного цикла бронирования (routing key)
const (
	EventBookingCreated     = "booking.created"
	EventBookingConfirmed   = "booking.confirmed"
	EventBookingCompleted   = "booking.completed"
	EventBookingCancelled   = "booking.cancelled"
	EventBookingRescheduled = "booking.rescheduled"
)

// Event событие бронирования
type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Booking    BookingPayload `json:"booking"`
}

// BookingPayload состояние бронирования на момент события
type BookingPayload struct {
	BookingID    int64   `json:"bookingId"`
	PackageID    int64   `json:"packageId"`
	ClientID     int64   `json:"clientId"`
	WeddingDate  string  `json:"weddingDate"`
	Status       string  `json:"status"`
	PreviousDate *string `json:"previousDate,omitempty"`
	Reason       *string `json:"reason,omitempty"`
}

// NewBookingEvent создает событие по бронированию
func NewBookingEvent(eventType string, b *domain.Booking, occurredAt time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: occurredAt.UTC(),
		Booking: BookingPayload{
			BookingID:   b.ID,
			PackageID:   b.PackageID,
			ClientID:    b.ClientID,
			WeddingDate: domain.DateKey(b.WeddingDate),
			Status:      string(b.Status),
			Reason:      b.CancellationReason,
		},
	}
}

// EventTypeForStatus тип события для нового статуса
func EventTypeForStatus(status domain.BookingStatus) string {
	switch status {
	case domain.StatusConfirmed:
		return EventBookingConfirmed
	case domain.StatusCompleted:
		return EventBookingCompleted
	case domain.StatusCancelled:
		return EventBookingCancelled
	default:
		return EventBookingCreated
	}
}
