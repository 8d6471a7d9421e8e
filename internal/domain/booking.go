package domain

import (
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid возвращает true для известных статусов
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal completed и cancelled конечные состояния
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo проверяет допустимость перехода
// pending -> confirmed -> completed, pending|confirmed -> cancelled
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

// Booking бронирование клиентом одного слота пакета на одну дату
type Booking struct {
	ID          int64
	PackageID   int64
	ClientID    int64
	WeddingDate time.Time
	WeddingTime *types.TimeString // передается как есть, без часовых поясов
	Location    string
	Notes       *string
	Status      BookingStatus

	StatusNote         *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive любое бронирование, кроме отмененного
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled возвращает true для отмененного бронирования
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// HoldsReleasableSlot бронирование держит слот, который вернется при отмене
func (b *Booking) HoldsReleasableSlot() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeEdited дату, время, место и заметки можно менять только у pending
func (b *Booking) CanBeEdited() bool {
	return b.Status == StatusPending
}

// PackageBookingsFilter фильтр для получения бронирований пакета
type PackageBookingsFilter struct {
	PackageID        int64          // Обязательный параметр
	StartDate        *time.Time     // Начало периода (включительно)
	EndDate          *time.Time     // Конец периода (включительно)
	Status           *BookingStatus // Фильтр по статусу
	IncludeCancelled bool           // Включать ли отмененные бронирования
}
