package update_booking

import (
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

// Request модель запроса на изменение бронирования. nil - поле не меняется.
type Request struct {
	ActorID     int64      // ID пользователя, выполняющего действие
	BookingID   int64      // ID бронирования
	WeddingDate *time.Time // Новая дата
	WeddingTime *string    // Новое время HH:MM, пустая строка сбрасывает время
	Location    *string    // Новое место проведения
	Notes       *string    // Новые заметки
}

// Response модель ответа
type Response struct {
	Booking      *domain.Booking
	PreviousDate *time.Time // Заполнено, если дата изменилась
}
