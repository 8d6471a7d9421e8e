package transition_booking

import "github.com/m04kA/SMC-PlannerBookingService/internal/domain"

// Request модель запроса на смену статуса
type Request struct {
	ActorID   int64                // ID пользователя, выполняющего действие
	BookingID int64                // ID бронирования
	Status    domain.BookingStatus // Новый статус
	Note      *string              // Комментарий, для отмены - причина (опционально)
}

// Response модель ответа
type Response struct {
	Booking *domain.Booking
	Changed bool // false для повторной отмены уже отмененного бронирования
}
