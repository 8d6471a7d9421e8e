package create_booking

import (
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID    int64     // ID клиента
	PackageID   int64     // ID пакета
	WeddingDate time.Time // Дата свадьбы (без времени)
	WeddingTime *string   // Время HH:MM (опционально)
	Location    string    // Место проведения
	Notes       *string   // Заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
