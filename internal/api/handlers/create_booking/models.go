package create_booking

import (
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-PlannerBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PackageID   int64   `json:"packageId" validate:"required,gt=0"`
	WeddingDate string  `json:"weddingDate" validate:"required"` // "2025-12-01"
	WeddingTime *string `json:"weddingTime,omitempty"`           // "16:30"
	Location    string  `json:"location" validate:"required,max=255"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case.
// Клиентом бронирования становится текущий пользователь.
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.WeddingDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientID:    clientID,
		PackageID:   r.PackageID,
		WeddingDate: date,
		WeddingTime: r.WeddingTime,
		Location:    r.Location,
		Notes:       r.Notes,
	}, nil
}
