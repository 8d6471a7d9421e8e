package update_booking

import (
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/bookings/models"
	updateBooking "github.com/m04kA/SMC-PlannerBookingService/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model, отсутствующие поля не меняются
type UpdateBookingRequest struct {
	WeddingDate *string `json:"weddingDate,omitempty"` // "2025-12-01"
	WeddingTime *string `json:"weddingTime,omitempty"` // "16:30", "" сбрасывает время
	Location    *string `json:"location,omitempty" validate:"omitempty,max=255"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// UpdateBookingResponse HTTP response model
type UpdateBookingResponse struct {
	*models.BookingResponse
	PreviousDate *string `json:"previousDate,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *UpdateBookingRequest) ToUseCaseRequest(actorID, bookingID int64) (*updateBooking.Request, error) {
	req := &updateBooking.Request{
		ActorID:     actorID,
		BookingID:   bookingID,
		WeddingTime: r.WeddingTime,
		Location:    r.Location,
		Notes:       r.Notes,
	}

	if r.WeddingDate != nil {
		date, err := domain.ParseDate(*r.WeddingDate)
		if err != nil {
			return nil, err
		}
		req.WeddingDate = &date
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *UpdateBookingResponse {
	result := &UpdateBookingResponse{
		BookingResponse: models.FromDomainBooking(resp.Booking),
	}
	if resp.PreviousDate != nil {
		prev := domain.DateKey(*resp.PreviousDate)
		result.PreviousDate = &prev
	}
	return result
}
