package transition_booking

import (
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	transitionBooking "github.com/m04kA/SMC-PlannerBookingService/internal/usecase/transition_booking"
)

// TransitionBookingRequest HTTP request model
type TransitionBookingRequest struct {
	Status string  `json:"status" validate:"required,oneof=confirmed completed cancelled"`
	Note   *string `json:"note,omitempty" validate:"omitempty,max=500"` // Для отмены - причина
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *TransitionBookingRequest) ToUseCaseRequest(actorID, bookingID int64) *transitionBooking.Request {
	return &transitionBooking.Request{
		ActorID:   actorID,
		BookingID: bookingID,
		Status:    domain.BookingStatus(r.Status),
		Note:      r.Note,
	}
}
