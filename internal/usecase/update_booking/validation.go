package update_booking

import "github.com/m04kA/SMC-PlannerBookingService/internal/domain"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return domain.Reject(domain.ErrInvalidInput, "bookingId must be positive")
	}

	if req.WeddingDate == nil && req.WeddingTime == nil && req.Location == nil && req.Notes == nil {
		return domain.Reject(domain.ErrInvalidInput, "nothing to update")
	}

	return nil
}
