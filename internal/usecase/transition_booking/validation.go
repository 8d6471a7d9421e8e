package transition_booking

import (
	"fmt"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return domain.Reject(domain.ErrInvalidInput, "bookingId must be positive")
	}

	if !req.Status.IsValid() {
		return domain.Reject(domain.ErrInvalidInput, fmt.Sprintf("unknown booking status %q", req.Status))
	}

	if req.Note != nil && len(*req.Note) > domain.MaxReasonLength {
		return domain.Reject(domain.ErrInvalidInput,
			fmt.Sprintf("note must be at most %d characters", domain.MaxReasonLength))
	}

	return nil
}

// checkAccess подтверждает и завершает только планировщик пакета,
// отменить может клиент-владелец или планировщик
func checkAccess(req *Request, b *domain.Booking, pkg *domain.Package) error {
	isPlanner := pkg.IsOwnedBy(req.ActorID)

	switch req.Status {
	case domain.StatusCancelled:
		if isPlanner || b.ClientID == req.ActorID {
			return nil
		}
		return domain.Reject(domain.ErrAccessDenied, "only the client or the package planner can cancel this booking")
	case domain.StatusConfirmed, domain.StatusCompleted:
		if isPlanner {
			return nil
		}
		return domain.Reject(domain.ErrAccessDenied, "only the package planner can change this booking status")
	}

	return domain.Reject(domain.ErrInvalidTransition, fmt.Sprintf("cannot change booking status to %s", req.Status))
}
