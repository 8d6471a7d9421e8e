package transition_booking

import (
	"net/http"

	"github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PlannerBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/bookings/models"
)

const (
	msgMissingUserID = "missing user id"
)

type Handler struct {
	useCase TransitionBookingUseCase
	logger  Logger
}

func NewHandler(useCase TransitionBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req TransitionBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, bookingID))
	if err != nil {
		if domain.IsExpected(err) {
			h.logger.Warn("PATCH /bookings/{id}/status - Rejected: booking_id=%d, status=%s, kind=%s, reason=%s",
				bookingID, req.Status, domain.KindOf(err), domain.ReasonOf(err))
		} else {
			h.logger.Error("PATCH /bookings/{id}/status - Failed to change status: booking_id=%d, error=%v",
				bookingID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status changed: booking_id=%d, status=%s, changed=%t, user_id=%d",
		bookingID, result.Booking.Status, result.Changed, userID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result.Booking))
}
