package purge_booking

import (
	"net/http"

	"github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /internal/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("DELETE /internal/bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	if err := h.service.Purge(r.Context(), bookingID); err != nil {
		if domain.IsExpected(err) {
			h.logger.Warn("DELETE /internal/bookings/{id} - Rejected: booking_id=%d, kind=%s", bookingID, domain.KindOf(err))
		} else {
			h.logger.Error("DELETE /internal/bookings/{id} - Failed to purge booking: booking_id=%d, error=%v", bookingID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("DELETE /internal/bookings/{id} - Booking purged: booking_id=%d", bookingID)
	w.WriteHeader(http.StatusNoContent)
}
