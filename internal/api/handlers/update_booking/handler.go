package update_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PlannerBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	updateBooking "github.com/m04kA/SMC-PlannerBookingService/internal/usecase/update_booking"
)

const (
	msgMissingUserID = "missing user id"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, bookingID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid wedding date: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrSlotBusy):
			h.logger.Warn("PATCH /bookings/{id} - Slot busy: booking_id=%d", bookingID)
			handlers.RespondServiceUnavailable(w)

		case domain.IsExpected(err):
			h.logger.Warn("PATCH /bookings/{id} - Rejected: booking_id=%d, kind=%s, reason=%s",
				bookingID, domain.KindOf(err), domain.ReasonOf(err))
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking updated successfully: booking_id=%d, user_id=%d",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
