package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PlannerBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-PlannerBookingService/internal/usecase/create_booking"
)

const (
	msgMissingUserID = "missing user id"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid wedding date: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotBusy):
			h.logger.Warn("POST /bookings - Slot busy: package_id=%d, date=%s", req.PackageID, req.WeddingDate)
			handlers.RespondServiceUnavailable(w)

		case domain.IsExpected(err):
			h.logger.Warn("POST /bookings - Rejected: package_id=%d, date=%s, kind=%s, reason=%s",
				req.PackageID, req.WeddingDate, domain.KindOf(err), domain.ReasonOf(err))
			handlers.RespondDomainError(w, err)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: package_id=%d, client_id=%d, error=%v",
				req.PackageID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, package_id=%d, client_id=%d",
		result.Booking.ID, result.Booking.PackageID, userID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(result.Booking))
}
