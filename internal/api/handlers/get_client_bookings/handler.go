package get_client_bookings

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
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/bookings
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.PathID(r, "clientId")
	if err != nil {
		h.logger.Warn("GET /clients/{id}/bookings - Invalid client ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /clients/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetClientBookingsRequest{
		UserID:   userID,
		ClientID: clientID,
		Status:   handlers.QueryString(r, "status"),
	}

	result, err := h.service.GetClientBookings(r.Context(), req)
	if err != nil {
		if domain.IsExpected(err) {
			h.logger.Warn("GET /clients/{id}/bookings - Rejected: client_id=%d, user_id=%d, kind=%s",
				clientID, userID, domain.KindOf(err))
		} else {
			h.logger.Error("GET /clients/{id}/bookings - Failed to get bookings: client_id=%d, error=%v", clientID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /clients/{id}/bookings - Bookings retrieved successfully: client_id=%d, count=%d",
		clientID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
