package get_package_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PlannerBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
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

// Handle GET /api/v1/packages/{packageId}/bookings
// Query params: startDate, endDate, status, includeCancelled (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	packageID, err := handlers.PathID(r, "packageId")
	if err != nil {
		h.logger.Warn("GET /packages/{id}/bookings - Invalid package ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /packages/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := ToServiceRequest(r, userID, packageID)
	if err != nil {
		h.logger.Warn("GET /packages/{id}/bookings - Invalid query: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	result, err := h.service.GetPackageBookings(r.Context(), req)
	if err != nil {
		if domain.IsExpected(err) {
			h.logger.Warn("GET /packages/{id}/bookings - Rejected: package_id=%d, user_id=%d, kind=%s",
				packageID, userID, domain.KindOf(err))
		} else {
			h.logger.Error("GET /packages/{id}/bookings - Failed to get bookings: package_id=%d, error=%v", packageID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /packages/{id}/bookings - Bookings retrieved successfully: package_id=%d, count=%d",
		packageID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
