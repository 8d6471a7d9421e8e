package check_availability

import (
	"net/http"

	"github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/availability/models"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/packages/{packageId}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	packageID, err := handlers.PathID(r, "packageId")
	if err != nil {
		h.logger.Warn("GET /packages/{id}/availability - Invalid package ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /packages/{id}/availability - Invalid date: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	verdict, err := h.service.CheckAvailability(r.Context(), packageID, date)
	if err != nil {
		h.logger.Error("GET /packages/{id}/availability - Failed to check availability: package_id=%d, date=%s, error=%v",
			packageID, domain.DateKey(date), err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /packages/{id}/availability - Availability checked: package_id=%d, date=%s, status=%s",
		packageID, domain.DateKey(date), verdict.Status)
	handlers.RespondJSON(w, http.StatusOK, models.FromVerdict(verdict))
}
