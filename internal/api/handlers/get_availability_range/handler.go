package get_availability_range

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

// Handle GET /api/v1/packages/{packageId}/availability/range
// Query params: start, end (required, YYYY-MM-DD, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	packageID, err := handlers.PathID(r, "packageId")
	if err != nil {
		h.logger.Warn("GET /packages/{id}/availability/range - Invalid package ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	start, err := handlers.QueryDate(r, "start")
	if err != nil {
		h.logger.Warn("GET /packages/{id}/availability/range - Invalid start: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	end, err := handlers.QueryDate(r, "end")
	if err != nil {
		h.logger.Warn("GET /packages/{id}/availability/range - Invalid end: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	calendar, err := h.service.GetAvailabilityRange(r.Context(), packageID, start, end)
	if err != nil {
		if domain.IsExpected(err) {
			h.logger.Warn("GET /packages/{id}/availability/range - Rejected: package_id=%d, reason=%s",
				packageID, domain.ReasonOf(err))
		} else {
			h.logger.Error("GET /packages/{id}/availability/range - Failed to resolve range: package_id=%d, error=%v",
				packageID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /packages/{id}/availability/range - Range resolved: package_id=%d, days=%d",
		packageID, len(calendar))
	handlers.RespondJSON(w, http.StatusOK, models.FromCalendar(packageID, calendar))
}
