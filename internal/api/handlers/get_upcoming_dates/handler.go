package get_upcoming_dates

import (
	"net/http"

	"github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/availability/models"
)

type Handler struct {
	service     AvailabilityService
	defaultDays int
	defaultLim  int
	logger      Logger
}

// NewHandler defaultDays и defaultLimit подставляются, если query параметры не заданы
func NewHandler(service AvailabilityService, defaultDays, defaultLimit int, logger Logger) *Handler {
	return &Handler{
		service:     service,
		defaultDays: defaultDays,
		defaultLim:  defaultLimit,
		logger:      logger,
	}
}

// Handle GET /api/v1/packages/{packageId}/availability/upcoming
// Query params: days, limit (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	packageID, err := handlers.PathID(r, "packageId")
	if err != nil {
		h.logger.Warn("GET /packages/{id}/availability/upcoming - Invalid package ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	days, err := handlers.QueryInt(r, "days", h.defaultDays)
	if err != nil {
		h.logger.Warn("GET /packages/{id}/availability/upcoming - Invalid days: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	limit, err := handlers.QueryInt(r, "limit", h.defaultLim)
	if err != nil {
		h.logger.Warn("GET /packages/{id}/availability/upcoming - Invalid limit: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	verdicts, err := h.service.GetUpcomingAvailableDates(r.Context(), packageID, days, limit)
	if err != nil {
		if domain.IsExpected(err) {
			h.logger.Warn("GET /packages/{id}/availability/upcoming - Rejected: package_id=%d, reason=%s",
				packageID, domain.ReasonOf(err))
		} else {
			h.logger.Error("GET /packages/{id}/availability/upcoming - Failed to get dates: package_id=%d, error=%v",
				packageID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /packages/{id}/availability/upcoming - Dates retrieved: package_id=%d, count=%d",
		packageID, len(verdicts))
	handlers.RespondJSON(w, http.StatusOK, models.FromVerdictList(packageID, verdicts))
}
