package list_blackouts

import (
	"net/http"

	"github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/blackouts/models"
)

type Handler struct {
	service BlackoutService
	logger  Logger
}

func NewHandler(service BlackoutService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/packages/{packageId}/blackouts
// Query params: start, end (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	packageID, err := handlers.PathID(r, "packageId")
	if err != nil {
		h.logger.Warn("GET /packages/{id}/blackouts - Invalid package ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	start, err := handlers.QueryDate(r, "start")
	if err != nil {
		h.logger.Warn("GET /packages/{id}/blackouts - Invalid start: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	end, err := handlers.QueryDate(r, "end")
	if err != nil {
		h.logger.Warn("GET /packages/{id}/blackouts - Invalid end: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	list, err := h.service.List(r.Context(), packageID, start, end)
	if err != nil {
		if domain.IsExpected(err) {
			h.logger.Warn("GET /packages/{id}/blackouts - Rejected: package_id=%d, reason=%s", packageID, domain.ReasonOf(err))
		} else {
			h.logger.Error("GET /packages/{id}/blackouts - Failed to list blackouts: package_id=%d, error=%v", packageID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /packages/{id}/blackouts - Blackouts retrieved: package_id=%d, count=%d", packageID, len(list))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBlackoutList(list))
}
