package remove_blackout

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
	service BlackoutService
	logger  Logger
}

func NewHandler(service BlackoutService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/packages/{packageId}/blackouts/{blackoutId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	packageID, err := handlers.PathID(r, "packageId")
	if err != nil {
		h.logger.Warn("DELETE /packages/{id}/blackouts/{id} - Invalid package ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	blackoutID, err := handlers.PathID(r, "blackoutId")
	if err != nil {
		h.logger.Warn("DELETE /packages/{id}/blackouts/{id} - Invalid blackout ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /packages/{id}/blackouts/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Remove(r.Context(), userID, packageID, blackoutID); err != nil {
		if domain.IsExpected(err) {
			h.logger.Warn("DELETE /packages/{id}/blackouts/{id} - Rejected: package_id=%d, blackout_id=%d, kind=%s",
				packageID, blackoutID, domain.KindOf(err))
		} else {
			h.logger.Error("DELETE /packages/{id}/blackouts/{id} - Failed to remove blackout: blackout_id=%d, error=%v",
				blackoutID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("DELETE /packages/{id}/blackouts/{id} - Blackout removed: package_id=%d, blackout_id=%d",
		packageID, blackoutID)
	w.WriteHeader(http.StatusNoContent)
}
