package set_default_capacity

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
	service CapacityService
	logger  Logger
}

func NewHandler(service CapacityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/packages/{packageId}/capacity
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	packageID, err := handlers.PathID(r, "packageId")
	if err != nil {
		h.logger.Warn("PUT /packages/{id}/capacity - Invalid package ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /packages/{id}/capacity - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetDefaultCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /packages/{id}/capacity - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.SetDefaultCapacity(r.Context(), userID, packageID, req.TotalSlots)
	if err != nil {
		if domain.IsExpected(err) {
			h.logger.Warn("PUT /packages/{id}/capacity - Rejected: package_id=%d, user_id=%d, kind=%s",
				packageID, userID, domain.KindOf(err))
		} else {
			h.logger.Error("PUT /packages/{id}/capacity - Failed to set capacity: package_id=%d, error=%v", packageID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PUT /packages/{id}/capacity - Default capacity set: package_id=%d, total=%d",
		packageID, result.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(result))
}
