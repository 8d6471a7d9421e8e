package set_date_capacity

import (
	"net/http"

	"github.com/gorilla/mux"

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

// Handle PUT /api/v1/packages/{packageId}/capacity/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	packageID, err := handlers.PathID(r, "packageId")
	if err != nil {
		h.logger.Warn("PUT /packages/{id}/capacity/{date} - Invalid package ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	date, err := domain.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("PUT /packages/{id}/capacity/{date} - Invalid date: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /packages/{id}/capacity/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetDateCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /packages/{id}/capacity/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.SetDateCapacity(r.Context(), userID, packageID, date, req.TotalSlots)
	if err != nil {
		if domain.IsExpected(err) {
			h.logger.Warn("PUT /packages/{id}/capacity/{date} - Rejected: package_id=%d, date=%s, kind=%s, reason=%s",
				packageID, domain.DateKey(date), domain.KindOf(err), domain.ReasonOf(err))
		} else {
			h.logger.Error("PUT /packages/{id}/capacity/{date} - Failed to set capacity: package_id=%d, date=%s, error=%v",
				packageID, domain.DateKey(date), err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PUT /packages/{id}/capacity/{date} - Date capacity set: package_id=%d, date=%s, total=%d",
		packageID, domain.DateKey(date), result.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(result))
}
