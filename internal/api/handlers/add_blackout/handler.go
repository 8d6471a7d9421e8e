package add_blackout

import (
	"net/http"

	"github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PlannerBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/blackouts/models"
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

// Handle POST /api/v1/packages/{packageId}/blackouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	packageID, err := handlers.PathID(r, "packageId")
	if err != nil {
		h.logger.Warn("POST /packages/{id}/blackouts - Invalid package ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /packages/{id}/blackouts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddBlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /packages/{id}/blackouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		h.logger.Warn("POST /packages/{id}/blackouts - Invalid date: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	created, err := h.service.Add(r.Context(), userID, packageID, date, req.Reason)
	if err != nil {
		if domain.IsExpected(err) {
			h.logger.Warn("POST /packages/{id}/blackouts - Rejected: package_id=%d, date=%s, kind=%s",
				packageID, req.Date, domain.KindOf(err))
		} else {
			h.logger.Error("POST /packages/{id}/blackouts - Failed to add blackout: package_id=%d, date=%s, error=%v",
				packageID, req.Date, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /packages/{id}/blackouts - Blackout added: package_id=%d, blackout_id=%d, date=%s",
		packageID, created.ID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBlackout(created))
}
