package cleanup_package

import (
	"net/http"

	"github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

type Handler struct {
	useCase CleanupPackageUseCase
	logger  Logger
}

func NewHandler(useCase CleanupPackageUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /internal/packages/{packageId}/availability
// Вызывается каталогом пакетов после удаления или деактивации пакета
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	packageID, err := handlers.PathID(r, "packageId")
	if err != nil {
		h.logger.Warn("DELETE /internal/packages/{id}/availability - Invalid package ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	if err := h.useCase.Execute(r.Context(), packageID); err != nil {
		if domain.IsExpected(err) {
			h.logger.Warn("DELETE /internal/packages/{id}/availability - Rejected: package_id=%d, reason=%s",
				packageID, domain.ReasonOf(err))
		} else {
			h.logger.Error("DELETE /internal/packages/{id}/availability - Failed to clean up: package_id=%d, error=%v",
				packageID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("DELETE /internal/packages/{id}/availability - Availability cleaned up: package_id=%d", packageID)
	w.WriteHeader(http.StatusNoContent)
}
