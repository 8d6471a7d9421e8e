package get_package_bookings

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-PlannerBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров
// startDate, endDate, status, includeCancelled
func ToServiceRequest(r *http.Request, userID, packageID int64) (*models.GetPackageBookingsRequest, error) {
	startDate, err := handlers.OptionalQueryDate(r, "startDate")
	if err != nil {
		return nil, err
	}

	endDate, err := handlers.OptionalQueryDate(r, "endDate")
	if err != nil {
		return nil, err
	}

	includeCancelled := false
	if raw := r.URL.Query().Get("includeCancelled"); raw != "" {
		includeCancelled, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, domain.Reject(domain.ErrInvalidInput, "includeCancelled must be a boolean")
		}
	}

	return &models.GetPackageBookingsRequest{
		UserID:           userID,
		PackageID:        packageID,
		StartDate:        startDate,
		EndDate:          endDate,
		Status:           handlers.QueryString(r, "status"),
		IncludeCancelled: includeCancelled,
	}, nil
}
