package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return domain.Reject(domain.ErrInvalidInput, "clientId must be positive")
	}

	if req.PackageID <= 0 {
		return domain.Reject(domain.ErrInvalidInput, "packageId must be positive")
	}

	if req.WeddingDate.IsZero() {
		return domain.Reject(domain.ErrInvalidDate, "wedding date is required")
	}

	if _, err := ParseWeddingTime(req.WeddingTime); err != nil {
		return err
	}

	return ValidateDetails(req.Location, req.Notes)
}

// ParseWeddingTime разбирает необязательное время HH:MM
func ParseWeddingTime(s *string) (*types.TimeString, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, domain.Reject(domain.ErrInvalidDate, fmt.Sprintf("wedding time %q must be in HH:MM format", *s))
	}
	return &t, nil
}

// ValidateDetails проверяет место проведения и заметки
func ValidateDetails(location string, notes *string) error {
	location = strings.TrimSpace(location)
	if location == "" {
		return domain.Reject(domain.ErrInvalidInput, "location is required")
	}
	if len(location) > domain.MaxLocationLength {
		return domain.Reject(domain.ErrInvalidInput,
			fmt.Sprintf("location must be at most %d characters", domain.MaxLocationLength))
	}

	if notes != nil && len(*notes) > domain.MaxNotesLength {
		return domain.Reject(domain.ErrInvalidInput,
			fmt.Sprintf("notes must be at most %d characters", domain.MaxNotesLength))
	}

	return nil
}

// ValidateFutureDate дата свадьбы должна быть строго позже сегодняшней
func ValidateFutureDate(date, now time.Time) error {
	if !domain.DateOnly(date).After(domain.Today(now)) {
		return domain.Reject(domain.ErrInvalidDate,
			fmt.Sprintf("wedding date %s must be in the future", domain.DateKey(date)))
	}
	return nil
}
