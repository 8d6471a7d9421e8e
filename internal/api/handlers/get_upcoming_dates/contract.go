package get_upcoming_dates

import (
	"context"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

type AvailabilityService interface {
	GetUpcomingAvailableDates(ctx context.Context, packageID int64, daysAhead, limit int) ([]domain.Verdict, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
