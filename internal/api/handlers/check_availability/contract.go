package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

type AvailabilityService interface {
	CheckAvailability(ctx context.Context, packageID int64, date time.Time) (domain.Verdict, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
