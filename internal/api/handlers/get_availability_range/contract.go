package get_availability_range

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

type AvailabilityService interface {
	GetAvailabilityRange(ctx context.Context, packageID int64, start, end time.Time) (domain.Calendar, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
