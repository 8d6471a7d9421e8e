package list_blackouts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

type BlackoutService interface {
	List(ctx context.Context, packageID int64, start, end time.Time) ([]*domain.Blackout, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
