package add_blackout

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

type BlackoutService interface {
	Add(ctx context.Context, actorID, packageID int64, date time.Time, reason *string) (*domain.Blackout, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
