package set_date_capacity

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

type CapacityService interface {
	SetDateCapacity(ctx context.Context, actorID, packageID int64, date time.Time, totalSlots int) (*domain.DateOverride, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
