package set_default_capacity

import (
	"context"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

type CapacityService interface {
	SetDefaultCapacity(ctx context.Context, actorID, packageID int64, totalSlots int) (*domain.DefaultAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
