package capacity

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

// CapacityRepository интерфейс репозитория емкости
type CapacityRepository interface {
	GetDefault(ctx context.Context, packageID int64) (*domain.DefaultAvailability, error)
	UpsertDefault(ctx context.Context, packageID int64, totalSlots int) (*domain.DefaultAvailability, error)
	GetOverride(ctx context.Context, packageID int64, date time.Time) (*domain.DateOverride, error)
	GetOverridesInRange(ctx context.Context, packageID int64, start, end time.Time) ([]*domain.DateOverride, error)
	UpsertOverrideTotal(ctx context.Context, packageID int64, date time.Time, totalSlots int) (*domain.DateOverride, error)
	EnsureOverride(ctx context.Context, packageID int64, date time.Time, totalSlots int) error
	IncrementBooked(ctx context.Context, packageID int64, date time.Time) error
	DecrementBooked(ctx context.Context, packageID int64, date time.Time) error
}

// PackageProvider интерфейс каталога пакетов
type PackageProvider interface {
	GetPackage(ctx context.Context, packageID int64) (*domain.Package, error)
}

// SlotMetrics счетчики операций со слотами
type SlotMetrics interface {
	RecordSlot(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
