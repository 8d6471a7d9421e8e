package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

// PackageProvider интерфейс каталога пакетов
type PackageProvider interface {
	GetPackage(ctx context.Context, packageID int64) (*domain.Package, error)
}

// CapacityReader емкость пакета по датам
type CapacityReader interface {
	GetCapacityRange(ctx context.Context, packageID int64, start, end time.Time) (map[string]domain.Capacity, error)
}

// BlackoutReader закрытые даты пакета
type BlackoutReader interface {
	InRange(ctx context.Context, packageID int64, start, end time.Time) (map[string]*domain.Blackout, error)
}

// PreparationResolver даты, попадающие в период подготовки
type PreparationResolver interface {
	BlockedDates(ctx context.Context, pkg *domain.Package, start, end time.Time) (map[string]bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
