package blackouts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

// BlackoutRepository интерфейс репозитория закрытых дат
type BlackoutRepository interface {
	Create(ctx context.Context, blackout *domain.Blackout) (*domain.Blackout, error)
	GetByID(ctx context.Context, id int64) (*domain.Blackout, error)
	GetByPackageAndDate(ctx context.Context, packageID int64, date time.Time) (*domain.Blackout, error)
	GetByPackageInRange(ctx context.Context, packageID int64, start, end time.Time) ([]*domain.Blackout, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// PackageProvider интерфейс каталога пакетов
type PackageProvider interface {
	GetPackage(ctx context.Context, packageID int64) (*domain.Package, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
