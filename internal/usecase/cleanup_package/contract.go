package cleanup_package

import (
	"context"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

// CapacityRepository интерфейс репозитория емкости
type CapacityRepository interface {
	DeleteByPackage(ctx context.Context, packageID int64) error
}

// BlackoutRepository интерфейс репозитория закрытых дат
type BlackoutRepository interface {
	DeleteByPackage(ctx context.Context, packageID int64) error
}

// PackageServiceClient интерфейс клиента каталога пакетов
type PackageServiceClient interface {
	GetPackage(ctx context.Context, packageID int64) (*domain.Package, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
