package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByPackageWithFilter(ctx context.Context, filter domain.PackageBookingsFilter) ([]*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// PackageServiceClient интерфейс клиента каталога пакетов
type PackageServiceClient interface {
	GetPackage(ctx context.Context, packageID int64) (*domain.Package, error)
}

// SlotReleaser освобождает слот емкости
type SlotReleaser interface {
	ReleaseSlot(ctx context.Context, packageID int64, date time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
