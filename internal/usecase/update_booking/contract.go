package update_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/lock"
	"github.com/m04kA/SMC-PlannerBookingService/internal/integrations/eventbus"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	ExistsActiveForClientOnDate(ctx context.Context, clientID int64, date time.Time, excludeID int64) (bool, error)
	UpdateDetails(ctx context.Context, booking *domain.Booking) error
}

// PackageServiceClient интерфейс клиента каталога пакетов
type PackageServiceClient interface {
	GetPackage(ctx context.Context, packageID int64) (*domain.Package, error)
}

// AvailabilityChecker проверка доступности даты
type AvailabilityChecker interface {
	CheckPackageDate(ctx context.Context, pkg *domain.Package, date time.Time) (domain.Verdict, error)
}

// SlotService резервирование и освобождение слотов
type SlotService interface {
	ReserveSlot(ctx context.Context, packageID int64, date time.Time) error
	ReleaseSlot(ctx context.Context, packageID int64, date time.Time) error
}

// SlotLocker блокировка слота между репликами
type SlotLocker interface {
	Acquire(ctx context.Context, key string) (lock.ReleaseFunc, error)
}

// EventPublisher публикация событий бронирования
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event) error
}

// BookingMetrics счетчики операций с бронированиями
type BookingMetrics interface {
	RecordBooking(operation, outcome string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
