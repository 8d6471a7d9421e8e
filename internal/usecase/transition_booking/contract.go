package transition_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/integrations/eventbus"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, note *string) error
	Cancel(ctx context.Context, id int64, reason *string, cancelledAt time.Time) error
}

// PackageServiceClient интерфейс клиента каталога пакетов
type PackageServiceClient interface {
	GetPackage(ctx context.Context, packageID int64) (*domain.Package, error)
}

// CapacityService емкость пакета на дату
type CapacityService interface {
	GetCapacity(ctx context.Context, packageID int64, date time.Time) (domain.Capacity, error)
	ReleaseSlot(ctx context.Context, packageID int64, date time.Time) error
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
