package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-PlannerBookingService/internal/config"
	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	blackoutRepo "github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/blackout"
	bookingRepo "github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/booking"
	capacityRepo "github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/capacity"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/memstore"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/logger"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/metrics"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/txmanager"
)

// bookingStore общий набор методов репозиториев бронирований postgres и memory
type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByPackageWithFilter(ctx context.Context, filter domain.PackageBookingsFilter) ([]*domain.Booking, error)
	GetConfirmedDates(ctx context.Context, packageID int64, from, to time.Time) ([]time.Time, error)
	ExistsActiveForClientOnDate(ctx context.Context, clientID int64, date time.Time, excludeID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, note *string) error
	Cancel(ctx context.Context, id int64, reason *string, cancelledAt time.Time) error
	UpdateDetails(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id int64) error
}

type capacityStore interface {
	GetDefault(ctx context.Context, packageID int64) (*domain.DefaultAvailability, error)
	UpsertDefault(ctx context.Context, packageID int64, totalSlots int) (*domain.DefaultAvailability, error)
	GetOverride(ctx context.Context, packageID int64, date time.Time) (*domain.DateOverride, error)
	GetOverridesInRange(ctx context.Context, packageID int64, start, end time.Time) ([]*domain.DateOverride, error)
	UpsertOverrideTotal(ctx context.Context, packageID int64, date time.Time, totalSlots int) (*domain.DateOverride, error)
	EnsureOverride(ctx context.Context, packageID int64, date time.Time, totalSlots int) error
	IncrementBooked(ctx context.Context, packageID int64, date time.Time) error
	DecrementBooked(ctx context.Context, packageID int64, date time.Time) error
	DeleteByPackage(ctx context.Context, packageID int64) error
}

type blackoutStore interface {
	Create(ctx context.Context, blackout *domain.Blackout) (*domain.Blackout, error)
	GetByID(ctx context.Context, id int64) (*domain.Blackout, error)
	GetByPackageAndDate(ctx context.Context, packageID int64, date time.Time) (*domain.Blackout, error)
	GetByPackageInRange(ctx context.Context, packageID int64, start, end time.Time) ([]*domain.Blackout, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteByPackage(ctx context.Context, packageID int64) error
}

type txManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage репозитории и менеджер транзакций выбранного драйвера
type storage struct {
	bookings  bookingStore
	capacity  capacityStore
	blackouts blackoutStore
	tx        txManager
	close     func() error
}

// openStorage подключает хранилище по cfg.Database.Driver
func openStorage(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		store := memstore.New()
		log.Warn("Using in-memory storage, data is lost on restart")
		return &storage{
			bookings:  store.Bookings(),
			capacity:  store.Capacity(),
			blackouts: store.Blackouts(),
			tx:        store.TxManager(),
			close:     func() error { return nil },
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обертка только пробрасывает запросы
	wrappedDB := dbmetrics.WrapWithDefault(db, m, stopCh)

	return &storage{
		bookings:  bookingRepo.NewRepository(wrappedDB),
		capacity:  capacityRepo.NewRepository(wrappedDB),
		blackouts: blackoutRepo.NewRepository(wrappedDB),
		tx:        txmanager.NewTransactionManager(wrappedDB, cfg.Availability.SerializableRetries),
		close:     db.Close,
	}, nil
}
