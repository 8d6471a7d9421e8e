package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-PlannerBookingService/internal/integrations/eventbus"
	packageClient "github.com/m04kA/SMC-PlannerBookingService/internal/integrations/packageservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	packageClient PackageServiceClient
	clientClient  ClientServiceClient
	availability  AvailabilityChecker
	slots         SlotReserver
	locker        SlotLocker
	publisher     EventPublisher
	metrics       BookingMetrics
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	packageClient PackageServiceClient,
	clientClient ClientServiceClient,
	availability AvailabilityChecker,
	slots SlotReserver,
	locker SlotLocker,
	publisher EventPublisher,
	metrics BookingMetrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		packageClient: packageClient,
		clientClient:  clientClient,
		availability:  availability,
		slots:         slots,
		locker:        locker,
		publisher:     publisher,
		metrics:       metrics,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности, уникальности, резервирование слота и вставка
// выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%d, package=%d, date=%s",
		req.ClientID, req.PackageID, req.WeddingDate.Format(domain.DateFormat))

	created, err := uc.execute(ctx, req)
	if err != nil {
		uc.metrics.RecordBooking("create", domain.KindOf(err))
		if domain.IsExpected(err) || errors.Is(err, ErrSlotBusy) {
			uc.logger.Warn("CreateBooking: rejected client=%d package=%d date=%s: %v",
				req.ClientID, req.PackageID, domain.DateKey(req.WeddingDate), err)
		} else {
			uc.logger.Error("CreateBooking: failed client=%d package=%d: %v", req.ClientID, req.PackageID, err)
		}
		return nil, err
	}

	uc.metrics.RecordBooking("create", "ok")
	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)

	event := eventbus.NewBookingEvent(eventbus.EventBookingCreated, created, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for booking id=%d: %v", created.ID, err)
	}

	return &Response{Booking: created}, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	weddingTime, _ := ParseWeddingTime(req.WeddingTime)
	date := domain.DateOnly(req.WeddingDate)

	// 2. Дата строго в будущем
	if err := ValidateFutureDate(date, uc.timeProvider.Now()); err != nil {
		return nil, err
	}

	// 3. Получаем пакет
	pkg, err := uc.packageClient.GetPackage(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, packageClient.ErrPackageNotFound) {
			return nil, domain.Reject(domain.ErrNotFound, domain.ReasonPackageUnavailable)
		}
		return nil, fmt.Errorf("%w: failed to get package: %w", ErrInternal, err)
	}

	// 4. Клиент должен существовать
	exists, err := uc.clientClient.Exists(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check client: %w", ErrInternal, err)
	}
	if !exists {
		return nil, domain.Reject(domain.ErrNotFound, fmt.Sprintf("client %d not found", req.ClientID))
	}

	// 5. Блокировка слота между репликами
	release, err := uc.locker.Acquire(ctx, lock.SlotKey(pkg.ID, date))
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			return nil, ErrSlotBusy
		}
		return nil, fmt.Errorf("%w: failed to acquire slot lock: %w", ErrInternal, err)
	}
	defer release()

	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := ReserveDate(txCtx, uc.availability, uc.bookingRepo, uc.slots, pkg, req.ClientID, date, 0); err != nil {
			return err
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			PackageID:   pkg.ID,
			ClientID:    req.ClientID,
			WeddingDate: date,
			WeddingTime: weddingTime,
			Location:    strings.TrimSpace(req.Location),
			Notes:       req.Notes,
			Status:      domain.StatusPending,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateBooking) {
				return domain.Reject(domain.ErrDuplicateBooking, ReasonDuplicate)
			}
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
