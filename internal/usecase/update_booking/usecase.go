package update_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-PlannerBookingService/internal/integrations/eventbus"
	packageClient "github.com/m04kA/SMC-PlannerBookingService/internal/integrations/packageservice"
	capacityService "github.com/m04kA/SMC-PlannerBookingService/internal/service/capacity"
	"github.com/m04kA/SMC-PlannerBookingService/internal/usecase/create_booking"
)

// UseCase use case для изменения бронирования в статусе pending
type UseCase struct {
	bookingRepo   BookingRepository
	packageClient PackageServiceClient
	availability  AvailabilityChecker
	slots         SlotService
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
	availability AvailabilityChecker,
	slots SlotService,
	locker SlotLocker,
	publisher EventPublisher,
	metrics BookingMetrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		packageClient: packageClient,
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

// Execute выполняет изменение. При смене даты освобождение старого слота,
// проверка новой даты, резервирование и запись выполняются в одной транзакции:
// при любой ошибке исходная дата и резерв остаются на месте.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: actor=%d, booking=%d", req.ActorID, req.BookingID)

	resp, err := uc.execute(ctx, req)
	if err != nil {
		uc.metrics.RecordBooking("update", domain.KindOf(err))
		if domain.IsExpected(err) || errors.Is(err, ErrSlotBusy) {
			uc.logger.Warn("UpdateBooking: rejected booking=%d: %v", req.BookingID, err)
		} else {
			uc.logger.Error("UpdateBooking: failed booking=%d: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.metrics.RecordBooking("update", "ok")

	if resp.PreviousDate != nil {
		uc.logger.Info("UpdateBooking: booking id=%d moved from %s to %s",
			resp.Booking.ID, domain.DateKey(*resp.PreviousDate), domain.DateKey(resp.Booking.WeddingDate))

		event := eventbus.NewBookingEvent(eventbus.EventBookingRescheduled, resp.Booking, uc.timeProvider.Now())
		previous := domain.DateKey(*resp.PreviousDate)
		event.Booking.PreviousDate = &previous
		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Warn("UpdateBooking: failed to publish event for booking id=%d: %v", resp.Booking.ID, err)
		}
	}

	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// 1. Бронирование и пакет для проверки прав
	current, err := uc.getBooking(ctx, req.BookingID, false)
	if err != nil {
		return nil, err
	}

	pkg, err := uc.packageClient.GetPackage(ctx, current.PackageID)
	if err != nil && !errors.Is(err, packageClient.ErrPackageNotFound) {
		return nil, fmt.Errorf("%w: failed to get package: %w", ErrInternal, err)
	}

	if current.ClientID != req.ActorID && !pkg.IsOwnedBy(req.ActorID) {
		return nil, domain.Reject(domain.ErrAccessDenied, "only the client or the package planner can edit this booking")
	}

	// 2. Новая дата: строго в будущем и под блокировкой слота
	var newDate *time.Time
	if req.WeddingDate != nil && !domain.DateOnly(*req.WeddingDate).Equal(current.WeddingDate) {
		d := domain.DateOnly(*req.WeddingDate)
		if err := create_booking.ValidateFutureDate(d, uc.timeProvider.Now()); err != nil {
			return nil, err
		}
		newDate = &d

		release, err := uc.locker.Acquire(ctx, lock.SlotKey(current.PackageID, d))
		if err != nil {
			if errors.Is(err, lock.ErrLockTimeout) {
				return nil, ErrSlotBusy
			}
			return nil, fmt.Errorf("%w: failed to acquire slot lock: %w", ErrInternal, err)
		}
		defer release()
	}

	resp := &Response{}

	// 3. Изменение в транзакции по заблокированной строке
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := uc.getBooking(txCtx, req.BookingID, true)
		if err != nil {
			return err
		}

		if !b.CanBeEdited() {
			return domain.Reject(domain.ErrInvalidTransition,
				fmt.Sprintf("only pending bookings can be edited, booking is %s", b.Status))
		}

		updated, err := applyChanges(b, req)
		if err != nil {
			return err
		}

		if newDate != nil {
			if err := uc.moveSlot(txCtx, pkg, b, *newDate); err != nil {
				return err
			}
			previous := b.WeddingDate
			resp.PreviousDate = &previous
			updated.WeddingDate = *newDate
		}

		if err := uc.bookingRepo.UpdateDetails(txCtx, updated); err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateBooking) {
				return domain.Reject(domain.ErrDuplicateBooking, create_booking.ReasonDuplicate)
			}
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		stored, err := uc.getBooking(txCtx, b.ID, false)
		if err != nil {
			return err
		}
		resp.Booking = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// moveSlot освобождает слот старой даты и занимает слот новой
func (uc *UseCase) moveSlot(ctx context.Context, pkg *domain.Package, b *domain.Booking, newDate time.Time) error {
	if err := uc.slots.ReleaseSlot(ctx, b.PackageID, b.WeddingDate); err != nil {
		if !errors.Is(err, capacityService.ErrNothingToRelease) {
			return fmt.Errorf("%w: failed to release slot: %w", ErrInternal, err)
		}
		uc.logger.Warn("UpdateBooking: booking id=%d had no slot to release on %s", b.ID, domain.DateKey(b.WeddingDate))
	}

	err := create_booking.ReserveDate(ctx, uc.availability, uc.bookingRepo, uc.slots, pkg, b.ClientID, newDate, b.ID)
	if err != nil {
		if domain.IsExpected(err) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return nil
}

func (uc *UseCase) getBooking(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error) {
	get := uc.bookingRepo.GetByID
	if forUpdate {
		get = uc.bookingRepo.GetByIDForUpdate
	}

	b, err := get(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, domain.Reject(domain.ErrNotFound, fmt.Sprintf("booking %d not found", id))
		}
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}
	return b, nil
}

// applyChanges копия бронирования с примененными полями запроса, кроме даты
func applyChanges(b *domain.Booking, req *Request) (*domain.Booking, error) {
	updated := *b

	if req.Location != nil {
		updated.Location = strings.TrimSpace(*req.Location)
	}
	if req.Notes != nil {
		updated.Notes = req.Notes
		if *req.Notes == "" {
			updated.Notes = nil
		}
	}
	if req.WeddingTime != nil {
		t, err := create_booking.ParseWeddingTime(req.WeddingTime)
		if err != nil {
			return nil, err
		}
		updated.WeddingTime = t
	}

	if err := create_booking.ValidateDetails(updated.Location, updated.Notes); err != nil {
		return nil, err
	}

	return &updated, nil
}
