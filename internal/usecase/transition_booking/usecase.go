package transition_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-PlannerBookingService/internal/integrations/eventbus"
	packageClient "github.com/m04kA/SMC-PlannerBookingService/internal/integrations/packageservice"
	capacityService "github.com/m04kA/SMC-PlannerBookingService/internal/service/capacity"
)

// UseCase use case для перехода бронирования между статусами
type UseCase struct {
	bookingRepo   BookingRepository
	packageClient PackageServiceClient
	capacity      CapacityService
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
	capacity CapacityService,
	publisher EventPublisher,
	metrics BookingMetrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		packageClient: packageClient,
		capacity:      capacity,
		publisher:     publisher,
		metrics:       metrics,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет переход. Изменение счетчика емкости и запись статуса
// выполняются в одной транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionBooking: actor=%d, booking=%d, status=%s", req.ActorID, req.BookingID, req.Status)

	operation := operationName(req.Status)

	resp, err := uc.execute(ctx, req)
	if err != nil {
		uc.metrics.RecordBooking(operation, domain.KindOf(err))
		if domain.IsExpected(err) {
			uc.logger.Warn("TransitionBooking: rejected booking=%d to %s: %v", req.BookingID, req.Status, err)
		} else {
			uc.logger.Error("TransitionBooking: failed booking=%d to %s: %v", req.BookingID, req.Status, err)
		}
		return nil, err
	}

	if !resp.Changed {
		uc.metrics.RecordBooking(operation, "noop")
		uc.logger.Info("TransitionBooking: booking id=%d already %s", req.BookingID, resp.Booking.Status)
		return resp, nil
	}

	uc.metrics.RecordBooking(operation, "ok")
	uc.logger.Info("TransitionBooking: booking id=%d is now %s", resp.Booking.ID, resp.Booking.Status)

	event := eventbus.NewBookingEvent(eventbus.EventTypeForStatus(resp.Booking.Status), resp.Booking, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("TransitionBooking: failed to publish event for booking id=%d: %v", resp.Booking.ID, err)
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

	if err := checkAccess(req, current, pkg); err != nil {
		return nil, err
	}

	resp := &Response{}

	// 2. Переход в транзакции по заблокированной строке
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := uc.getBooking(txCtx, req.BookingID, true)
		if err != nil {
			return err
		}

		if req.Status == domain.StatusCancelled && b.IsCancelled() {
			resp.Booking = b
			return nil
		}

		if !b.Status.CanTransitionTo(req.Status) {
			return domain.Reject(domain.ErrInvalidTransition,
				fmt.Sprintf("cannot change booking status from %s to %s", b.Status, req.Status))
		}

		switch req.Status {
		case domain.StatusConfirmed:
			err = uc.confirm(txCtx, b, req.Note)
		case domain.StatusCompleted:
			err = uc.updateStatus(txCtx, b, domain.StatusCompleted, req.Note)
		case domain.StatusCancelled:
			err = uc.cancel(txCtx, b, req.Note)
		}
		if err != nil {
			return err
		}

		updated, err := uc.getBooking(txCtx, b.ID, false)
		if err != nil {
			return err
		}
		resp.Booking = updated
		resp.Changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// confirm повторно проверяет, что занятых слотов на дату не больше емкости
func (uc *UseCase) confirm(ctx context.Context, b *domain.Booking, note *string) error {
	c, err := uc.capacity.GetCapacity(ctx, b.PackageID, b.WeddingDate)
	if err != nil {
		return fmt.Errorf("%w: failed to get capacity: %w", ErrInternal, err)
	}
	if c.BookedSlots > c.TotalSlots {
		return domain.Reject(domain.ErrCapacityExceeded,
			fmt.Sprintf("date %s is oversubscribed: %d booked of %d", domain.DateKey(b.WeddingDate), c.BookedSlots, c.TotalSlots))
	}

	return uc.updateStatus(ctx, b, domain.StatusConfirmed, note)
}

// cancel освобождает слот и отмечает бронирование отмененным
func (uc *UseCase) cancel(ctx context.Context, b *domain.Booking, reason *string) error {
	if err := uc.capacity.ReleaseSlot(ctx, b.PackageID, b.WeddingDate); err != nil {
		if !errors.Is(err, capacityService.ErrNothingToRelease) {
			return fmt.Errorf("%w: failed to release slot: %w", ErrInternal, err)
		}
		uc.logger.Warn("TransitionBooking: booking id=%d had no slot to release", b.ID)
	}

	if err := uc.bookingRepo.Cancel(ctx, b.ID, reason, uc.timeProvider.Now().UTC()); err != nil {
		return fmt.Errorf("%w: failed to cancel booking: %w", ErrInternal, err)
	}
	return nil
}

func (uc *UseCase) updateStatus(ctx context.Context, b *domain.Booking, status domain.BookingStatus, note *string) error {
	if err := uc.bookingRepo.UpdateStatus(ctx, b.ID, status, note); err != nil {
		return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
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

func operationName(status domain.BookingStatus) string {
	switch status {
	case domain.StatusConfirmed:
		return "confirm"
	case domain.StatusCompleted:
		return "complete"
	case domain.StatusCancelled:
		return "cancel"
	}
	return "transition"
}
