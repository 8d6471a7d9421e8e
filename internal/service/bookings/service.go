package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/booking"
	packageClient "github.com/m04kA/SMC-PlannerBookingService/internal/integrations/packageservice"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/bookings/models"
	capacityService "github.com/m04kA/SMC-PlannerBookingService/internal/service/capacity"
)

// Service сервис для чтения бронирований и административного удаления
type Service struct {
	bookingRepo   BookingRepository
	packageClient PackageServiceClient
	slots         SlotReleaser
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	packageClient PackageServiceClient,
	slots SlotReleaser,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		packageClient: packageClient,
		slots:         slots,
		txManager:     txManager,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Видеть бронирование может клиент-владелец или планировщик пакета
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.ClientID != userID {
		if err := s.checkPlannerAccess(ctx, booking.PackageID, userID); err != nil {
			if !domain.IsExpected(err) {
				return nil, err
			}
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
			return nil, domain.Reject(domain.ErrAccessDenied, "booking belongs to another client")
		}
	}

	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает бронирования клиента, новые даты первыми.
// Клиент видит только свои бронирования.
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, user=%d, status=%v", req.ClientID, req.UserID, req.Status)

	if req.UserID != req.ClientID {
		s.logger.Warn("GetClientBookings: user=%d requested bookings of client=%d", req.UserID, req.ClientID)
		return nil, domain.Reject(domain.ErrAccessDenied, "clients can only list their own bookings")
	}

	var status *domain.BookingStatus
	if req.Status != nil {
		st, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		status = &st
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, status)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetPackageBookings получает бронирования пакета с фильтрацией по периоду и статусу.
// Доступно только планировщику пакета.
func (s *Service) GetPackageBookings(ctx context.Context, req *models.GetPackageBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetPackageBookings: fetching bookings for package=%d, user=%d", req.PackageID, req.UserID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPackageBookings: invalid filter for package=%d: %v", req.PackageID, err)
		return nil, err
	}

	if err := s.checkPlannerAccess(ctx, req.PackageID, req.UserID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByPackageWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPackageBookings: repository error for package=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: GetPackageBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetPackageBookings: fetched %d bookings for package=%d", len(bookings), req.PackageID)
	return models.FromDomainBookingList(bookings), nil
}

// Purge удаляет бронирование. Слот pending и confirmed бронирования
// освобождается в той же транзакции.
func (s *Service) Purge(ctx context.Context, bookingID int64) error {
	s.logger.Info("Purge: deleting booking id=%d", bookingID)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByIDForUpdate(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return domain.Reject(domain.ErrNotFound, fmt.Sprintf("booking %d not found", bookingID))
			}
			return fmt.Errorf("%w: Purge - get booking: %w", ErrInternal, err)
		}

		if booking.HoldsReleasableSlot() {
			if err := s.slots.ReleaseSlot(txCtx, booking.PackageID, booking.WeddingDate); err != nil &&
				!errors.Is(err, capacityService.ErrNothingToRelease) {
				return fmt.Errorf("%w: Purge - release slot: %w", ErrInternal, err)
			}
		}

		if err := s.bookingRepo.Delete(txCtx, bookingID); err != nil {
			return fmt.Errorf("%w: Purge - delete booking: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if domain.IsExpected(err) {
			s.logger.Warn("Purge: booking id=%d: %v", bookingID, err)
		} else {
			s.logger.Error("Purge: failed booking id=%d: %v", bookingID, err)
		}
		return err
	}

	s.logger.Info("Purge: booking id=%d deleted", bookingID)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("getBooking: booking id=%d not found", id)
			return nil, domain.Reject(domain.ErrNotFound, fmt.Sprintf("booking %d not found", id))
		}
		s.logger.Error("getBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getBooking - repository error: %w", ErrInternal, err)
	}
	return booking, nil
}

// checkPlannerAccess проверяет, что пользователь является планировщиком пакета
func (s *Service) checkPlannerAccess(ctx context.Context, packageID int64, userID int64) error {
	pkg, err := s.packageClient.GetPackage(ctx, packageID)
	if err != nil {
		if errors.Is(err, packageClient.ErrPackageNotFound) {
			s.logger.Warn("checkPlannerAccess: package id=%d not found", packageID)
			return domain.Reject(domain.ErrNotFound, fmt.Sprintf("package %d not found", packageID))
		}
		s.logger.Error("checkPlannerAccess: failed to get package id=%d: %v", packageID, err)
		return fmt.Errorf("%w: checkPlannerAccess - failed to get package: %w", ErrInternal, err)
	}

	if !pkg.IsOwnedBy(userID) {
		s.logger.Warn("checkPlannerAccess: user=%d is not the planner of package=%d", userID, packageID)
		return domain.Reject(domain.ErrAccessDenied, "only the package planner can see its bookings")
	}

	return nil
}
