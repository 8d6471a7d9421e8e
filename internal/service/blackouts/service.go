package blackouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	blackoutRepo "github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/blackout"
	"github.com/m04kA/SMC-PlannerBookingService/internal/integrations/packageservice"
)

// Service реестр дат, закрытых планировщиком вручную
type Service struct {
	repo     BlackoutRepository
	packages PackageProvider
	logger   Logger
}

// NewService создает новый экземпляр сервиса закрытых дат
func NewService(repo BlackoutRepository, packages PackageProvider, logger Logger) *Service {
	return &Service{
		repo:     repo,
		packages: packages,
		logger:   logger,
	}
}

// IsBlackedOut проверяет, закрыта ли дата, и возвращает причину
func (s *Service) IsBlackedOut(ctx context.Context, packageID int64, date time.Time) (bool, string, error) {
	b, err := s.repo.GetByPackageAndDate(ctx, packageID, date)
	if err != nil {
		if errors.Is(err, blackoutRepo.ErrBlackoutNotFound) {
			return false, "", nil
		}
		s.logger.Error("IsBlackedOut: repository error package=%d date=%s: %v", packageID, domain.DateKey(date), err)
		return false, "", fmt.Errorf("%w: IsBlackedOut - repository error: %w", ErrInternal, err)
	}

	return true, ReasonFor(b), nil
}

// InRange закрытые даты пакета в диапазоне по ключу YYYY-MM-DD
func (s *Service) InRange(ctx context.Context, packageID int64, start, end time.Time) (map[string]*domain.Blackout, error) {
	list, err := s.repo.GetByPackageInRange(ctx, packageID, start, end)
	if err != nil {
		s.logger.Error("InRange: repository error package=%d: %v", packageID, err)
		return nil, fmt.Errorf("%w: InRange - repository error: %w", ErrInternal, err)
	}

	result := make(map[string]*domain.Blackout, len(list))
	for _, b := range list {
		result[domain.DateKey(b.Date)] = b
	}
	return result, nil
}

// List закрытые даты пакета в диапазоне по возрастанию даты
func (s *Service) List(ctx context.Context, packageID int64, start, end time.Time) ([]*domain.Blackout, error) {
	if domain.DateOnly(end).Before(domain.DateOnly(start)) {
		return nil, domain.Reject(domain.ErrInvalidInput, "end date must not be before start date")
	}

	list, err := s.repo.GetByPackageInRange(ctx, packageID, start, end)
	if err != nil {
		s.logger.Error("List: repository error package=%d: %v", packageID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}
	return list, nil
}

// Add закрывает дату пакета. Повторное закрытие той же даты - DuplicateBlackout.
func (s *Service) Add(ctx context.Context, actorID, packageID int64, date time.Time, reason *string) (*domain.Blackout, error) {
	if reason != nil && len(*reason) > domain.MaxReasonLength {
		return nil, domain.Reject(domain.ErrInvalidInput,
			fmt.Sprintf("reason must be at most %d characters", domain.MaxReasonLength))
	}
	if reason != nil && *reason == "" {
		reason = nil
	}

	if err := s.checkPlannerAccess(ctx, packageID, actorID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Blackout{
		PackageID: packageID,
		Date:      domain.DateOnly(date),
		Reason:    reason,
	})
	if err != nil {
		if errors.Is(err, blackoutRepo.ErrDuplicateBlackout) {
			s.logger.Warn("Add: blackout already exists package=%d date=%s", packageID, domain.DateKey(date))
			return nil, domain.Reject(domain.ErrDuplicateBlackout,
				fmt.Sprintf("date %s is already blocked for this package", domain.DateKey(date)))
		}
		s.logger.Error("Add: repository error package=%d date=%s: %v", packageID, domain.DateKey(date), err)
		return nil, fmt.Errorf("%w: Add - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Add: blocked package=%d date=%s by user=%d", packageID, domain.DateKey(created.Date), actorID)
	return created, nil
}

// Remove снимает закрытие даты. Отсутствующая запись не является ошибкой.
func (s *Service) Remove(ctx context.Context, actorID, packageID, blackoutID int64) error {
	if err := s.checkPlannerAccess(ctx, packageID, actorID); err != nil {
		return err
	}

	b, err := s.repo.GetByID(ctx, blackoutID)
	if err != nil {
		if errors.Is(err, blackoutRepo.ErrBlackoutNotFound) {
			s.logger.Info("Remove: blackout id=%d already absent", blackoutID)
			return nil
		}
		s.logger.Error("Remove: repository error id=%d: %v", blackoutID, err)
		return fmt.Errorf("%w: Remove - get blackout: %w", ErrInternal, err)
	}

	if b.PackageID != packageID {
		s.logger.Warn("Remove: blackout id=%d belongs to package=%d, not %d", blackoutID, b.PackageID, packageID)
		return domain.Reject(domain.ErrNotFound, fmt.Sprintf("blackout %d not found for package %d", blackoutID, packageID))
	}

	if _, err := s.repo.Delete(ctx, blackoutID); err != nil {
		s.logger.Error("Remove: repository error id=%d: %v", blackoutID, err)
		return fmt.Errorf("%w: Remove - delete blackout: %w", ErrInternal, err)
	}

	s.logger.Info("Remove: unblocked package=%d date=%s by user=%d", packageID, domain.DateKey(b.Date), actorID)
	return nil
}

// ReasonFor причина закрытия или сообщение по умолчанию
func ReasonFor(b *domain.Blackout) string {
	if b.Reason != nil && *b.Reason != "" {
		return *b.Reason
	}
	return domain.ReasonBlackoutDefault
}

func (s *Service) checkPlannerAccess(ctx context.Context, packageID, userID int64) error {
	pkg, err := s.packages.GetPackage(ctx, packageID)
	if err != nil {
		if errors.Is(err, packageservice.ErrPackageNotFound) {
			return domain.Reject(domain.ErrNotFound, fmt.Sprintf("package %d not found", packageID))
		}
		s.logger.Error("checkPlannerAccess: failed to get package=%d: %v", packageID, err)
		return fmt.Errorf("%w: checkPlannerAccess - get package: %w", ErrInternal, err)
	}

	if !pkg.IsOwnedBy(userID) {
		s.logger.Warn("checkPlannerAccess: user=%d is not the planner of package=%d", userID, packageID)
		return domain.Reject(domain.ErrAccessDenied, "only the package planner can manage blocked dates")
	}
	return nil
}
