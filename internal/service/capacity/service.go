package capacity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	capacityRepo "github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/capacity"
	"github.com/m04kA/SMC-PlannerBookingService/internal/integrations/packageservice"
)

// Service хранилище емкости: сколько слотов у пакета на дату и сколько занято
type Service struct {
	repo     CapacityRepository
	packages PackageProvider
	metrics  SlotMetrics
	logger   Logger
}

// NewService создает новый экземпляр сервиса емкости
func NewService(repo CapacityRepository, packages PackageProvider, metrics SlotMetrics, logger Logger) *Service {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Service{
		repo:     repo,
		packages: packages,
		metrics:  metrics,
		logger:   logger,
	}
}

// GetCapacity возвращает емкость на дату: запись на дату, если есть,
// иначе {емкость по умолчанию, 0}. Без записи по умолчанию емкость равна 1.
func (s *Service) GetCapacity(ctx context.Context, packageID int64, date time.Time) (domain.Capacity, error) {
	day := domain.DateOnly(date)

	override, err := s.repo.GetOverride(ctx, packageID, day)
	if err == nil {
		return domain.CapacityFromOverride(override), nil
	}
	if !errors.Is(err, capacityRepo.ErrOverrideNotFound) {
		s.logger.Error("GetCapacity: failed to get override package=%d date=%s: %v", packageID, domain.DateKey(day), err)
		return domain.Capacity{}, fmt.Errorf("%w: GetCapacity - get override: %w", ErrInternal, err)
	}

	total, err := s.defaultTotal(ctx, packageID)
	if err != nil {
		return domain.Capacity{}, err
	}

	return domain.Capacity{Date: day, TotalSlots: total}, nil
}

// GetCapacityRange возвращает емкость на каждую дату [start, end].
// Результат совпадает с GetCapacity для каждой даты.
func (s *Service) GetCapacityRange(ctx context.Context, packageID int64, start, end time.Time) (map[string]domain.Capacity, error) {
	from, to := domain.DateOnly(start), domain.DateOnly(end)

	total, err := s.defaultTotal(ctx, packageID)
	if err != nil {
		return nil, err
	}

	overrides, err := s.repo.GetOverridesInRange(ctx, packageID, from, to)
	if err != nil {
		s.logger.Error("GetCapacityRange: failed to get overrides package=%d: %v", packageID, err)
		return nil, fmt.Errorf("%w: GetCapacityRange - get overrides: %w", ErrInternal, err)
	}

	result := make(map[string]domain.Capacity, domain.DaysInclusive(from, to))
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		result[domain.DateKey(d)] = domain.Capacity{Date: d, TotalSlots: total}
	}
	for _, o := range overrides {
		result[domain.DateKey(o.Date)] = domain.CapacityFromOverride(o)
	}

	return result, nil
}

// ReserveSlot занимает слот на дату.
// Запись на дату материализуется из значения по умолчанию, затем счетчик
// увеличивается охраняемым UPDATE. Нет свободных слотов - CapacityExceeded.
func (s *Service) ReserveSlot(ctx context.Context, packageID int64, date time.Time) error {
	day := domain.DateOnly(date)

	total, err := s.defaultTotal(ctx, packageID)
	if err != nil {
		return err
	}

	if err := s.repo.EnsureOverride(ctx, packageID, day, total); err != nil {
		s.metrics.RecordSlot("reserve", "error")
		s.logger.Error("ReserveSlot: failed to materialize override package=%d date=%s: %v", packageID, domain.DateKey(day), err)
		return fmt.Errorf("%w: ReserveSlot - ensure override: %w", ErrInternal, err)
	}

	if err := s.repo.IncrementBooked(ctx, packageID, day); err != nil {
		if errors.Is(err, capacityRepo.ErrCapacityExceeded) {
			s.metrics.RecordSlot("reserve", "exhausted")
			s.logger.Info("ReserveSlot: no slots left package=%d date=%s", packageID, domain.DateKey(day))
			return domain.Reject(domain.ErrCapacityExceeded, domain.ReasonNoSlots)
		}
		s.metrics.RecordSlot("reserve", "error")
		s.logger.Error("ReserveSlot: failed to increment package=%d date=%s: %v", packageID, domain.DateKey(day), err)
		return fmt.Errorf("%w: ReserveSlot - increment: %w", ErrInternal, err)
	}

	s.metrics.RecordSlot("reserve", "ok")
	return nil
}

// ReleaseSlot освобождает слот на дату. Если занятых нет - ErrNothingToRelease.
func (s *Service) ReleaseSlot(ctx context.Context, packageID int64, date time.Time) error {
	day := domain.DateOnly(date)

	if err := s.repo.DecrementBooked(ctx, packageID, day); err != nil {
		if errors.Is(err, capacityRepo.ErrNothingToRelease) {
			s.metrics.RecordSlot("release", "noop")
			s.logger.Warn("ReleaseSlot: nothing to release package=%d date=%s", packageID, domain.DateKey(day))
			return ErrNothingToRelease
		}
		s.metrics.RecordSlot("release", "error")
		s.logger.Error("ReleaseSlot: failed to decrement package=%d date=%s: %v", packageID, domain.DateKey(day), err)
		return fmt.Errorf("%w: ReleaseSlot - decrement: %w", ErrInternal, err)
	}

	s.metrics.RecordSlot("release", "ok")
	return nil
}

// SetDefaultCapacity задает емкость пакета по умолчанию. Только для планировщика пакета.
func (s *Service) SetDefaultCapacity(ctx context.Context, actorID, packageID int64, totalSlots int) (*domain.DefaultAvailability, error) {
	if totalSlots < domain.MinDefaultTotalSlots || totalSlots > domain.MaxTotalSlots {
		return nil, domain.Reject(domain.ErrInvalidInput,
			fmt.Sprintf("default total slots must be between %d and %d", domain.MinDefaultTotalSlots, domain.MaxTotalSlots))
	}

	if err := s.checkPlannerAccess(ctx, packageID, actorID); err != nil {
		return nil, err
	}

	def, err := s.repo.UpsertDefault(ctx, packageID, totalSlots)
	if err != nil {
		s.logger.Error("SetDefaultCapacity: failed to upsert package=%d: %v", packageID, err)
		return nil, fmt.Errorf("%w: SetDefaultCapacity - upsert: %w", ErrInternal, err)
	}

	s.logger.Info("SetDefaultCapacity: package=%d total=%d by user=%d", packageID, totalSlots, actorID)
	return def, nil
}

// SetDateCapacity задает емкость пакета на дату. Нельзя опустить ниже уже занятых слотов.
func (s *Service) SetDateCapacity(ctx context.Context, actorID, packageID int64, date time.Time, totalSlots int) (*domain.DateOverride, error) {
	if totalSlots < domain.MinDateTotalSlots || totalSlots > domain.MaxTotalSlots {
		return nil, domain.Reject(domain.ErrInvalidInput,
			fmt.Sprintf("date total slots must be between %d and %d", domain.MinDateTotalSlots, domain.MaxTotalSlots))
	}

	if err := s.checkPlannerAccess(ctx, packageID, actorID); err != nil {
		return nil, err
	}

	day := domain.DateOnly(date)
	override, err := s.repo.UpsertOverrideTotal(ctx, packageID, day, totalSlots)
	if err != nil {
		if errors.Is(err, capacityRepo.ErrTotalBelowBooked) {
			s.logger.Warn("SetDateCapacity: total=%d below booked for package=%d date=%s", totalSlots, packageID, domain.DateKey(day))
			return nil, domain.Reject(domain.ErrInvalidInput, "total slots cannot be lower than the number of already booked slots")
		}
		s.logger.Error("SetDateCapacity: failed to upsert package=%d date=%s: %v", packageID, domain.DateKey(day), err)
		return nil, fmt.Errorf("%w: SetDateCapacity - upsert: %w", ErrInternal, err)
	}

	s.logger.Info("SetDateCapacity: package=%d date=%s total=%d by user=%d", packageID, domain.DateKey(day), totalSlots, actorID)
	return override, nil
}

func (s *Service) defaultTotal(ctx context.Context, packageID int64) (int, error) {
	def, err := s.repo.GetDefault(ctx, packageID)
	if err != nil {
		if errors.Is(err, capacityRepo.ErrDefaultNotFound) {
			return domain.DefaultTotalSlots, nil
		}
		s.logger.Error("defaultTotal: failed to get default package=%d: %v", packageID, err)
		return 0, fmt.Errorf("%w: get default capacity: %w", ErrInternal, err)
	}
	return def.TotalSlots, nil
}

// checkPlannerAccess проверяет, что пользователь - планировщик пакета
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
		return domain.Reject(domain.ErrAccessDenied, "only the package planner can manage its capacity")
	}

	return nil
}

type noopMetrics struct{}

func (noopMetrics) RecordSlot(string, string) {}
