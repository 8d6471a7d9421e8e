package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/integrations/packageservice"
	"github.com/m04kA/SMC-PlannerBookingService/internal/service/blackouts"
)

// Service вычисляет доступность пакета на даты.
// Порядок проверок: пакет, закрытая дата, период подготовки, емкость.
type Service struct {
	packages     PackageProvider
	capacity     CapacityReader
	blackouts    BlackoutReader
	preparation  PreparationResolver
	horizonDays  int
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	packages PackageProvider,
	capacity CapacityReader,
	blackoutReader BlackoutReader,
	preparation PreparationResolver,
	horizonDays int,
	logger Logger,
) *Service {
	if horizonDays <= 0 {
		horizonDays = domain.DefaultRangeHorizonDays
	}
	return &Service{
		packages:     packages,
		capacity:     capacity,
		blackouts:    blackoutReader,
		preparation:  preparation,
		horizonDays:  horizonDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// CheckAvailability вердикт по пакету на дату
func (s *Service) CheckAvailability(ctx context.Context, packageID int64, date time.Time) (domain.Verdict, error) {
	pkg, err := s.loadPackage(ctx, packageID)
	if err != nil {
		return domain.Verdict{}, err
	}
	return s.CheckPackageDate(ctx, pkg, date)
}

// CheckPackageDate вердикт по уже загруженному пакету. pkg может быть nil.
func (s *Service) CheckPackageDate(ctx context.Context, pkg *domain.Package, date time.Time) (domain.Verdict, error) {
	day := domain.DateOnly(date)

	calendar, err := s.resolve(ctx, pkg, day, day)
	if err != nil {
		return domain.Verdict{}, err
	}
	return calendar[domain.DateKey(day)], nil
}

// GetAvailabilityRange вердикты на каждую дату [start, end].
// Диапазон длиннее горизонта обрезается до горизонта.
func (s *Service) GetAvailabilityRange(ctx context.Context, packageID int64, start, end time.Time) (domain.Calendar, error) {
	from, to := domain.DateOnly(start), domain.DateOnly(end)
	if to.Before(from) {
		return nil, domain.Reject(domain.ErrInvalidInput, "end date must not be before start date")
	}

	if domain.DaysInclusive(from, to) > s.horizonDays {
		truncated := domain.AddDays(from, s.horizonDays-1)
		s.logger.Info("GetAvailabilityRange: package=%d range %s..%s truncated to %s",
			packageID, domain.DateKey(from), domain.DateKey(to), domain.DateKey(truncated))
		to = truncated
	}

	pkg, err := s.loadPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}

	return s.resolve(ctx, pkg, from, to)
}

// GetUpcomingAvailableDates ближайшие доступные даты строго после сегодняшней,
// по возрастанию, не более limit
func (s *Service) GetUpcomingAvailableDates(ctx context.Context, packageID int64, daysAhead, limit int) ([]domain.Verdict, error) {
	// окно не длиннее горизонта диапазона
	maxDays := min(domain.MaxUpcomingDays, s.horizonDays)
	if daysAhead <= 0 || daysAhead > maxDays {
		return nil, domain.Reject(domain.ErrInvalidInput,
			fmt.Sprintf("days must be between 1 and %d", maxDays))
	}
	if limit <= 0 || limit > domain.MaxUpcomingLimit {
		return nil, domain.Reject(domain.ErrInvalidInput,
			fmt.Sprintf("limit must be between 1 and %d", domain.MaxUpcomingLimit))
	}

	today := domain.Today(s.timeProvider.Now())
	calendar, err := s.GetAvailabilityRange(ctx, packageID, domain.AddDays(today, 1), domain.AddDays(today, daysAhead))
	if err != nil {
		return nil, err
	}

	result := make([]domain.Verdict, 0, limit)
	for _, v := range calendar.Verdicts() {
		if !v.Available {
			continue
		}
		result = append(result, v)
		if len(result) == limit {
			break
		}
	}

	return result, nil
}

// loadPackage возвращает nil без ошибки, если пакета нет в каталоге
func (s *Service) loadPackage(ctx context.Context, packageID int64) (*domain.Package, error) {
	pkg, err := s.packages.GetPackage(ctx, packageID)
	if err != nil {
		if errors.Is(err, packageservice.ErrPackageNotFound) {
			s.logger.Warn("loadPackage: package id=%d not found", packageID)
			return nil, nil
		}
		s.logger.Error("loadPackage: failed to get package id=%d: %v", packageID, err)
		return nil, fmt.Errorf("%w: loadPackage - get package: %w", ErrInternal, err)
	}
	return pkg, nil
}

// resolve единая оценка дат [from, to] для одиночной проверки и диапазона
func (s *Service) resolve(ctx context.Context, pkg *domain.Package, from, to time.Time) (domain.Calendar, error) {
	calendar := make(domain.Calendar, domain.DaysInclusive(from, to))

	if !pkg.IsBookable() {
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			calendar[domain.DateKey(d)] = domain.Verdict{
				Date:   d,
				Status: domain.AvailabilityUnavailable,
				Reason: domain.ReasonPackageUnavailable,
			}
		}
		return calendar, nil
	}

	closed, err := s.blackouts.InRange(ctx, pkg.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve - blackouts: %w", ErrInternal, err)
	}

	preparation, err := s.preparation.BlockedDates(ctx, pkg, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve - preparation: %w", ErrInternal, err)
	}

	capacities, err := s.capacity.GetCapacityRange(ctx, pkg.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve - capacity: %w", ErrInternal, err)
	}

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := domain.DateKey(d)
		calendar[key] = decide(d, closed[key], preparation[key], capacities[key])
	}

	return calendar, nil
}

// decide первая сработавшая проверка определяет вердикт
func decide(date time.Time, blackout *domain.Blackout, inPreparation bool, c domain.Capacity) domain.Verdict {
	switch {
	case blackout != nil:
		return domain.Verdict{
			Date:      date,
			Status:    domain.AvailabilityBlocked,
			Reason:    blackouts.ReasonFor(blackout),
			IsBlocked: true,
		}
	case inPreparation:
		return domain.Verdict{
			Date:                date,
			Status:              domain.AvailabilityPreparation,
			Reason:              domain.ReasonPreparation,
			IsBlocked:           true,
			IsPreparationPeriod: true,
		}
	}

	v := domain.Verdict{
		Date:           date,
		TotalSlots:     c.TotalSlots,
		BookedSlots:    c.BookedSlots,
		AvailableSlots: c.AvailableSlots(),
	}
	if v.AvailableSlots > 0 {
		v.Status = domain.AvailabilityAvailable
		v.Available = true
		return v
	}
	v.Status = domain.AvailabilityExhausted
	v.Reason = domain.ReasonNoSlots
	return v
}
