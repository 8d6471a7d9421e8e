// Package preparation вычисляет даты подготовительного периода.
// Для каждого подтвержденного бронирования на дату D при P днях подготовки
// закрыты даты D+1 ... D+P. Множество считается на лету по текущим
// подтвержденным бронированиям и не кэшируется.
package preparation

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

// Service резолвер подготовительного периода
type Service struct {
	bookings BookingRepository
	logger   Logger
}

// NewService создает новый экземпляр резолвера
func NewService(bookings BookingRepository, logger Logger) *Service {
	return &Service{bookings: bookings, logger: logger}
}

// IsInPreparationPeriod попадает ли дата в подготовительный период другого бронирования
func (s *Service) IsInPreparationPeriod(ctx context.Context, pkg *domain.Package, date time.Time) (bool, error) {
	day := domain.DateOnly(date)

	blocked, err := s.BlockedDates(ctx, pkg, day, day)
	if err != nil {
		return false, err
	}
	return blocked[domain.DateKey(day)], nil
}

// BlockedDates даты диапазона [start, end], закрытые подготовкой
func (s *Service) BlockedDates(ctx context.Context, pkg *domain.Package, start, end time.Time) (map[string]bool, error) {
	days := pkg.PreparationDays
	from, to := domain.DateOnly(start), domain.DateOnly(end)
	if days <= 0 || to.Before(from) {
		return map[string]bool{}, nil
	}

	// бронирование на D влияет на [start, end], только если D ∈ [start-P, end-1]
	confirmed, err := s.bookings.GetConfirmedDates(ctx, pkg.ID, domain.AddDays(from, -days), domain.AddDays(to, -1))
	if err != nil {
		s.logger.Error("BlockedDates: failed to load confirmed bookings package=%d: %v", pkg.ID, err)
		return nil, fmt.Errorf("%w: BlockedDates - get confirmed dates: %w", ErrInternal, err)
	}

	return BlockedSet(confirmed, days, from, to), nil
}

// BlockedSet даты [start, end], попадающие в окна D+1 ... D+days
func BlockedSet(confirmed []time.Time, days int, start, end time.Time) map[string]bool {
	result := make(map[string]bool)
	if days <= 0 {
		return result
	}

	from, to := domain.DateOnly(start), domain.DateOnly(end)
	for _, d := range confirmed {
		for i := 1; i <= days; i++ {
			blocked := domain.AddDays(d, i)
			if blocked.Before(from) {
				continue
			}
			if blocked.After(to) {
				break
			}
			result[domain.DateKey(blocked)] = true
		}
	}
	return result
}
