package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/blackout"
)

// BlackoutRepository закрытые даты в памяти
type BlackoutRepository struct {
	s *Store
}

func (r *BlackoutRepository) Create(ctx context.Context, b *domain.Blackout) (*domain.Blackout, error) {
	defer r.s.lock(ctx)()

	b.Date = domain.DateOnly(b.Date)
	for _, existing := range r.s.blackouts {
		if existing.PackageID == b.PackageID && existing.Date.Equal(b.Date) {
			return nil, blackout.ErrDuplicateBlackout
		}
	}

	r.s.nextBlackoutID++
	b.ID = r.s.nextBlackoutID
	b.CreatedAt = r.s.now()
	r.s.blackouts[b.ID] = *b

	return b, nil
}

func (r *BlackoutRepository) GetByID(ctx context.Context, id int64) (*domain.Blackout, error) {
	defer r.s.lock(ctx)()

	b, ok := r.s.blackouts[id]
	if !ok {
		return nil, blackout.ErrBlackoutNotFound
	}
	return &b, nil
}

func (r *BlackoutRepository) GetByPackageAndDate(ctx context.Context, packageID int64, date time.Time) (*domain.Blackout, error) {
	defer r.s.lock(ctx)()

	day := domain.DateOnly(date)
	for _, b := range r.s.blackouts {
		if b.PackageID == packageID && b.Date.Equal(day) {
			found := b
			return &found, nil
		}
	}
	return nil, blackout.ErrBlackoutNotFound
}

func (r *BlackoutRepository) GetByPackageInRange(ctx context.Context, packageID int64, start, end time.Time) ([]*domain.Blackout, error) {
	defer r.s.lock(ctx)()

	from, to := domain.DateOnly(start), domain.DateOnly(end)
	result := make([]*domain.Blackout, 0)
	for _, b := range r.s.blackouts {
		if b.PackageID != packageID || b.Date.Before(from) || b.Date.After(to) {
			continue
		}
		found := b
		result = append(result, &found)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })

	return result, nil
}

func (r *BlackoutRepository) Delete(ctx context.Context, id int64) (bool, error) {
	defer r.s.lock(ctx)()

	if _, ok := r.s.blackouts[id]; !ok {
		return false, nil
	}
	delete(r.s.blackouts, id)
	return true, nil
}

func (r *BlackoutRepository) DeleteByPackage(ctx context.Context, packageID int64) error {
	defer r.s.lock(ctx)()

	for id, b := range r.s.blackouts {
		if b.PackageID == packageID {
			delete(r.s.blackouts, id)
		}
	}
	return nil
}
