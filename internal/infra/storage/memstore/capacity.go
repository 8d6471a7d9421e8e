package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/capacity"
)

// CapacityRepository емкость пакетов в памяти
type CapacityRepository struct {
	s *Store
}

func (r *CapacityRepository) GetDefault(ctx context.Context, packageID int64) (*domain.DefaultAvailability, error) {
	defer r.s.lock(ctx)()

	def, ok := r.s.defaults[packageID]
	if !ok {
		return nil, capacity.ErrDefaultNotFound
	}
	return &def, nil
}

func (r *CapacityRepository) UpsertDefault(ctx context.Context, packageID int64, totalSlots int) (*domain.DefaultAvailability, error) {
	defer r.s.lock(ctx)()

	now := r.s.now()
	def, ok := r.s.defaults[packageID]
	if !ok {
		def = domain.DefaultAvailability{PackageID: packageID, CreatedAt: now}
	}
	def.TotalSlots = totalSlots
	def.UpdatedAt = now
	r.s.defaults[packageID] = def

	return &def, nil
}

func (r *CapacityRepository) GetOverride(ctx context.Context, packageID int64, date time.Time) (*domain.DateOverride, error) {
	defer r.s.lock(ctx)()

	o, ok := r.s.overrides[overrideKey{packageID, domain.DateOnly(date)}]
	if !ok {
		return nil, capacity.ErrOverrideNotFound
	}
	return &o, nil
}

func (r *CapacityRepository) GetOverridesInRange(ctx context.Context, packageID int64, start, end time.Time) ([]*domain.DateOverride, error) {
	defer r.s.lock(ctx)()

	from, to := domain.DateOnly(start), domain.DateOnly(end)
	result := make([]*domain.DateOverride, 0)
	for k, v := range r.s.overrides {
		if k.packageID != packageID || k.date.Before(from) || k.date.After(to) {
			continue
		}
		o := v
		result = append(result, &o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })

	return result, nil
}

func (r *CapacityRepository) UpsertOverrideTotal(ctx context.Context, packageID int64, date time.Time, totalSlots int) (*domain.DateOverride, error) {
	defer r.s.lock(ctx)()

	key := overrideKey{packageID, domain.DateOnly(date)}
	now := r.s.now()

	o, ok := r.s.overrides[key]
	if !ok {
		o = domain.DateOverride{PackageID: packageID, Date: key.date, CreatedAt: now}
	} else if o.BookedSlots > totalSlots {
		return nil, capacity.ErrTotalBelowBooked
	}
	o.TotalSlots = totalSlots
	o.UpdatedAt = now
	r.s.overrides[key] = o

	return &o, nil
}

func (r *CapacityRepository) EnsureOverride(ctx context.Context, packageID int64, date time.Time, totalSlots int) error {
	defer r.s.lock(ctx)()

	key := overrideKey{packageID, domain.DateOnly(date)}
	if _, ok := r.s.overrides[key]; ok {
		return nil
	}
	now := r.s.now()
	r.s.overrides[key] = domain.DateOverride{
		PackageID:  packageID,
		Date:       key.date,
		TotalSlots: totalSlots,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return nil
}

func (r *CapacityRepository) IncrementBooked(ctx context.Context, packageID int64, date time.Time) error {
	defer r.s.lock(ctx)()

	key := overrideKey{packageID, domain.DateOnly(date)}
	o, ok := r.s.overrides[key]
	if !ok || o.BookedSlots >= o.TotalSlots {
		return capacity.ErrCapacityExceeded
	}
	o.BookedSlots++
	o.UpdatedAt = r.s.now()
	r.s.overrides[key] = o
	return nil
}

func (r *CapacityRepository) DecrementBooked(ctx context.Context, packageID int64, date time.Time) error {
	defer r.s.lock(ctx)()

	key := overrideKey{packageID, domain.DateOnly(date)}
	o, ok := r.s.overrides[key]
	if !ok || o.BookedSlots <= 0 {
		return capacity.ErrNothingToRelease
	}
	o.BookedSlots--
	o.UpdatedAt = r.s.now()
	r.s.overrides[key] = o
	return nil
}

func (r *CapacityRepository) DeleteByPackage(ctx context.Context, packageID int64) error {
	defer r.s.lock(ctx)()

	for k := range r.s.overrides {
		if k.packageID == packageID {
			delete(r.s.overrides, k)
		}
	}
	delete(r.s.defaults, packageID)
	return nil
}
