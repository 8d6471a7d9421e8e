package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/booking"
)

// BookingRepository бронирования в памяти
type BookingRepository struct {
	s *Store
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	defer r.s.lock(ctx)()

	b.WeddingDate = domain.DateOnly(b.WeddingDate)
	if r.s.activeExists(b.ClientID, b.WeddingDate, 0) {
		return nil, booking.ErrDuplicateBooking
	}

	now := r.s.now()
	r.s.nextBookingID++
	b.ID = r.s.nextBookingID
	b.CreatedAt = now
	b.UpdatedAt = now
	r.s.bookings[b.ID] = *b

	return b, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	defer r.s.lock(ctx)()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return &b, nil
}

// GetByIDForUpdate в памяти строка защищена мьютексом транзакции
func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *BookingRepository) GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	defer r.s.lock(ctx)()

	result := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.ClientID != clientID || (status != nil && b.Status != *status) {
			continue
		}
		found := b
		result = append(result, &found)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].WeddingDate.Equal(result[j].WeddingDate) {
			return result[i].WeddingDate.After(result[j].WeddingDate)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

func (r *BookingRepository) GetByPackageWithFilter(ctx context.Context, filter domain.PackageBookingsFilter) ([]*domain.Booking, error) {
	defer r.s.lock(ctx)()

	result := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.PackageID != filter.PackageID {
			continue
		}
		if filter.StartDate != nil && b.WeddingDate.Before(domain.DateOnly(*filter.StartDate)) {
			continue
		}
		if filter.EndDate != nil && b.WeddingDate.After(domain.DateOnly(*filter.EndDate)) {
			continue
		}
		if filter.Status != nil {
			if b.Status != *filter.Status {
				continue
			}
		} else if !filter.IncludeCancelled && b.IsCancelled() {
			continue
		}
		found := b
		result = append(result, &found)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].WeddingDate.Equal(result[j].WeddingDate) {
			return result[i].WeddingDate.Before(result[j].WeddingDate)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *BookingRepository) GetConfirmedDates(ctx context.Context, packageID int64, from, to time.Time) ([]time.Time, error) {
	defer r.s.lock(ctx)()

	start, end := domain.DateOnly(from), domain.DateOnly(to)
	dates := make([]time.Time, 0)
	for _, b := range r.s.bookings {
		if b.PackageID != packageID || b.Status != domain.StatusConfirmed {
			continue
		}
		if b.WeddingDate.Before(start) || b.WeddingDate.After(end) {
			continue
		}
		dates = append(dates, b.WeddingDate)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	return dates, nil
}

func (r *BookingRepository) ExistsActiveForClientOnDate(ctx context.Context, clientID int64, date time.Time, excludeID int64) (bool, error) {
	defer r.s.lock(ctx)()

	return r.s.activeExists(clientID, domain.DateOnly(date), excludeID), nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, note *string) error {
	defer r.s.lock(ctx)()

	b, ok := r.s.bookings[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	b.Status = status
	b.StatusNote = note
	b.UpdatedAt = r.s.now()
	r.s.bookings[id] = b
	return nil
}

func (r *BookingRepository) Cancel(ctx context.Context, id int64, reason *string, cancelledAt time.Time) error {
	defer r.s.lock(ctx)()

	b, ok := r.s.bookings[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	b.Status = domain.StatusCancelled
	b.CancellationReason = reason
	b.CancelledAt = &cancelledAt
	b.UpdatedAt = r.s.now()
	r.s.bookings[id] = b
	return nil
}

func (r *BookingRepository) UpdateDetails(ctx context.Context, upd *domain.Booking) error {
	defer r.s.lock(ctx)()

	b, ok := r.s.bookings[upd.ID]
	if !ok {
		return booking.ErrBookingNotFound
	}
	upd.WeddingDate = domain.DateOnly(upd.WeddingDate)
	if b.IsActive() && r.s.activeExists(b.ClientID, upd.WeddingDate, b.ID) {
		return booking.ErrDuplicateBooking
	}
	b.WeddingDate = upd.WeddingDate
	b.WeddingTime = upd.WeddingTime
	b.Location = upd.Location
	b.Notes = upd.Notes
	b.UpdatedAt = r.s.now()
	r.s.bookings[b.ID] = b
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.bookings[id]; !ok {
		return booking.ErrBookingNotFound
	}
	delete(r.s.bookings, id)
	return nil
}

// activeExists аналог частичного уникального индекса (client_id, wedding_date)
func (s *Store) activeExists(clientID int64, date time.Time, excludeID int64) bool {
	for _, b := range s.bookings {
		if b.ClientID == clientID && b.WeddingDate.Equal(date) && b.IsActive() && b.ID != excludeID {
			return true
		}
	}
	return false
}
