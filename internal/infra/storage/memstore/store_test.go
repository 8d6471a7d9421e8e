package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/blackout"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-PlannerBookingService/internal/infra/storage/capacity"
)

var day = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

func TestCapacityGuardedCounters(t *testing.T) {
	ctx := context.Background()
	repo := New().Capacity()

	require.NoError(t, repo.EnsureOverride(ctx, 1, day, 2))
	require.NoError(t, repo.EnsureOverride(ctx, 1, day, 5)) // уже есть, не меняется

	require.NoError(t, repo.IncrementBooked(ctx, 1, day))
	require.NoError(t, repo.IncrementBooked(ctx, 1, day))
	assert.ErrorIs(t, repo.IncrementBooked(ctx, 1, day), capacity.ErrCapacityExceeded)

	o, err := repo.GetOverride(ctx, 1, day)
	require.NoError(t, err)
	assert.Equal(t, 2, o.TotalSlots)
	assert.Equal(t, 2, o.BookedSlots)

	_, err = repo.UpsertOverrideTotal(ctx, 1, day, 1)
	assert.ErrorIs(t, err, capacity.ErrTotalBelowBooked)

	require.NoError(t, repo.DecrementBooked(ctx, 1, day))
	require.NoError(t, repo.DecrementBooked(ctx, 1, day))
	assert.ErrorIs(t, repo.DecrementBooked(ctx, 1, day), capacity.ErrNothingToRelease)
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := New()
	tx := store.TxManager()
	caps := store.Capacity()
	bookings := store.Bookings()

	require.NoError(t, caps.EnsureOverride(ctx, 1, day, 1))

	sentinel := errors.New("boom")
	err := tx.DoSerializable(ctx, func(txCtx context.Context) error {
		require.NoError(t, caps.IncrementBooked(txCtx, 1, day))
		_, err := bookings.Create(txCtx, &domain.Booking{PackageID: 1, ClientID: 9, WeddingDate: day, Status: domain.StatusPending})
		require.NoError(t, err)
		// вложенный вызов работает в той же транзакции
		return tx.Do(txCtx, func(context.Context) error { return sentinel })
	})
	assert.ErrorIs(t, err, sentinel)

	o, err := caps.GetOverride(ctx, 1, day)
	require.NoError(t, err)
	assert.Equal(t, 0, o.BookedSlots)

	list, err := bookings.GetByClientID(ctx, 9, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBookingUniquenessAcrossPackages(t *testing.T) {
	ctx := context.Background()
	repo := New().Bookings()

	first, err := repo.Create(ctx, &domain.Booking{PackageID: 1, ClientID: 9, WeddingDate: day, Status: domain.StatusPending})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Booking{PackageID: 2, ClientID: 9, WeddingDate: day, Status: domain.StatusPending})
	assert.ErrorIs(t, err, booking.ErrDuplicateBooking)

	require.NoError(t, repo.Cancel(ctx, first.ID, nil, time.Now()))

	_, err = repo.Create(ctx, &domain.Booking{PackageID: 2, ClientID: 9, WeddingDate: day, Status: domain.StatusPending})
	assert.NoError(t, err)
}

func TestConfirmedDatesAndFilter(t *testing.T) {
	ctx := context.Background()
	repo := New().Bookings()

	b1, _ := repo.Create(ctx, &domain.Booking{PackageID: 1, ClientID: 1, WeddingDate: day, Status: domain.StatusPending})
	_, _ = repo.Create(ctx, &domain.Booking{PackageID: 1, ClientID: 2, WeddingDate: day.AddDate(0, 0, 5), Status: domain.StatusPending})
	require.NoError(t, repo.UpdateStatus(ctx, b1.ID, domain.StatusConfirmed, nil))

	dates, err := repo.GetConfirmedDates(ctx, 1, day.AddDate(0, 0, -3), day.AddDate(0, 0, 10))
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day}, dates)

	end := day.AddDate(0, 0, 1)
	list, err := repo.GetByPackageWithFilter(ctx, domain.PackageBookingsFilter{PackageID: 1, StartDate: &day, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b1.ID, list[0].ID)
}

func TestBlackoutDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := New().Blackouts()

	created, err := repo.Create(ctx, &domain.Blackout{PackageID: 1, Date: day})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.Blackout{PackageID: 1, Date: day.Add(3 * time.Hour)})
	assert.ErrorIs(t, err, blackout.ErrDuplicateBlackout)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
