package preparation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/logger"
)

func date(s string) time.Time {
	d, _ := time.Parse(domain.DateFormat, s)
	return d
}

type fakeBookings struct {
	dates    []time.Time
	err      error
	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeBookings) GetConfirmedDates(_ context.Context, _ int64, from, to time.Time) ([]time.Time, error) {
	f.lastFrom, f.lastTo = from, to
	if f.err != nil {
		return nil, f.err
	}
	result := make([]time.Time, 0)
	for _, d := range f.dates {
		if !d.Before(from) && !d.After(to) {
			result = append(result, d)
		}
	}
	return result, nil
}

func TestPreparationWindowAfterConfirmedBooking(t *testing.T) {
	repo := &fakeBookings{dates: []time.Time{date("2025-06-10")}}
	svc := NewService(repo, logger.NewNop())
	pkg := &domain.Package{ID: 1, IsActive: true, PreparationDays: 3}
	ctx := context.Background()

	for _, d := range []string{"2025-06-11", "2025-06-12", "2025-06-13"} {
		in, err := svc.IsInPreparationPeriod(ctx, pkg, date(d))
		require.NoError(t, err)
		assert.True(t, in, d)
	}

	for _, d := range []string{"2025-06-09", "2025-06-10", "2025-06-14"} {
		in, err := svc.IsInPreparationPeriod(ctx, pkg, date(d))
		require.NoError(t, err)
		assert.False(t, in, d)
	}
}

func TestZeroPreparationDaysBlocksNothing(t *testing.T) {
	repo := &fakeBookings{dates: []time.Time{date("2025-06-10")}}
	svc := NewService(repo, logger.NewNop())
	pkg := &domain.Package{ID: 1, IsActive: true}

	blocked, err := svc.BlockedDates(context.Background(), pkg, date("2025-06-01"), date("2025-06-30"))

	require.NoError(t, err)
	assert.Empty(t, blocked)
}

func TestBlockedDatesQueriesLookbackWindow(t *testing.T) {
	repo := &fakeBookings{dates: []time.Time{date("2025-05-30"), date("2025-06-05")}}
	svc := NewService(repo, logger.NewNop())
	pkg := &domain.Package{ID: 1, IsActive: true, PreparationDays: 2}

	blocked, err := svc.BlockedDates(context.Background(), pkg, date("2025-06-01"), date("2025-06-06"))

	require.NoError(t, err)
	assert.Equal(t, date("2025-05-30"), repo.lastFrom)
	assert.Equal(t, date("2025-06-05"), repo.lastTo)
	assert.Equal(t, map[string]bool{"2025-06-01": true, "2025-06-06": true}, blocked)
}

func TestBlockedDatesRepositoryError(t *testing.T) {
	repo := &fakeBookings{err: errors.New("db down")}
	svc := NewService(repo, logger.NewNop())
	pkg := &domain.Package{ID: 1, IsActive: true, PreparationDays: 2}

	_, err := svc.BlockedDates(context.Background(), pkg, date("2025-06-01"), date("2025-06-06"))

	assert.ErrorIs(t, err, ErrInternal)
}

func TestBlockedSetOverlappingWindows(t *testing.T) {
	confirmed := []time.Time{date("2025-06-10"), date("2025-06-11")}

	blocked := BlockedSet(confirmed, 2, date("2025-06-01"), date("2025-06-30"))

	assert.Equal(t, map[string]bool{"2025-06-11": true, "2025-06-12": true, "2025-06-13": true}, blocked)
}
