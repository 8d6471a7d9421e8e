package booking

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/ptr"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/types"
)

var weddingDay = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(bookingColumns)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()
	wt := types.TimeString("16:30")

	mock.ExpectQuery("INSERT INTO bookings .* RETURNING id, created_at, updated_at").
		WithArgs(int64(5), int64(9), weddingDay, "16:30", "Grand Hall", nil, "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), now, now))

	created, err := repo.Create(context.Background(), &domain.Booking{
		PackageID:   5,
		ClientID:    9,
		WeddingDate: weddingDay,
		WeddingTime: &wt,
		Location:    "Grand Hall",
		Status:      domain.StatusPending,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateForClientAndDate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.Create(context.Background(), &domain.Booking{
		PackageID:   5,
		ClientID:    9,
		WeddingDate: weddingDay,
		Status:      domain.StatusPending,
	})

	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT id, package_id, client_id, wedding_date, wedding_time .* FROM bookings WHERE id = \\$1").
		WithArgs(int64(42)).
		WillReturnRows(bookingRows().AddRow(
			int64(42), int64(5), int64(9), weddingDay, "16:30:00", "Grand Hall", "bring flowers",
			"confirmed", nil, nil, nil, now, now,
		))

	b, err := repo.GetByID(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, b.Status)
	require.NotNil(t, b.WeddingTime)
	assert.Equal(t, "16:30", b.WeddingTime.String())
	assert.Equal(t, "bring flowers", *b.Notes)
	assert.Nil(t, b.CancelledAt)
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("FROM bookings WHERE id = \\$1").
		WithArgs(int64(42)).
		WillReturnRows(bookingRows())

	_, err := repo.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetConfirmedDates(t *testing.T) {
	repo, mock := newRepo(t)
	from := weddingDay.AddDate(0, 0, -3)

	mock.ExpectQuery("SELECT wedding_date FROM bookings WHERE package_id = \\$1 AND status = \\$2").
		WithArgs(int64(5), "confirmed", from, weddingDay).
		WillReturnRows(sqlmock.NewRows([]string{"wedding_date"}).AddRow(from).AddRow(weddingDay))

	dates, err := repo.GetConfirmedDates(context.Background(), 5, from, weddingDay)

	require.NoError(t, err)
	assert.Equal(t, []time.Time{from, weddingDay}, dates)
}

func TestExistsActiveForClientOnDate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT id FROM bookings WHERE client_id = \\$1 AND wedding_date = \\$2 AND status <> \\$3 AND id <> \\$4 LIMIT 1").
		WithArgs(int64(9), weddingDay, "cancelled", int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	exists, err := repo.ExistsActiveForClientOnDate(context.Background(), 9, weddingDay, 42)

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestExistsActiveForClientOnDateNone(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT id FROM bookings WHERE client_id = \\$1 AND wedding_date = \\$2 AND status <> \\$3 LIMIT 1").
		WithArgs(int64(9), weddingDay, "cancelled").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	exists, err := repo.ExistsActiveForClientOnDate(context.Background(), 9, weddingDay, 0)

	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCancel(t *testing.T) {
	repo, mock := newRepo(t)
	at := time.Date(2025, 11, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE bookings SET status = \\$1, cancellation_reason = \\$2, cancelled_at = \\$3, updated_at = NOW\\(\\) WHERE id = \\$4").
		WithArgs("cancelled", ptr.Ptr("changed plans"), at, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), 42, ptr.Ptr("changed plans"), at))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("UPDATE bookings SET status").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 42, domain.StatusConfirmed, nil)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateDetailsDuplicate(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec("UPDATE bookings SET wedding_date").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.UpdateDetails(context.Background(), &domain.Booking{ID: 42, WeddingDate: weddingDay})

	assert.ErrorIs(t, err, ErrDuplicateBooking)
}
