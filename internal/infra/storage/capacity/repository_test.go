package capacity

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlannerBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/txmanager"
)

var day = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), db, mock
}

func TestGetDefault(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT package_id, total_slots, created_at, updated_at FROM package_default_availability").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"package_id", "total_slots", "created_at", "updated_at"}).
			AddRow(int64(7), 3, now, now))

	def, err := repo.GetDefault(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 3, def.TotalSlots)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDefaultNotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("FROM package_default_availability").
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetDefault(context.Background(), 7)

	assert.ErrorIs(t, err, ErrDefaultNotFound)
}

func TestIncrementBooked(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE package_date_overrides SET booked_slots = booked_slots \+ 1`).
		WithArgs(int64(7), day).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementBooked(context.Background(), 7, day))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementBookedFullDate(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`booked_slots < total_slots`).
		WithArgs(int64(7), day).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementBooked(context.Background(), 7, day)

	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestIncrementBookedKeepsSerializationFailure(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE package_date_overrides SET booked_slots = booked_slots \+ 1`).
		WithArgs(int64(7), day).
		WillReturnError(&pq.Error{Code: "40001"})

	err := repo.IncrementBooked(context.Background(), 7, day)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.True(t, txmanager.IsRetryable(err))
}

func TestIncrementBookedRetriedAfterSerializationFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	mgr := txmanager.NewTransactionManager(dbmetrics.Wrap(db, nil), txmanager.DefaultMaxRetries)

	// первая попытка проигрывает гонку за последний слот
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE package_date_overrides SET booked_slots = booked_slots \+ 1`).
		WithArgs(int64(7), day).
		WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()

	// повтор видит заполненную дату
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE package_date_overrides SET booked_slots = booked_slots \+ 1`).
		WithArgs(int64(7), day).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	attempts := 0
	err = mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return repo.IncrementBooked(ctx, 7, day)
	})

	assert.Equal(t, 2, attempts)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementBookedNothingToRelease(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE package_date_overrides SET booked_slots = booked_slots - 1`).
		WithArgs(int64(7), day).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DecrementBooked(context.Background(), 7, day)

	assert.ErrorIs(t, err, ErrNothingToRelease)
}

func TestEnsureOverrideDoesNothingOnConflict(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`INSERT INTO package_date_overrides .* ON CONFLICT \(package_id, override_date\) DO NOTHING`).
		WithArgs(int64(7), day, 2, 0).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureOverride(context.Background(), 7, day, 2))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertOverrideTotalBelowBooked(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO package_date_overrides .* DO UPDATE`).
		WithArgs(int64(7), day, 1, 0).
		WillReturnRows(sqlmock.NewRows([]string{"booked_slots", "created_at", "updated_at"}))

	_, err := repo.UpsertOverrideTotal(context.Background(), 7, day, 1)

	assert.ErrorIs(t, err, ErrTotalBelowBooked)
}

func TestGetOverrideLocksRowInTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM package_date_overrides .* FOR UPDATE`).
		WithArgs(int64(7), day).
		WillReturnRows(sqlmock.NewRows([]string{"package_id", "override_date", "total_slots", "booked_slots", "created_at", "updated_at"}).
			AddRow(int64(7), day, 2, 1, now, now))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), &dbmetrics.SqlTxWrapper{Tx: tx})

	override, err := repo.GetOverride(ctx, 7, day)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, 2, override.TotalSlots)
	assert.Equal(t, 1, override.BookedSlots)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOverridesInRange(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Now()
	end := day.AddDate(0, 0, 6)

	mock.ExpectQuery(`FROM package_date_overrides WHERE package_id = \$1 AND override_date >= \$2 AND override_date <= \$3 ORDER BY override_date ASC`).
		WithArgs(int64(7), day, end).
		WillReturnRows(sqlmock.NewRows([]string{"package_id", "override_date", "total_slots", "booked_slots", "created_at", "updated_at"}).
			AddRow(int64(7), day, 2, 2, now, now).
			AddRow(int64(7), day.AddDate(0, 0, 3), 0, 0, now, now))

	overrides, err := repo.GetOverridesInRange(context.Background(), 7, day, end)

	require.NoError(t, err)
	require.Len(t, overrides, 2)
	assert.Equal(t, 0, overrides[1].TotalSlots)
}

func TestDeleteByPackage(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec("DELETE FROM package_date_overrides WHERE package_id = ").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec("DELETE FROM package_default_availability WHERE package_id = ").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteByPackage(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}
