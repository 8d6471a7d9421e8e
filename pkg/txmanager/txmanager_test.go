package txmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlannerBookingService/pkg/dbmetrics"
)

func newManager(t *testing.T, retries int) (*TransactionManager, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewTransactionManager(dbmetrics.Wrap(db, nil), retries), mock, func() { db.Close() }
}

func TestDoSerializableCommits(t *testing.T) {
	mgr, mock, cleanup := newManager(t, DefaultMaxRetries)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		require.True(t, dbmetrics.IsInTransaction(ctx))
		tx, _ := dbmetrics.TxFromContext(ctx)
		_, err := tx.ExecContext(ctx, "UPDATE bookings SET status = 'confirmed'")
		return err
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializableRollsBackOnError(t *testing.T) {
	mgr, mock, cleanup := newManager(t, DefaultMaxRetries)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := errors.New("boom")
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializableRetriesSerializationFailure(t *testing.T) {
	mgr, mock, cleanup := newManager(t, 2)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return &pq.Error{Code: "40001"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializableGivesUpAfterRetries(t *testing.T) {
	mgr, mock, cleanup := newManager(t, 1)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectRollback()

	calls := 0
	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return &pq.Error{Code: "40001"}
	})

	assert.True(t, IsRetryable(err))
	assert.Equal(t, 2, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNestedCallReusesTransaction(t *testing.T) {
	mgr, mock, cleanup := newManager(t, 0)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return mgr.DoSerializable(ctx, func(inner context.Context) error {
			assert.True(t, dbmetrics.IsInTransaction(inner))
			return nil
		})
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pq.Error{Code: "40P01"}))
	assert.False(t, IsRetryable(&pq.Error{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("plain")))
}
