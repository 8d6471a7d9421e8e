// Package txmanager управление транзакциями через контекст.
// Репозитории берут транзакцию из контекста через dbmetrics.GetExecutor.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-PlannerBookingService/pkg/dbmetrics"
)

// DefaultMaxRetries сколько раз повторять сериализуемую транзакцию при конфликте
const DefaultMaxRetries = 3

var (
	// ErrBeginTx ошибка начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx ошибка фиксации транзакции
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")
)

// TxBeginner источник транзакций (dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции внутри транзакции
type TransactionManager struct {
	db         TxBeginner
	maxRetries int
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner, maxRetries int) *TransactionManager {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &TransactionManager{db: db, maxRetries: maxRetries}
}

// Do выполняет fn в транзакции READ COMMITTED
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn, 0)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE.
// При ошибке сериализации (40001) или дедлоке (40P01) транзакция повторяется.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn, m.maxRetries)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn, 0)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error, retries int) error {
	// Вложенный вызов - работаем в уже открытой транзакции
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		err = m.once(ctx, opts, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}

func (m *TransactionManager) once(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		if IsRetryable(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}
	return nil
}

// IsRetryable возвращает true для ошибок сериализации и дедлоков PostgreSQL
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
