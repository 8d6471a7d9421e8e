// Package dbmetrics обертка над *sql.DB, снимающая метрики запросов и пула соединений
package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/pkg/metrics"
)

// DefaultStatsInterval период сбора статистики пула
const DefaultStatsInterval = 15 * time.Second

// DB обертка над *sql.DB. Если metrics == nil, метрики не пишутся.
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap оборачивает *sql.DB без фонового сбора статистики пула
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает *sql.DB и запускает сбор статистики пула до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	if m != nil {
		go wrapped.collectStats(stopCh, DefaultStatsInterval)
	}
	return wrapped
}

// Unwrap возвращает исходный *sql.DB
func (d *DB) Unwrap() *sql.DB {
	return d.db
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, row.Err())
	return row
}

// BeginTx начинает транзакцию, запросы внутри которой тоже измеряются
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &meteredTx{tx: tx, db: d}, nil
}

func (d *DB) observe(query string, start time.Time, err error) {
	if d.metrics == nil {
		return
	}
	status := "ok"
	if err != nil && err != sql.ErrNoRows {
		status = "error"
	}
	d.metrics.DBQueryDuration.WithLabelValues(operationOf(query), status).Observe(time.Since(start).Seconds())
}

func (d *DB) collectStats(stopCh <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.metrics.DBOpenConnections.Set(float64(stats.OpenConnections))
			d.metrics.DBInUse.Set(float64(stats.InUse))
			d.metrics.DBIdle.Set(float64(stats.Idle))
			d.metrics.DBWaitCount.Set(float64(stats.WaitCount))
		}
	}
}

type meteredTx struct {
	tx *sql.Tx
	db *DB
}

func (t *meteredTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.db.observe(query, start, err)
	return res, err
}

func (t *meteredTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.db.observe(query, start, err)
	return rows, err
}

func (t *meteredTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.db.observe(query, start, row.Err())
	return row
}

func (t *meteredTx) Commit() error {
	return t.tx.Commit()
}

func (t *meteredTx) Rollback() error {
	return t.tx.Rollback()
}

// operationOf первое ключевое слово запроса: select, insert, update, delete
func operationOf(query string) string {
	q := strings.TrimSpace(query)
	if i := strings.IndexAny(q, " \n\t"); i > 0 {
		q = q[:i]
	}
	return strings.ToLower(q)
}
