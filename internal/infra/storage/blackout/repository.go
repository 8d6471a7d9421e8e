package blackout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/psqlbuilder"
)

const table = "package_blackouts"

// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const uniqueViolation = "23505"

// Repository репозиторий закрытых дат пакетов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория закрытых дат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create закрывает дату пакета
func (r *Repository) Create(ctx context.Context, blackout *domain.Blackout) (*domain.Blackout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blackout.Date = domain.DateOnly(blackout.Date)

	query, args, err := psqlbuilder.Insert(table).
		Columns("package_id", "blackout_date", "reason").
		Values(blackout.PackageID, blackout.Date, blackout.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&blackout.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateBlackout
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	blackout.CreatedAt = createdAt.Time

	return blackout, nil
}

// GetByID получает закрытую дату по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Blackout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := blackoutSelect().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	blackout, err := scanBlackout(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlackoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan blackout: %w", ErrScanRow, err)
	}

	return blackout, nil
}

// GetByPackageAndDate получает закрытую дату пакета
func (r *Repository) GetByPackageAndDate(ctx context.Context, packageID int64, date time.Time) (*domain.Blackout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := blackoutSelect().
		Where(squirrel.Eq{"package_id": packageID}).
		Where(squirrel.Eq{"blackout_date": domain.DateOnly(date)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPackageAndDate - build select query: %v", ErrBuildQuery, err)
	}

	blackout, err := scanBlackout(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlackoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPackageAndDate - scan blackout: %w", ErrScanRow, err)
	}

	return blackout, nil
}

// GetByPackageInRange получает закрытые даты пакета в диапазоне [start, end]
func (r *Repository) GetByPackageInRange(ctx context.Context, packageID int64, start, end time.Time) ([]*domain.Blackout, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := blackoutSelect().
		Where(squirrel.Eq{"package_id": packageID}).
		Where(squirrel.GtOrEq{"blackout_date": domain.DateOnly(start)}).
		Where(squirrel.LtOrEq{"blackout_date": domain.DateOnly(end)}).
		OrderBy("blackout_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPackageInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPackageInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	blackouts := make([]*domain.Blackout, 0)
	for rows.Next() {
		blackout, err := scanBlackout(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByPackageInRange - scan row: %w", ErrScanRow, err)
		}
		blackouts = append(blackouts, blackout)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPackageInRange - rows error: %w", ErrScanRow, err)
	}

	return blackouts, nil
}

// Delete удаляет закрытую дату. Отсутствие записи не является ошибкой,
// возвращаемый флаг показывает, была ли запись удалена.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// DeleteByPackage удаляет все закрытые даты пакета
func (r *Repository) DeleteByPackage(ctx context.Context, packageID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"package_id": packageID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByPackage - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByPackage - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

func blackoutSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"package_id",
		"blackout_date",
		"reason",
		"created_at",
	).From(table)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBlackout(row rowScanner) (*domain.Blackout, error) {
	var blackout domain.Blackout
	var createdAt sql.NullTime

	if err := row.Scan(
		&blackout.ID,
		&blackout.PackageID,
		&blackout.Date,
		&blackout.Reason,
		&createdAt,
	); err != nil {
		return nil, err
	}

	blackout.Date = domain.DateOnly(blackout.Date)
	blackout.CreatedAt = createdAt.Time

	return &blackout, nil
}
