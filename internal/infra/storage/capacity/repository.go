package capacity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PlannerBookingService/pkg/psqlbuilder"
)

const (
	defaultsTable  = "package_default_availability"
	overridesTable = "package_date_overrides"
)

// Repository репозиторий емкости пакетов: значение по умолчанию и записи на даты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория емкости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDefault получает емкость пакета по умолчанию
func (r *Repository) GetDefault(ctx context.Context, packageID int64) (*domain.DefaultAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"package_id",
		"total_slots",
		"created_at",
		"updated_at",
	).
		From(defaultsTable).
		Where(squirrel.Eq{"package_id": packageID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDefault - build select query: %v", ErrBuildQuery, err)
	}

	var def domain.DefaultAvailability
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&def.PackageID,
		&def.TotalSlots,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDefaultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDefault - scan default: %w", ErrScanRow, err)
	}

	def.CreatedAt = createdAt.Time
	def.UpdatedAt = updatedAt.Time

	return &def, nil
}

// UpsertDefault создает или обновляет емкость пакета по умолчанию
func (r *Repository) UpsertDefault(ctx context.Context, packageID int64, totalSlots int) (*domain.DefaultAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(defaultsTable).
		Columns("package_id", "total_slots").
		Values(packageID, totalSlots).
		Suffix("ON CONFLICT (package_id) DO UPDATE SET total_slots = EXCLUDED.total_slots, updated_at = NOW() " +
			"RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertDefault - build insert query: %v", ErrBuildQuery, err)
	}

	def := domain.DefaultAvailability{PackageID: packageID, TotalSlots: totalSlots}
	var createdAt, updatedAt sql.NullTime

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertDefault - execute insert: %w", ErrExecQuery, err)
	}

	def.CreatedAt = createdAt.Time
	def.UpdatedAt = updatedAt.Time

	return &def, nil
}

// GetOverride получает запись емкости на конкретную дату
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetOverride(ctx context.Context, packageID int64, date time.Time) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := overrideSelect().
		Where(squirrel.Eq{"package_id": packageID}).
		Where(squirrel.Eq{"override_date": domain.DateOnly(date)})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - build select query: %v", ErrBuildQuery, err)
	}

	override, err := scanOverride(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverride - scan override: %w", ErrScanRow, err)
	}

	return override, nil
}

// GetOverridesInRange получает записи емкости в диапазоне дат [start, end]
func (r *Repository) GetOverridesInRange(ctx context.Context, packageID int64, start, end time.Time) ([]*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := overrideSelect().
		Where(squirrel.Eq{"package_id": packageID}).
		Where(squirrel.GtOrEq{"override_date": domain.DateOnly(start)}).
		Where(squirrel.LtOrEq{"override_date": domain.DateOnly(end)}).
		OrderBy("override_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverridesInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.DateOverride, 0)
	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetOverridesInRange - scan row: %w", ErrScanRow, err)
		}
		overrides = append(overrides, override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOverridesInRange - rows error: %w", ErrScanRow, err)
	}

	return overrides, nil
}

// UpsertOverrideTotal задает емкость на дату.
// Существующая запись обновляется только если новая емкость не меньше занятых слотов,
// иначе возвращается ErrTotalBelowBooked.
func (r *Repository) UpsertOverrideTotal(ctx context.Context, packageID int64, date time.Time, totalSlots int) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	day := domain.DateOnly(date)

	query, args, err := psqlbuilder.Insert(overridesTable).
		Columns("package_id", "override_date", "total_slots", "booked_slots").
		Values(packageID, day, totalSlots, 0).
		Suffix("ON CONFLICT (package_id, override_date) DO UPDATE " +
			"SET total_slots = EXCLUDED.total_slots, updated_at = NOW() " +
			"WHERE " + overridesTable + ".booked_slots <= EXCLUDED.total_slots " +
			"RETURNING booked_slots, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverrideTotal - build insert query: %v", ErrBuildQuery, err)
	}

	override := domain.DateOverride{PackageID: packageID, Date: day, TotalSlots: totalSlots}
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(&override.BookedSlots, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// строка есть, но WHERE конфликта не выполнился
		return nil, ErrTotalBelowBooked
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverrideTotal - execute insert: %w", ErrExecQuery, err)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}

// EnsureOverride материализует запись на дату с емкостью totalSlots, если её ещё нет
func (r *Repository) EnsureOverride(ctx context.Context, packageID int64, date time.Time, totalSlots int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(overridesTable).
		Columns("package_id", "override_date", "total_slots", "booked_slots").
		Values(packageID, domain.DateOnly(date), totalSlots, 0).
		Suffix("ON CONFLICT (package_id, override_date) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: EnsureOverride - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: EnsureOverride - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// IncrementBooked атомарно занимает слот: booked_slots + 1 при booked_slots < total_slots
func (r *Repository) IncrementBooked(ctx context.Context, packageID int64, date time.Time) error {
	affected, err := r.shiftBooked(ctx, packageID, date, "booked_slots + 1", "booked_slots < total_slots")
	if err != nil {
		return fmt.Errorf("%w: IncrementBooked - %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrCapacityExceeded
	}
	return nil
}

// DecrementBooked атомарно освобождает слот: booked_slots - 1 при booked_slots > 0
func (r *Repository) DecrementBooked(ctx context.Context, packageID int64, date time.Time) error {
	affected, err := r.shiftBooked(ctx, packageID, date, "booked_slots - 1", "booked_slots > 0")
	if err != nil {
		return fmt.Errorf("%w: DecrementBooked - %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrNothingToRelease
	}
	return nil
}

func (r *Repository) shiftBooked(ctx context.Context, packageID int64, date time.Time, expr, guard string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(overridesTable).
		Set("booked_slots", squirrel.Expr(expr)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"package_id": packageID}).
		Where(squirrel.Eq{"override_date": domain.DateOnly(date)}).
		Where(guard).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("build update query: %w", err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("execute update: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	return affected, nil
}

// DeleteByPackage удаляет все записи емкости пакета (по умолчанию и на даты)
func (r *Repository) DeleteByPackage(ctx context.Context, packageID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, table := range []string{overridesTable, defaultsTable} {
		query, args, err := psqlbuilder.Delete(table).
			Where(squirrel.Eq{"package_id": packageID}).
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: DeleteByPackage - build delete query: %v", ErrBuildQuery, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: DeleteByPackage - delete from %s: %w", ErrExecQuery, table, err)
		}
	}

	return nil
}

func overrideSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"package_id",
		"override_date",
		"total_slots",
		"booked_slots",
		"created_at",
		"updated_at",
	).From(overridesTable)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOverride(row rowScanner) (*domain.DateOverride, error) {
	var override domain.DateOverride
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&override.PackageID,
		&override.Date,
		&override.TotalSlots,
		&override.BookedSlots,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	override.Date = domain.DateOnly(override.Date)
	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time

	return &override, nil
}
