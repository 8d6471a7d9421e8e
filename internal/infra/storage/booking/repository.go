package booking

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
	"github.com/m04kA/SMC-PlannerBookingService/pkg/types"
)

const table = "bookings"

// uniqueViolation срабатывает на частичном индексе (client_id, wedding_date) WHERE status <> 'cancelled'
const uniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"package_id",
	"client_id",
	"wedding_date",
	"wedding_time",
	"location",
	"notes",
	"status",
	"status_note",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Нарушение уникальности (клиент, дата) возвращает ErrDuplicateBooking.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	booking.WeddingDate = domain.DateOnly(booking.WeddingDate)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"package_id",
			"client_id",
			"wedding_date",
			"wedding_time",
			"location",
			"notes",
			"status",
		).
		Values(
			booking.PackageID,
			booking.ClientID,
			booking.WeddingDate,
			booking.WeddingTime,
			booking.Location,
			booking.Notes,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateBooking
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает бронирование по ID и блокирует строку до конца транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByClientID получает список бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(table).
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("wedding_date DESC", "id DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByPackageWithFilter получает бронирования пакета с фильтрацией по периоду и статусу
// Без статуса и IncludeCancelled отмененные бронирования исключаются.
func (r *Repository) GetByPackageWithFilter(ctx context.Context, filter domain.PackageBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(table).
		Where(squirrel.Eq{"package_id": filter.PackageID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"wedding_date": domain.DateOnly(*filter.StartDate)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"wedding_date": domain.DateOnly(*filter.EndDate)})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	selectBuilder = selectBuilder.OrderBy("wedding_date ASC", "id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPackageWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPackageWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetConfirmedDates возвращает даты подтвержденных бронирований пакета в диапазоне [from, to]
// Используется для расчета подготовительного периода
func (r *Repository) GetConfirmedDates(ctx context.Context, packageID int64, from, to time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("wedding_date").
		From(table).
		Where(squirrel.Eq{"package_id": packageID}).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.GtOrEq{"wedding_date": domain.DateOnly(from)}).
		Where(squirrel.LtOrEq{"wedding_date": domain.DateOnly(to)}).
		OrderBy("wedding_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedDates - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: GetConfirmedDates - scan wedding_date: %w", ErrScanRow, err)
		}
		dates = append(dates, domain.DateOnly(d))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedDates - rows error: %w", ErrScanRow, err)
	}

	return dates, nil
}

// ExistsActiveForClientOnDate проверяет, есть ли у клиента неотмененное бронирование на дату
// в любом пакете. excludeID позволяет исключить редактируемое бронирование (0 - не исключать).
func (r *Repository) ExistsActiveForClientOnDate(ctx context.Context, clientID int64, date time.Time, excludeID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From(table).
		Where(squirrel.Eq{"client_id": clientID}).
		Where(squirrel.Eq{"wedding_date": domain.DateOnly(date)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled})

	if excludeID != 0 {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeID})
	}

	query, args, err := selectBuilder.Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveForClientOnDate - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveForClientOnDate - scan id: %w", ErrScanRow, err)
	}

	return true, nil
}

// UpdateStatus обновляет статус бронирования и заметку к переходу
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, note *string) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("status_note", note).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdateStatus", query, args)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string, cancelledAt time.Time) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "Cancel", query, args)
}

// UpdateDetails обновляет дату, время, место и заметки бронирования
func (r *Repository) UpdateDetails(ctx context.Context, booking *domain.Booking) error {
	booking.WeddingDate = domain.DateOnly(booking.WeddingDate)

	query, args, err := psqlbuilder.Update(table).
		Set("wedding_date", booking.WeddingDate).
		Set("wedding_time", booking.WeddingTime).
		Set("location", booking.Location).
		Set("notes", booking.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDetails - build update query: %v", ErrBuildQuery, err)
	}

	err = r.execAffectingOne(ctx, "UpdateDetails", query, args)
	if isUniqueViolation(err) {
		return ErrDuplicateBooking
	}
	return err
}

// Delete удаляет бронирование (физическое удаление, только административная очистка)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "Delete", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, method, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var weddingTime sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.PackageID,
		&booking.ClientID,
		&booking.WeddingDate,
		&weddingTime,
		&booking.Location,
		&booking.Notes,
		&booking.Status,
		&booking.StatusNote,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if weddingTime.Valid {
		var ts types.TimeString
		if err := ts.Scan(weddingTime.String); err != nil {
			return nil, err
		}
		booking.WeddingTime = &ts
	}

	booking.WeddingDate = domain.DateOnly(booking.WeddingDate)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
