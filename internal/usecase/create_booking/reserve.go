package create_booking

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
)

// ReasonDuplicate у клиента уже есть активное бронирование на эту дату
const ReasonDuplicate = "client already has an active booking on this date"

// DuplicateChecker проверка активного бронирования клиента на дату
type DuplicateChecker interface {
	ExistsActiveForClientOnDate(ctx context.Context, clientID int64, date time.Time, excludeID int64) (bool, error)
}

// ReserveDate проверяет дату пакета и занимает слот. Вызывается внутри транзакции.
// excludeID исключает само бронирование при переносе даты.
func ReserveDate(
	ctx context.Context,
	availability AvailabilityChecker,
	bookings DuplicateChecker,
	slots SlotReserver,
	pkg *domain.Package,
	clientID int64,
	date time.Time,
	excludeID int64,
) error {
	verdict, err := availability.CheckPackageDate(ctx, pkg, date)
	if err != nil {
		return fmt.Errorf("%w: failed to check availability: %w", ErrInternal, err)
	}
	if rejection := verdict.Rejection(); rejection != nil {
		return rejection
	}

	duplicate, err := bookings.ExistsActiveForClientOnDate(ctx, clientID, date, excludeID)
	if err != nil {
		return fmt.Errorf("%w: failed to check duplicate booking: %w", ErrInternal, err)
	}
	if duplicate {
		return domain.Reject(domain.ErrDuplicateBooking, ReasonDuplicate)
	}

	if err := slots.ReserveSlot(ctx, pkg.ID, date); err != nil {
		if domain.IsExpected(err) {
			return err
		}
		return fmt.Errorf("%w: failed to reserve slot: %w", ErrInternal, err)
	}

	return nil
}
