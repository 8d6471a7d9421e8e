package get_package_bookings

import (
	"context"

	"github.com/m04kA/SMC-PlannerBookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetPackageBookings(ctx context.Context, req *models.GetPackageBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
