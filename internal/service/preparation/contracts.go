package preparation

import (
	"context"
	"time"
)

// BookingRepository источник дат подтвержденных бронирований
type BookingRepository interface {
	GetConfirmedDates(ctx context.Context, packageID int64, from, to time.Time) ([]time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Error(format string, v ...interface{})
}
