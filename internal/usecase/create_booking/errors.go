package create_booking

import "errors"

var (
	// ErrSlotBusy возвращается, когда слот дольше допустимого занят параллельным запросом
	ErrSlotBusy = errors.New("create_booking: slot is being booked by another request, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
