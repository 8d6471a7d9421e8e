package update_booking

import "errors"

var (
	// ErrSlotBusy возвращается, когда новая дата дольше допустимого занята параллельным запросом
	ErrSlotBusy = errors.New("update_booking: slot is being booked by another request, retry later")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
