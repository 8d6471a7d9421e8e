package transition_booking

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_booking: internal error")
)
