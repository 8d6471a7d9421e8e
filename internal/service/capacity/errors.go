package capacity

import "errors"

var (
	// ErrNothingToRelease возвращается при освобождении слота, когда занятых нет.
	// Вызывающий код считает это нефатальным.
	ErrNothingToRelease = errors.New("capacity.service: nothing to release")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("capacity.service: internal error")
)
