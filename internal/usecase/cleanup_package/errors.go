package cleanup_package

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cleanup_package: internal error")
)
