package lock

import "errors"

var (
	// ErrLockTimeout возвращается, если блокировку не удалось взять за отведенное время
	ErrLockTimeout = errors.New("lock: timed out waiting for slot lock")

	// ErrLockBackend возвращается при ошибке Redis
	ErrLockBackend = errors.New("lock: redis error")
)
