package eventbus

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к брокеру
	ErrConnect = errors.New("eventbus: failed to connect to broker")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("eventbus: failed to publish event")
)
