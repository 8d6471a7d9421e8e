package remove_blackout

import (
	"context"
)

type BlackoutService interface {
	Remove(ctx context.Context, actorID, packageID, blackoutID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
