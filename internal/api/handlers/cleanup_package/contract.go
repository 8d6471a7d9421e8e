package cleanup_package

import (
	"context"
)

type CleanupPackageUseCase interface {
	Execute(ctx context.Context, packageID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
