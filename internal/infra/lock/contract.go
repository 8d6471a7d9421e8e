package lock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient часть *redis.Client, которая нужна блокировке
type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
