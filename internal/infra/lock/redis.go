// Package lock распределенная блокировка (пакет, дата) поверх Redis.
// Держится на время проверки и резервирования слота между репликами сервиса.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const retryInterval = 25 * time.Millisecond

// снимаем блокировку, только если она всё ещё наша
const unlockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// ReleaseFunc снимает блокировку
type ReleaseFunc func()

// SlotKey ключ блокировки слота пакета на дату
func SlotKey(packageID int64, date time.Time) string {
	return fmt.Sprintf("planner:slot-lock:%d:%s", packageID, date.Format("2006-01-02"))
}

// RedisLocker SET NX PX блокировка с освобождением через compare-and-delete
type RedisLocker struct {
	client RedisClient
	ttl    time.Duration
	wait   time.Duration
	log    Logger
}

// NewRedisLocker создает блокировку. ttl - время жизни ключа, wait - сколько ждать захвата.
func NewRedisLocker(client RedisClient, ttl, wait time.Duration, log Logger) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, wait: wait, log: log}
}

// NewRedisClient создает клиента Redis
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// Acquire ждет блокировку по ключу не дольше wait
func (l *RedisLocker) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: SetNX %s: %v", ErrLockBackend, key, err)
		}
		if ok {
			return l.releaser(key, token), nil
		}

		if time.Now().After(deadline) {
			l.log.Warn("lock: timed out waiting for %s", key)
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}

func (l *RedisLocker) releaser(key, token string) ReleaseFunc {
	return func() {
		// запрос мог быть уже отменен, снимаем блокировку в своем контексте
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		if err := l.client.Eval(ctx, unlockScript, []string{key}, token).Err(); err != nil {
			l.log.Error("lock: failed to release %s: %v", key, err)
		}
	}
}

// Noop блокировка для одной реплики: сериализацию обеспечивает база
type Noop struct{}

// Acquire всегда успешен
func (Noop) Acquire(context.Context, string) (ReleaseFunc, error) {
	return func() {}, nil
}
