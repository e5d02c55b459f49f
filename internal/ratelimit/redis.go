// Package ratelimit ограничивает частоту нажатий кнопок одним пользователем
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrLimitExceeded = errors.New("rate limit exceeded")

// RedisLimiter окно фиксированной длины со счётчиком в Redis
type RedisLimiter struct {
	redis       redis.Cmdable
	window      time.Duration
	maxRequests int64
	now         func() time.Time
}

// NewRedisLimiter создаёт лимитер: не больше maxRequests за window
func NewRedisLimiter(client redis.Cmdable, window time.Duration, maxRequests int) *RedisLimiter {
	if window < time.Millisecond {
		window = time.Second
	}
	return &RedisLimiter{
		redis:       client,
		window:      window,
		maxRequests: int64(maxRequests),
		now:         time.Now,
	}
}

// Allow учитывает запрос пользователя. ErrLimitExceeded если окно переполнено
func (l *RedisLimiter) Allow(ctx context.Context, telegramID int64) error {
	key := l.key(telegramID)

	pipe := l.redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rate limit pipeline: %w", err)
	}

	if count := incr.Val(); count > l.maxRequests {
		return fmt.Errorf("%w: %d requests in %v", ErrLimitExceeded, count, l.window)
	}
	return nil
}

func (l *RedisLimiter) key(telegramID int64) string {
	bucket := l.now().UnixMilli() / l.window.Milliseconds()
	return fmt.Sprintf("bus_booking:rate_limit:%d:%d", telegramID, bucket)
}

// Connect подключается к Redis и проверяет соединение
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}

	return client, nil
}
