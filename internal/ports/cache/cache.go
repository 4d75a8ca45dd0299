package cache

import (
	"context"
	"time"
)

// Counter счётчик с фиксированным окном, используется rate limiter'ом.
// Incr возвращает значение после инкремента; окно стартует с первого инкремента.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}
