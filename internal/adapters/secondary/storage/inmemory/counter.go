package inmemory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	ports "github.com/sitandoucara/astro-app-sub001/internal/ports/cache"
)

const cleanupInterval = time.Minute

// Counter in-memory счётчик фиксированного окна, живёт в пределах одного процесса
type Counter struct {
	items *cache.Cache
}

func NewCounter() ports.Counter {
	return &Counter{
		items: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

// Incr окно начинается с первого инкремента и не продлевается последующими
func (c *Counter) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	if err := c.items.Add(key, int64(1), window); err == nil {
		return 1, nil
	}

	n, err := c.items.IncrementInt64(key, 1)
	if err != nil {
		// ключ успел протухнуть между Add и Increment
		c.items.Set(key, int64(1), window)
		return 1, nil
	}
	return n, nil
}

func (c *Counter) Ping(context.Context) error {
	return nil
}

func (c *Counter) Close() error {
	c.items.Flush()
	return nil
}
