package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sitandoucara/astro-app-sub001/internal/ports/cache"
)

// INCR и выставление TTL одной атомарной операцией.
// TTL ставится, если у ключа его нет (PTTL < 0), поэтому ключ без срока жизни не остаётся.
var incrWindowScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if redis.call('PTTL', KEYS[1]) < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// Counter счётчик фиксированного окна.
// Общий для всех инстансов сервиса.
type Counter struct {
	client *redis.Client
	prefix string
}

func NewCounter(client *redis.Client, prefix string) cache.Counter {
	return &Counter{
		client: client,
		prefix: prefix,
	}
}

// Incr увеличивает счётчик окна и возвращает новое значение
func (c *Counter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := c.prefix + key

	n, err := incrWindowScript.Run(ctx, c.client, []string{fullKey}, window.Milliseconds()).Int64()
	if err != nil {
		return 0, fmt.Errorf("redis incr failed: %w", err)
	}

	return n, nil
}

func (c *Counter) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close закрывает подключение
func (c *Counter) Close() error {
	return c.client.Close()
}
