package middlewares

import (
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http/controllers/httperr"
	"github.com/sitandoucara/astro-app-sub001/internal/domain"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/logger"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/metrics"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/cache"
)

type RateLimitConfig struct {
	Enabled  bool          `envconfig:"ENABLED" default:"true"`
	Requests int64         `envconfig:"REQUESTS" default:"30"`
	Window   time.Duration `envconfig:"WINDOW" default:"1m"`
}

// RateLimit фиксированное окно на клиента (пользователь сессии или IP) и маршрут.
// Ошибка счётчика пропускает запрос.
func RateLimit(counter cache.Counter, cfg RateLimitConfig, collector *metrics.Collector, log *slog.Logger) gin.HandlerFunc {
	if !cfg.Enabled || counter == nil || cfg.Requests <= 0 || cfg.Window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	retryAfter := strconv.Itoa(int(math.Ceil(cfg.Window.Seconds())))

	return func(c *gin.Context) {
		key := c.FullPath() + "|" + clientKey(c)

		n, err := counter.Incr(c.Request.Context(), key, cfg.Window)
		if err != nil {
			logger.FromContext(c.Request.Context(), log).Warn("rate limit counter failed, letting request through", "error", err)
			c.Next()
			return
		}

		if n > cfg.Requests {
			collector.RateLimited(c.FullPath())
			c.Header("Retry-After", retryAfter)
			httperr.Abort(c, domain.ErrRateLimited)
			return
		}

		c.Next()
	}
}

func clientKey(c *gin.Context) string {
	if session := SessionFrom(c); session != nil && session.UserID != "" {
		return "user:" + session.UserID
	}
	return "ip:" + c.ClientIP()
}

// Guards цепочка для платных маршрутов: сначала сессия, потом лимит
type Guards struct {
	Auth      gin.HandlerFunc
	RateLimit gin.HandlerFunc
}

// Wrap добавляет guards перед обработчиком
func (g Guards) Wrap(handler gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, 3)
	if g.Auth != nil {
		chain = append(chain, g.Auth)
	}
	if g.RateLimit != nil {
		chain = append(chain, g.RateLimit)
	}
	return append(chain, handler)
}

// WithAuth только проверка сессии, без лимита
func (g Guards) WithAuth(handler gin.HandlerFunc) []gin.HandlerFunc {
	if g.Auth == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{g.Auth, handler}
}
