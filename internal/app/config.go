package app

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	server "github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http"
	"github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http/middlewares"
	astroApi "github.com/sitandoucara/astro-app-sub001/internal/adapters/secondary/astroApi"
	"github.com/sitandoucara/astro-app-sub001/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/sitandoucara/astro-app-sub001/internal/adapters/secondary/storage/redis"
	"github.com/sitandoucara/astro-app-sub001/internal/adapters/secondary/supabase"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/logger"
)

type Config struct {
	Log       *logger.Config              `envconfig:"LOG"`
	Server    *server.Config              `envconfig:"APISERVER"`
	AstroAPI  *astroApi.Config            `envconfig:"ASTRO_API"`
	Supabase  *supabase.Config            `envconfig:"SUPABASE"`
	Postgres  *pg.Config                  `envconfig:"POSTGRES"`
	Redis     *redisAdapter.Config        `envconfig:"REDIS"`
	Chart     ChartConfig                 `envconfig:"CHART"`
	RateLimit middlewares.RateLimitConfig `envconfig:"RATE_LIMIT"`
	Metrics   MetricsConfig               `envconfig:"METRICS"`
}

// ChartConfig режим развёртывания эндпоинта генерации карты
type ChartConfig struct {
	RequireAuth bool `envconfig:"REQUIRE_AUTH" default:"false"`
}

type MetricsConfig struct {
	Namespace string `envconfig:"NAMESPACE" default:"astro_app"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate ошибки конфигурации фатальны на старте, а не на первом запросе
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.AstroAPI.Validate(); err != nil {
		return fmt.Errorf("astro api: %w", err)
	}
	if err := c.Postgres.Validate(); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}

	needsSessions := c.Chart.RequireAuth || c.AstroAPI.RequiresSession() || c.Postgres.Enabled
	if needsSessions && !c.Supabase.CanVerify() {
		return fmt.Errorf("supabase: jwt secret or url with anon key is required when sessions are used")
	}

	return nil
}
