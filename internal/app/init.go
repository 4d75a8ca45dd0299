package app

import (
	"context"
	"fmt"
	"net/http"

	server "github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http"
	chartController "github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http/controllers/chart"
	healthcheckController "github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http/controllers/healthcheck"
	metricsController "github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http/controllers/metrics"
	planetsController "github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http/controllers/planets"
	profileController "github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http/controllers/profile"
	timezoneController "github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http/controllers/timezone"
	"github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http/middlewares"
	astroApiAdapter "github.com/sitandoucara/astro-app-sub001/internal/adapters/secondary/astroApi"
	"github.com/sitandoucara/astro-app-sub001/internal/adapters/secondary/storage/inmemory"
	"github.com/sitandoucara/astro-app-sub001/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/sitandoucara/astro-app-sub001/internal/adapters/secondary/storage/redis"
	"github.com/sitandoucara/astro-app-sub001/internal/adapters/secondary/supabase"
	"github.com/sitandoucara/astro-app-sub001/internal/adapters/secondary/tzlookup"
	"github.com/sitandoucara/astro-app-sub001/internal/domain"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/metrics"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/cache"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/repository"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/service"
	profileRepo "github.com/sitandoucara/astro-app-sub001/internal/repository/profile"
	astroApiService "github.com/sitandoucara/astro-app-sub001/internal/services/astroApi"
	"github.com/sitandoucara/astro-app-sub001/internal/services/timezone"
	chartUsecase "github.com/sitandoucara/astro-app-sub001/internal/usecases/chart"
	profileUsecase "github.com/sitandoucara/astro-app-sub001/internal/usecases/profile"
)

type Dependencies struct {
	DB         *pg.DB // nil, если хранилище профилей выключено
	Counter    cache.Counter
	HTTPServer *http.Server
}

// initDependencies собирает граф зависимостей приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	collector := metrics.NewCollector(a.Cfg.Metrics.Namespace)
	deps := &Dependencies{}

	var profiles repository.IProfileRepo
	if a.Cfg.Postgres.Enabled {
		db, err := a.initPostgres(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to init postgres: %w", err)
		}
		deps.DB = pg.NewDB(db)
		profiles = profileRepo.New(deps.DB, a.Log)
	}

	counter, err := a.initCounter()
	if err != nil {
		deps.close(a)
		return nil, err
	}
	deps.Counter = counter

	resolver := timezone.New(tzlookup.New(), collector, a.Log)

	astroAPIClient := astroApiAdapter.NewClient(a.Cfg.AstroAPI, collector, a.Log)
	astroAPI := astroApiService.New(astroAPIClient, domain.ChartSettings{
		ObservationPoint: a.Cfg.AstroAPI.ObservationPoint,
		Ayanamsha:        a.Cfg.AstroAPI.Ayanamsha,
	}, a.Log)

	requireAuth := a.Cfg.Chart.RequireAuth || a.Cfg.AstroAPI.RequiresSession()
	charts := chartUsecase.New(astroAPI, profiles, requireAuth, collector, a.Log)

	guards := middlewares.Guards{
		Auth:      middlewares.Auth(a.initSessionVerifier(), a.Log),
		RateLimit: middlewares.RateLimit(counter, a.Cfg.RateLimit, collector, a.Log),
	}

	readiness := map[string]healthcheckController.Pinger{}
	if deps.DB != nil {
		readiness["postgres"] = deps.DB
	}
	if a.Cfg.Redis.Enabled {
		readiness["redis"] = counter
	}

	controllers := []server.Controller{
		healthcheckController.New(readiness, a.Log),
		metricsController.New(collector),
		timezoneController.New(resolver, a.Log),
		chartController.New(charts, profiles != nil, guards, a.Log),
		planetsController.New(astroAPI, guards, a.Log),
	}
	if profiles != nil {
		controllers = append(controllers, profileController.New(profileUsecase.New(profiles, resolver, a.Log), guards, a.Log))
	}

	deps.HTTPServer = server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)

	return deps, nil
}

// initCounter Redis, если включён, иначе счётчик в памяти процесса
func (a *App) initCounter() (cache.Counter, error) {
	if !a.Cfg.Redis.Enabled {
		return inmemory.NewCounter(), nil
	}

	client, err := a.Cfg.Redis.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}
	a.Log.Info("redis connected successfully")

	return redisAdapter.NewCounter(client, a.Cfg.Redis.KeyPrefix), nil
}

func (a *App) initSessionVerifier() service.ISessionVerifier {
	if !a.Cfg.Supabase.CanVerify() {
		a.Log.Warn("supabase is not configured, all requests are anonymous")
		return nil
	}
	return supabase.NewVerifier(a.Cfg.Supabase, a.Log)
}

func (d *Dependencies) close(a *App) {
	if d.Counter != nil {
		if err := d.Counter.Close(); err != nil {
			a.Log.Error("failed to close counter", "error", err)
		}
	}
	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			a.Log.Error("failed to close database", "error", err)
		}
	}
}
