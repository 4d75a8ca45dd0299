package chartController

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http/controllers/httperr"
	"github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http/middlewares"
	"github.com/sitandoucara/astro-app-sub001/internal/domain"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/logger"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/service"
)

type Controller struct {
	ChartService service.IChartService
	// StoredProfiles маршрут /api/chart/generate есть только при включённом хранилище профилей
	StoredProfiles bool
	guards         middlewares.Guards
	Log            *slog.Logger
}

func New(chartService service.IChartService, storedProfiles bool, guards middlewares.Guards, log *slog.Logger) *Controller {
	return &Controller{
		ChartService:   chartService,
		StoredProfiles: storedProfiles,
		guards:         guards,
		Log:            log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/chart")
	{
		group.POST("/generate-complete", c.guards.Wrap(c.handleGenerateComplete)...)
		if c.StoredProfiles {
			group.POST("/generate", c.guards.Wrap(c.handleGenerateStored)...)
		}
	}
}

// handleGenerateComplete карта по профилю из тела запроса, ответ провайдера отдаётся как есть
func (c *Controller) handleGenerateComplete(ctx *gin.Context) {
	var profile domain.BirthProfile

	if err := ctx.ShouldBindJSON(&profile); err != nil {
		logger.FromContext(ctx.Request.Context(), c.Log).Warn("failed to bind birth profile", "error", err)
		httperr.AbortWith(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := c.ChartService.GenerateChart(ctx.Request.Context(), profile, middlewares.SessionFrom(ctx))
	if err != nil {
		httperr.Abort(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", result.Raw)
}

// handleGenerateStored карта по сохранённому профилю пользователя сессии
func (c *Controller) handleGenerateStored(ctx *gin.Context) {
	result, err := c.ChartService.GenerateForUser(ctx.Request.Context(), middlewares.SessionFrom(ctx))
	if err != nil {
		if !domain.IsBusinessError(err) {
			logger.FromContext(ctx.Request.Context(), c.Log).Warn("stored profile chart failed", "error", err)
		}
		httperr.Abort(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", result.Raw)
}
