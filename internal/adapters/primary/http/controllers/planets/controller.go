package planetsController

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http/controllers/httperr"
	"github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http/middlewares"
	"github.com/sitandoucara/astro-app-sub001/internal/domain"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/logger"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/service"
)

const failureMessage = "Failed to get planet positions"

// Controller серверный шлюз к провайдеру: тело клиента уходит провайдеру без изменений
type Controller struct {
	AstroAPI service.IAstroAPIService
	guards   middlewares.Guards
	Log      *slog.Logger
}

func New(astroAPI service.IAstroAPIService, guards middlewares.Guards, log *slog.Logger) *Controller {
	return &Controller{
		AstroAPI: astroAPI,
		guards:   guards,
		Log:      log,
	}
}

func corsConfig() cors.Config {
	return cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{http.MethodPost, http.MethodOptions},
		AllowHeaders:              []string{"Content-Type", "Authorization"},
		OptionsResponseStatusCode: http.StatusOK,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/planets", cors.New(corsConfig()))
	{
		group.POST("", c.guards.Wrap(c.handlePlanets)...)
		// preflight без Origin до cors middleware не доходит как CORS-запрос
		group.OPTIONS("", c.handlePreflight)
	}
}

func (c *Controller) handlePreflight(ctx *gin.Context) {
	ctx.Status(http.StatusOK)
}

func (c *Controller) handlePlanets(ctx *gin.Context) {
	log := logger.FromContext(ctx.Request.Context(), c.Log)

	body, err := ctx.GetRawData()
	if err != nil || !json.Valid(body) {
		log.Warn("invalid planets payload", "error", err)
		httperr.AbortWith(ctx, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	var token string
	if session := middlewares.SessionFrom(ctx); session != nil {
		token = session.Token
	}

	result, err := c.AstroAPI.FetchPlanetPositions(ctx.Request.Context(), body, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			httperr.Abort(ctx, err)
			return
		}
		log.Warn("planet positions request failed", "error", err)
		httperr.AbortWith(ctx, http.StatusInternalServerError, failureMessage)
		return
	}

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", result.Raw)
}
