package timezoneController

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitandoucara/astro-app-sub001/internal/adapters/primary/http/controllers/httperr"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/logger"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/validator"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/service"
)

type Controller struct {
	Resolver service.ITimezoneResolver
	Log      *slog.Logger
}

func New(resolver service.ITimezoneResolver, log *slog.Logger) *Controller {
	return &Controller{
		Resolver: resolver,
		Log:      log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/timezone", c.handleTimezone)
}

// handleTimezone GET /api/timezone?lat=..&lon=.. -> {timezone, name}
func (c *Controller) handleTimezone(ctx *gin.Context) {
	coord, err := validator.ValidateCoordinate(ctx.Query("lat"), ctx.Query("lon"))
	if err != nil {
		logger.FromContext(ctx.Request.Context(), c.Log).Debug("coordinate rejected", "error", err)
		httperr.Abort(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, c.Resolver.Resolve(coord))
}
