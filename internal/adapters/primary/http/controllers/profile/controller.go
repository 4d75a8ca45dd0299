package profileController

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
	ProfileService service.IProfileService
	guards         middlewares.Guards
	Log            *slog.Logger
}

func New(profileService service.IProfileService, guards middlewares.Guards, log *slog.Logger) *Controller {
	return &Controller{
		ProfileService: profileService,
		guards:         guards,
		Log:            log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/profile", c.guards.WithAuth(c.handleGet)...)
	router.PUT("/api/profile", c.guards.WithAuth(c.handleSave)...)
	router.DELETE("/api/profile", c.guards.WithAuth(c.handleDelete)...)
}

func (c *Controller) handleGet(ctx *gin.Context) {
	profile, err := c.ProfileService.Get(ctx.Request.Context(), middlewares.SessionFrom(ctx))
	if err != nil {
		httperr.Abort(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

func (c *Controller) handleSave(ctx *gin.Context) {
	var in domain.BirthProfile

	if err := ctx.ShouldBindJSON(&in); err != nil {
		logger.FromContext(ctx.Request.Context(), c.Log).Warn("failed to bind profile", "error", err)
		httperr.AbortWith(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	profile, err := c.ProfileService.Save(ctx.Request.Context(), middlewares.SessionFrom(ctx), in)
	if err != nil {
		httperr.Abort(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

func (c *Controller) handleDelete(ctx *gin.Context) {
	if err := c.ProfileService.Delete(ctx.Request.Context(), middlewares.SessionFrom(ctx)); err != nil {
		httperr.Abort(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
