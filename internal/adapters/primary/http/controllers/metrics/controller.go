package metricsController

import (
	"github.com/gin-gonic/gin"

	"github.com/sitandoucara/astro-app-sub001/internal/pkg/metrics"
)

type Controller struct {
	collector *metrics.Collector
}

func New(collector *metrics.Collector) *Controller {
	return &Controller{collector: collector}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(c.collector.Handler()))
}
