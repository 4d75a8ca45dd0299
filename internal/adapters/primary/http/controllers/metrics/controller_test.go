package metricsController

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/sitandoucara/astro-app-sub001/internal/pkg/metrics"
)

func TestMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	collector := metrics.NewCollector("astro_app")
	collector.ChartOutcome(metrics.OutcomeSuccess)
	collector.TimezoneResolved(true)

	router := gin.New()
	New(collector).RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "astro_app_chart_requests_total")
	assert.Contains(t, w.Body.String(), `result="fallback"`)
}
