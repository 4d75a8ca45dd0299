// Package metrics prometheus-метрики пайплайна генерации карт.
// Все методы Collector безопасны для nil-получателя, чтобы метрики можно было не подключать.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess         = "success"
	OutcomeIncomplete      = "incomplete_profile"
	OutcomeInvalid         = "invalid_profile"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeDownstream      = "downstream_error"
)

type Collector struct {
	registry *prometheus.Registry

	chartRequests      *prometheus.CounterVec
	providerLatency    *prometheus.HistogramVec
	timezoneResolution *prometheus.CounterVec
	rateLimited        *prometheus.CounterVec
}

func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "astro_app"
	}

	c := &Collector{registry: prometheus.NewRegistry()}

	c.chartRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "chart",
			Name:      "requests_total",
			Help:      "Chart generation requests by outcome",
		},
		[]string{"outcome"},
	)

	c.providerLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "provider",
			Name:      "request_duration_seconds",
			Help:      "Latency of calls to the planetary-position provider",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"status"},
	)

	c.timezoneResolution = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "timezone",
			Name:      "resolutions_total",
			Help:      "Timezone resolutions, result=hit|fallback",
		},
		[]string{"result"},
	)

	c.rateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		},
		[]string{"path"},
	)

	c.registry.MustRegister(
		c.chartRequests,
		c.providerLatency,
		c.timezoneResolution,
		c.rateLimited,
		collectors.NewGoCollector(),
	)

	return c
}

func (c *Collector) ChartOutcome(outcome string) {
	if c == nil {
		return
	}
	c.chartRequests.WithLabelValues(outcome).Inc()
}

// ProviderCall status - "ok", "error" или "timeout"
func (c *Collector) ProviderCall(status string, d time.Duration) {
	if c == nil {
		return
	}
	c.providerLatency.WithLabelValues(status).Observe(d.Seconds())
}

func (c *Collector) TimezoneResolved(fallback bool) {
	if c == nil {
		return
	}
	result := "hit"
	if fallback {
		result = "fallback"
	}
	c.timezoneResolution.WithLabelValues(result).Inc()
}

func (c *Collector) RateLimited(path string) {
	if c == nil {
		return
	}
	c.rateLimited.WithLabelValues(path).Inc()
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
