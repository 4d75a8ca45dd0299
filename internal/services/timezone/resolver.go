package timezone

import (
	"log/slog"
	"time"
	_ "time/tzdata" // правила зон не должны зависеть от tzdata на хосте

	"github.com/sitandoucara/astro-app-sub001/internal/domain"
	"github.com/sitandoucara/astro-app-sub001/internal/pkg/metrics"
	"github.com/sitandoucara/astro-app-sub001/internal/ports/service"
)

// Resolver переводит координаты в IANA зону и её текущее смещение от UTC.
// Смещение считается на момент вызова (DST), поэтому результат не кэшируется.
type Resolver struct {
	lookup  service.IZoneLookup
	now     func() time.Time
	metrics *metrics.Collector
	Log     *slog.Logger
}

func New(lookup service.IZoneLookup, collector *metrics.Collector, log *slog.Logger) *Resolver {
	return &Resolver{
		lookup:  lookup,
		now:     time.Now,
		metrics: collector,
		Log:     log,
	}
}

// WithClock подменяет источник "текущего" момента
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

func (r *Resolver) Resolve(coord domain.Coordinate) domain.TimezoneResolution {
	zoneName := r.lookup.LookupZoneName(coord.Latitude, coord.Longitude)
	if zoneName == "" {
		r.Log.Debug("timezone lookup miss, using fallback",
			"lat", coord.Latitude,
			"lon", coord.Longitude,
		)
		r.metrics.TimezoneResolved(true)
		return domain.FallbackResolution()
	}

	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		r.Log.Warn("failed to load timezone location, using fallback",
			"zone", zoneName,
			"error", err,
		)
		r.metrics.TimezoneResolved(true)
		return domain.FallbackResolution()
	}

	_, offsetSeconds := r.now().In(loc).Zone()
	r.metrics.TimezoneResolved(false)

	return domain.TimezoneResolution{
		OffsetHours: float64(offsetSeconds) / 3600,
		ZoneName:    zoneName,
	}
}
