// Package metrics exports the game clock as prometheus metrics
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KirkDiggler/campus-api/internal/daytime"
)

// Config holds the metric labels and registry
type Config struct {
	// Registry receives the collectors. Nil creates a private one.
	Registry *prometheus.Registry

	// WorldID is attached to every series as a const label
	WorldID string
}

// ClockRecorder is a tick agent mirroring the clock into gauges and counters
type ClockRecorder struct {
	registry *prometheus.Registry

	ticks     prometheus.Counter
	days      prometheus.Counter
	phase     prometheus.Gauge
	dayIndex  prometheus.Gauge
	hour      prometheus.Gauge
	timeScale prometheus.Gauge
}

var _ daytime.Agent = (*ClockRecorder)(nil)

// NewClockRecorder registers the clock collectors
func NewClockRecorder(cfg *Config) *ClockRecorder {
	if cfg == nil {
		cfg = &Config{}
	}

	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	labels := prometheus.Labels{}
	if cfg.WorldID != "" {
		labels["world"] = cfg.WorldID
	}

	f := promauto.With(reg)
	return &ClockRecorder{
		registry: reg,
		ticks: f.NewCounter(prometheus.CounterOpts{
			Name:        "campus_clock_ticks_total",
			Help:        "Phase boundaries delivered to agents",
			ConstLabels: labels,
		}),
		days: f.NewCounter(prometheus.CounterOpts{
			Name:        "campus_clock_days_total",
			Help:        "In-game days started",
			ConstLabels: labels,
		}),
		phase: f.NewGauge(prometheus.GaugeOpts{
			Name:        "campus_clock_phase",
			Help:        "Last delivered phase index",
			ConstLabels: labels,
		}),
		dayIndex: f.NewGauge(prometheus.GaugeOpts{
			Name:        "campus_clock_day_index",
			Help:        "Zero-based in-game day",
			ConstLabels: labels,
		}),
		hour: f.NewGauge(prometheus.GaugeOpts{
			Name:        "campus_clock_hour",
			Help:        "Fractional hour of day after the last clock mutation",
			ConstLabels: labels,
		}),
		timeScale: f.NewGauge(prometheus.GaugeOpts{
			Name:        "campus_clock_time_scale",
			Help:        "Real-to-game time multiplier",
			ConstLabels: labels,
		}),
	}
}

// OnTimeTick implements daytime.Agent
func (r *ClockRecorder) OnTimeTick(tick daytime.Tick) {
	r.ticks.Inc()
	if tick.FirstOfDay() {
		r.days.Inc()
	}

	r.phase.Set(float64(tick.Phase))
	r.dayIndex.Set(float64(tick.Now.DayIndex))
	r.hour.Set(tick.Now.Hours())
	r.timeScale.Set(tick.Now.TimeScale)
}

// ObserveTimeScale updates the scale gauge outside of tick delivery, since
// pausing produces no ticks
func (r *ClockRecorder) ObserveTimeScale(scale float64) {
	r.timeScale.Set(scale)
}

// Registry returns the registry holding the collectors
func (r *ClockRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the prometheus exposition format
func (r *ClockRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
