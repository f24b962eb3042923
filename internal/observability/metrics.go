// Package observability exposes simulation metrics to Prometheus.
package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the orrery's Prometheus metrics. All methods are safe
// on a nil receiver so callers can run without metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	SimTime          prometheus.Gauge
	TimeScale        prometheus.Gauge
	Paused           prometheus.Gauge
	TrackingDistance prometheus.Gauge
	TransientActive  prometheus.Gauge
	Ticks            prometheus.Counter
	TickInterval     prometheus.Histogram
	TransientSpawns  prometheus.Counter
	ModeChanges      *prometheus.CounterVec
	Notices          *prometheus.CounterVec
}

// TickSample is the state published once per tick.
type TickSample struct {
	SimTime          float64
	TimeScale        float64
	Paused           bool
	TrackingDistance float64
	TransientActive  bool
	Interval         time.Duration
}

// NewCollector registers the metrics against reg, defaulting to the global
// registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error

	gauges := []struct {
		dst  *prometheus.Gauge
		name string
		help string
	}{
		{&c.SimTime, "orrery_sim_time_seconds", "Accumulated simulated time."},
		{&c.TimeScale, "orrery_time_scale", "Simulated seconds per real second."},
		{&c.Paused, "orrery_paused", "1 while the simulation clock is paused."},
		{&c.TrackingDistance, "orrery_camera_tracking_distance", "Camera distance to its target in tracking modes."},
		{&c.TransientActive, "orrery_transient_active", "1 while a transient object is in flight."},
	}
	for _, g := range gauges {
		*g.dst, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{Name: g.name, Help: g.help}), g.name)
		if err != nil {
			return nil, err
		}
	}

	if c.Ticks, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_ticks_total",
		Help: "Simulation ticks processed.",
	}), "orrery_ticks_total"); err != nil {
		return nil, err
	}
	if c.TickInterval, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orrery_tick_interval_seconds",
		Help:    "Real time elapsed between ticks.",
		Buckets: []float64{0.005, 0.01, 0.016, 0.025, 0.033, 0.05, 0.1, 0.25, 0.5, 1},
	}), "orrery_tick_interval_seconds"); err != nil {
		return nil, err
	}
	if c.TransientSpawns, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_transient_spawns_total",
		Help: "Transient objects spawned.",
	}), "orrery_transient_spawns_total"); err != nil {
		return nil, err
	}
	if c.ModeChanges, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_camera_mode_changes_total",
		Help: "Camera mode transition requests, labeled by mode and result.",
	}, []string{"mode", "result"}), "orrery_camera_mode_changes_total"); err != nil {
		return nil, err
	}
	if c.Notices, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_notices_total",
		Help: "Event log notices, labeled by type.",
	}, []string{"type"}), "orrery_notices_total"); err != nil {
		return nil, err
	}

	return c, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveTick publishes one tick's state.
func (c *Collector) ObserveTick(s TickSample) {
	if c == nil {
		return
	}
	c.SimTime.Set(s.SimTime)
	c.TimeScale.Set(s.TimeScale)
	c.Paused.Set(boolGauge(s.Paused))
	c.TrackingDistance.Set(s.TrackingDistance)
	c.TransientActive.Set(boolGauge(s.TransientActive))
	c.Ticks.Inc()
	if s.Interval > 0 {
		c.TickInterval.Observe(s.Interval.Seconds())
	}
}

// ModeChange counts a camera mode request.
func (c *Collector) ModeChange(mode string, accepted bool) {
	if c == nil {
		return
	}
	result := "accepted"
	if !accepted {
		result = "rejected"
	}
	c.ModeChanges.WithLabelValues(mode, result).Inc()
}

// IncSpawns counts a transient spawn.
func (c *Collector) IncSpawns() {
	if c == nil {
		return
	}
	c.TransientSpawns.Inc()
}

// Notice counts an event log entry.
func (c *Collector) Notice(kind string) {
	if c == nil {
		return
	}
	c.Notices.WithLabelValues(kind).Inc()
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// register adds col to reg, reusing an existing collector of the same type
// when the name is already taken.
func register[T prometheus.Collector](reg prometheus.Registerer, col T, name string) (T, error) {
	if err := reg.Register(col); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return col, nil
}
