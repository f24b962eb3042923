package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveTickSetsGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	c.ObserveTick(TickSample{SimTime: 3, TimeScale: 1.5, TrackingDistance: 12, Interval: 33 * time.Millisecond})
	c.ObserveTick(TickSample{SimTime: 4.5, TimeScale: 2.25, Paused: true, TransientActive: true, TrackingDistance: 10, Interval: 33 * time.Millisecond})

	tests := []struct {
		name string
		col  prometheus.Collector
		want float64
	}{
		{"sim time", c.SimTime, 4.5},
		{"time scale", c.TimeScale, 2.25},
		{"paused", c.Paused, 1},
		{"tracking distance", c.TrackingDistance, 10},
		{"transient active", c.TransientActive, 1},
		{"ticks", c.Ticks, 2},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(tt.col); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	if count := histogramSampleCount(t, reg, "orrery_tick_interval_seconds", nil); count != 2 {
		t.Errorf("tick interval sample_count = %d, want 2", count)
	}
}

func TestModeChangeLabels(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	c.ModeChange("Orbit", false)
	c.ModeChange("Orbit", true)
	c.ModeChange("Orbit", true)

	if got := testutil.ToFloat64(c.ModeChanges.WithLabelValues("Orbit", "accepted")); got != 2 {
		t.Errorf("accepted = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.ModeChanges.WithLabelValues("Orbit", "rejected")); got != 1 {
		t.Errorf("rejected = %v, want 1", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.ObserveTick(TickSample{SimTime: 1})
	c.ModeChange("Free", true)
	c.IncSpawns()
	c.Notice("TOGGLE")
	if c.Handler() == nil {
		t.Error("nil collector returned nil handler")
	}
}

func TestRegisterTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("first NewCollector: %v", err)
	}
	b, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector: %v", err)
	}
	a.IncSpawns()
	if got := testutil.ToFloat64(b.TransientSpawns); got != 1 {
		t.Errorf("shared spawns = %v, want 1", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	c.ObserveTick(TickSample{SimTime: 7, TimeScale: 1})
	c.Notice("MODE_REJECTED")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, metric := range []string{
		"orrery_sim_time_seconds 7",
		"orrery_ticks_total 1",
		`orrery_notices_total{type="MODE_REJECTED"} 1`,
	} {
		if !strings.Contains(body, metric) {
			t.Errorf("expected %q in /metrics output", metric)
		}
	}
}

func histogramSampleCount(t *testing.T, gatherer prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	families, err := gatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.Metric {
			if matchLabels(m.GetLabel(), labels) && m.GetHistogram() != nil {
				return m.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchLabels(got []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, lp := range got {
		if val, ok := want[lp.GetName()]; ok && val == lp.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
