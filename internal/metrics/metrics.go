package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the tool server.
type Metrics struct {
	registry *prometheus.Registry

	// Tool calls by tool name and outcome ("ok", "error")
	ToolCalls *prometheus.CounterVec

	// Tool handler latency by tool name
	ToolLatency *prometheus.HistogramVec

	// Hours accepted into the ledger by project
	HoursLogged *prometheus.CounterVec

	// LogTime calls refused because the day was full
	CapRejections prometheus.Counter
}

// New creates a Metrics instance backed by its own registry, so several
// servers can coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		ToolCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "workbench_tool_calls_total",
			Help: "Total MCP tool calls by tool and outcome",
		}, []string{"tool", "outcome"}),

		ToolLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "workbench_tool_duration_seconds",
			Help:    "Duration of MCP tool handlers",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"tool"}),

		HoursLogged: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "workbench_hours_logged_total",
			Help: "Hours accepted into the time ledger by project",
		}, []string{"project"}),

		CapRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "workbench_daily_cap_rejections_total",
			Help: "Time entries rejected because the daily cap would be exceeded",
		}),
	}
}

// ObserveToolCall records one tool call and its duration.
func (m *Metrics) ObserveToolCall(tool string, failed bool, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if failed {
		outcome = "error"
	}
	m.ToolCalls.WithLabelValues(tool, outcome).Inc()
	m.ToolLatency.WithLabelValues(tool).Observe(d.Seconds())
}

// ObserveHoursLogged records hours accepted for a project.
func (m *Metrics) ObserveHoursLogged(projectCode string, hours float64) {
	if m != nil {
		m.HoursLogged.WithLabelValues(projectCode).Add(hours)
	}
}

// ObserveCapRejection records a refused LogTime.
func (m *Metrics) ObserveCapRejection() {
	if m != nil {
		m.CapRejections.Inc()
	}
}

// Registry exposes the underlying registry for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
