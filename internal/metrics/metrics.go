// Package metrics provides Prometheus metrics for the chat assistant.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the assistant's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	ChatRequestsTotal   *prometheus.CounterVec
	ModelRoundTrips     prometheus.Counter
	ToolCallsTotal      *prometheus.CounterVec
	UpstreamErrorsTotal *prometheus.CounterVec
	LoopExhaustedTotal  prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ChatRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agency_chat_requests_total",
				Help: "Total number of chat requests by resolved mode",
			},
			[]string{"mode"},
		),
		ModelRoundTrips: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "agency_model_roundtrips_total",
				Help: "Total number of model API calls, streaming and non-streaming",
			},
		),
		ToolCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agency_tool_calls_total",
				Help: "Total number of admin tool calls by tool and outcome",
			},
			[]string{"tool", "outcome"},
		),
		UpstreamErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "agency_chat_upstream_errors_total",
				Help: "Total number of model API failures by classification",
			},
			[]string{"kind"},
		),
		LoopExhaustedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "agency_admin_loop_exhausted_total",
				Help: "Admin loops that hit the iteration cap",
			},
		),
	}
}

func (m *Metrics) ChatRequest(mode string) {
	if m == nil {
		return
	}
	m.ChatRequestsTotal.WithLabelValues(mode).Inc()
}

func (m *Metrics) ModelRoundTrip() {
	if m == nil {
		return
	}
	m.ModelRoundTrips.Inc()
}

func (m *Metrics) ToolCall(tool, outcome string) {
	if m == nil {
		return
	}
	m.ToolCallsTotal.WithLabelValues(tool, outcome).Inc()
}

func (m *Metrics) UpstreamError(kind string) {
	if m == nil {
		return
	}
	m.UpstreamErrorsTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) LoopExhausted() {
	if m == nil {
		return
	}
	m.LoopExhaustedTotal.Inc()
}
