package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

// Label values are closed vocabularies (levels, reason codes, status
// classes); nothing request-specific or content-derived is ever used as
// a label.
var (
	SanitizeLevelTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "arbetsytan_sanitize_level_total",
			Help: "Ingested blobs by the masking level that passed the gate",
		},
		[]string{"level"},
	)

	GateReasonTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "arbetsytan_gate_reason_total",
			Help: "Gate rejections by reason code, counted per escalation",
		},
		[]string{"reason"},
	)

	IngestionRejectedTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "arbetsytan_ingestion_rejected_total",
			Help: "Ingestions aborted because paranoid masking failed the gate",
		},
	)

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "arbetsytan_requests_total",
			Help: "HTTP requests by method and status class",
		},
		[]string{"method", "status"},
	)
)

func Initialize() {
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}
