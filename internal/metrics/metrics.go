package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellness_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wellness_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "status"},
	)

	// Forecast metrics
	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellness_reports_generated_total",
			Help: "Total number of forecast reports generated",
		},
		[]string{"scope", "method"}, // scope: metric, weekly
	)

	AlertsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellness_alerts_emitted_total",
			Help: "Total number of alerts composed",
		},
		[]string{"kind", "severity"},
	)

	AlertPublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellness_alert_publish_total",
			Help: "Total number of alert events published to Kafka",
		},
		[]string{"status"}, // status: success, failed
	)

	AlertPublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wellness_alert_publish_duration_seconds",
			Help:    "Time taken to publish an alert batch",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	RecommendationsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellness_recommendations_total",
			Help: "Total number of recommendations served",
		},
		[]string{"source"}, // source: llm, static
	)

	DemoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellness_demo_requests_total",
			Help: "Total number of demo requests received",
		},
		[]string{"result"}, // result: created, existing
	)

	LangfuseEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellness_langfuse_events_total",
			Help: "Total number of Langfuse ingestion events by outcome",
		},
		[]string{"type", "status"}, // status: sent, failed, dropped
	)

	// Panic recovery
	PanicsRecovered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wellness_panics_recovered_total",
			Help: "Total number of panics recovered",
		},
		[]string{"component"},
	)
)
