// Package events publishes forecast alerts to downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/google/uuid"
)

// AlertEvent is the wire form of one composed alert.
type AlertEvent struct {
	ID        uuid.UUID             `json:"id"`
	MetricID  string                `json:"metric_id"`
	Metric    string                `json:"metric"`
	Kind      domain.AlertKind      `json:"kind"`
	Severity  domain.AlertSeverity  `json:"severity"`
	Title     string                `json:"title"`
	Message   string                `json:"message"`
	Method    domain.ForecastMethod `json:"method"`
	EmittedAt time.Time             `json:"emitted_at"`
}

// FromReport converts every alert of a metric report into events.
func FromReport(report domain.MetricReport, method domain.ForecastMethod, at time.Time) []AlertEvent {
	out := make([]AlertEvent, 0, len(report.Alerts))
	for _, a := range report.Alerts {
		out = append(out, AlertEvent{
			ID:        uuid.New(),
			MetricID:  report.MetricID,
			Metric:    report.Metric,
			Kind:      a.Kind,
			Severity:  a.Severity,
			Title:     a.Title,
			Message:   a.Message,
			Method:    method,
			EmittedAt: at,
		})
	}
	return out
}

// AlertPublisher delivers alert events. Implementations must be safe for concurrent use.
type AlertPublisher interface {
	Publish(ctx context.Context, events []AlertEvent) error
	Close() error
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event.
func NewNoopPublisher() AlertPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, []AlertEvent) error { return nil }

func (noopPublisher) Close() error { return nil }
