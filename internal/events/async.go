package events

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/blaisecz/wellness-forecast/internal/logger"
	"github.com/blaisecz/wellness-forecast/internal/metrics"
)

const (
	defaultAsyncQueueSize = 64
	defaultPublishTimeout = 10 * time.Second
	defaultDedupeWindow   = time.Hour
	dedupeSweepMultiplier = 2
)

// ErrQueueFull is returned when the async publisher cannot accept a batch.
var ErrQueueFull = errors.New("alert queue is full")

// AsyncOptions configures an AsyncPublisher. Zero values use defaults.
type AsyncOptions struct {
	QueueSize      int
	PublishTimeout time.Duration
	// Identical alerts for a metric are sent once per window. Negative disables.
	DedupeWindow time.Duration
}

// AsyncPublisher hands batches to a background worker so callers never
// wait on the broker. Re-rendered reports do not re-send alerts that
// were already sent within the dedupe window.
type AsyncPublisher struct {
	next AlertPublisher
	opts AsyncOptions

	queue     chan []AlertEvent
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	mu        sync.Mutex
	seen      map[string]time.Time
	lastSweep time.Time
	now       func() time.Time
}

// NewAsyncPublisher starts the worker in front of next.
func NewAsyncPublisher(next AlertPublisher, opts AsyncOptions) *AsyncPublisher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultAsyncQueueSize
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = defaultPublishTimeout
	}
	if opts.DedupeWindow == 0 {
		opts.DedupeWindow = defaultDedupeWindow
	}

	p := &AsyncPublisher{
		next:    next,
		opts:    opts,
		queue:   make(chan []AlertEvent, opts.QueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		seen:    make(map[string]time.Time),
		now:     time.Now,
	}
	go p.run()
	return p
}

// Publish queues the batch and returns immediately. The context only
// covers enqueueing; delivery uses its own timeout.
func (p *AsyncPublisher) Publish(_ context.Context, events []AlertEvent) error {
	select {
	case <-p.done:
		return ErrPublisherClosed
	default:
	}

	events = p.fresh(events)
	if len(events) == 0 {
		return nil
	}

	select {
	case p.queue <- events:
		return nil
	default:
		metrics.AlertPublishTotal.WithLabelValues("dropped").Add(float64(len(events)))
		return ErrQueueFull
	}
}

// Close delivers queued batches, then closes the wrapped publisher.
func (p *AsyncPublisher) Close() error {
	p.closeOnce.Do(func() { close(p.done) })
	<-p.stopped
	return p.next.Close()
}

func (p *AsyncPublisher) run() {
	defer close(p.stopped)
	for {
		select {
		case batch := <-p.queue:
			p.deliver(batch)
		case <-p.done:
			for {
				select {
				case batch := <-p.queue:
					p.deliver(batch)
				default:
					return
				}
			}
		}
	}
}

func (p *AsyncPublisher) deliver(batch []AlertEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), p.opts.PublishTimeout)
	defer cancel()

	if err := p.next.Publish(ctx, batch); err != nil {
		log := logger.WithComponent("alert_publisher")
		log.Warn().Err(err).Int("batch_size", len(batch)).Msg("async alert delivery failed")
	}
}

// fresh drops events sent within the dedupe window.
func (p *AsyncPublisher) fresh(events []AlertEvent) []AlertEvent {
	if p.opts.DedupeWindow < 0 {
		return events
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if now.Sub(p.lastSweep) > dedupeSweepMultiplier*p.opts.DedupeWindow {
		for k, at := range p.seen {
			if now.Sub(at) >= p.opts.DedupeWindow {
				delete(p.seen, k)
			}
		}
		p.lastSweep = now
	}

	out := events[:0:0]
	for _, ev := range events {
		key := fingerprint(ev)
		if at, ok := p.seen[key]; ok && now.Sub(at) < p.opts.DedupeWindow {
			continue
		}
		p.seen[key] = now
		out = append(out, ev)
	}
	return out
}

func fingerprint(ev AlertEvent) string {
	return strings.Join([]string{ev.MetricID, string(ev.Method), string(ev.Kind), ev.Message}, "\x00")
}
