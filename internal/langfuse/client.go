// Package langfuse sends recommendation traces and feedback scores to the
// Langfuse ingestion API and loads managed prompts. Events are queued and
// shipped in batches by a background worker. Without credentials the
// client is a no-op.
package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/blaisecz/wellness-forecast/internal/logger"
	"github.com/blaisecz/wellness-forecast/internal/metrics"
	"github.com/google/uuid"
)

const (
	defaultBatchSize     = 20
	defaultFlushInterval = time.Second
	defaultQueueSize     = 256
	sendTimeout          = 5 * time.Second
)

// Event types accepted by the ingestion API.
const (
	eventTraceCreate = "trace-create"
	eventScoreCreate = "score-create"
)

// ErrInvalidScore is returned when a score lacks its trace or name.
var ErrInvalidScore = errors.New("score requires trace id and name")

// Client records traces and scores.
type Client interface {
	IsEnabled() bool
	// CreateTrace queues a trace and returns its ID without waiting for delivery.
	CreateTrace(ctx context.Context, in TraceInput) (string, error)
	// CreateScore queues a score for an existing trace.
	CreateScore(ctx context.Context, in ScoreInput) error
	// Close flushes queued events and stops the worker.
	Close(ctx context.Context) error
}

// TraceInput contains the data for creating a trace.
type TraceInput struct {
	ID       string // generated when empty
	UserID   string
	Name     string // e.g. "metric-recommendation"
	Input    any
	Output   any
	Tags     []string
	Metadata map[string]any
}

// ScoreInput contains the data for creating a score.
type ScoreInput struct {
	TraceID string
	Name    string // e.g. "user_rating"
	Value   float64
	Comment string
}

// Config holds Langfuse client configuration.
type Config struct {
	BaseURL     string
	PublicKey   string
	SecretKey   string
	Environment string

	BatchSize     int
	FlushInterval time.Duration
	QueueSize     int
}

type client struct {
	cfg        Config
	httpClient *http.Client

	queue chan ingestionEvent
	done  chan struct{}

	closeOnce sync.Once
	stopped   chan struct{}
}

// NewClient starts a batching client, or returns a no-op client when
// the base URL or either key is missing.
func NewClient(cfg Config) Client {
	log := logger.WithComponent("langfuse")

	switch {
	case cfg.BaseURL == "":
		log.Info().Msg("disabled: LANGFUSE_BASE_URL is empty")
		return noopClient{}
	case cfg.PublicKey == "":
		log.Info().Msg("disabled: LANGFUSE_PUBLIC_KEY is empty")
		return noopClient{}
	case cfg.SecretKey == "":
		log.Info().Msg("disabled: LANGFUSE_SECRET_KEY is empty")
		return noopClient{}
	}

	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaultFlushInterval
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}

	c := &client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		queue:      make(chan ingestionEvent, cfg.QueueSize),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}
	go c.run()

	log.Info().
		Str("base_url", cfg.BaseURL).
		Str("env", cfg.Environment).
		Int("batch_size", cfg.BatchSize).
		Dur("flush_interval", cfg.FlushInterval).
		Msg("enabled")
	return c
}

func (c *client) IsEnabled() bool { return true }

func (c *client) CreateTrace(_ context.Context, in TraceInput) (string, error) {
	traceID := in.ID
	if traceID == "" {
		traceID = uuid.NewString()
	}

	metadata := make(map[string]any, len(in.Metadata)+1)
	for k, v := range in.Metadata {
		metadata[k] = v
	}
	if c.cfg.Environment != "" {
		metadata["environment"] = c.cfg.Environment
	}

	c.enqueue(newEvent(eventTraceCreate, traceBody{
		ID:       traceID,
		Name:     in.Name,
		UserID:   in.UserID,
		Input:    in.Input,
		Output:   in.Output,
		Tags:     in.Tags,
		Metadata: metadata,
	}))
	return traceID, nil
}

func (c *client) CreateScore(_ context.Context, in ScoreInput) error {
	if in.TraceID == "" || in.Name == "" {
		return ErrInvalidScore
	}

	c.enqueue(newEvent(eventScoreCreate, scoreBody{
		ID:      uuid.NewString(),
		TraceID: in.TraceID,
		Name:    in.Name,
		Value:   in.Value,
		Comment: in.Comment,
	}))
	return nil
}

func (c *client) Close(ctx context.Context) error {
	c.closeOnce.Do(func() { close(c.done) })
	select {
	case <-c.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// enqueue never blocks the request path. Events are dropped when the
// queue is full or the client is closed.
func (c *client) enqueue(ev ingestionEvent) {
	select {
	case <-c.done:
		metrics.LangfuseEventsTotal.WithLabelValues(ev.Type, "dropped").Inc()
		return
	default:
	}

	select {
	case c.queue <- ev:
	default:
		metrics.LangfuseEventsTotal.WithLabelValues(ev.Type, "dropped").Inc()
		log := logger.WithComponent("langfuse")
		log.Warn().Str("event_type", ev.Type).Msg("queue full, event dropped")
	}
}

func (c *client) run() {
	defer close(c.stopped)

	ticker := time.NewTicker(c.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]ingestionEvent, 0, c.cfg.BatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		c.deliver(batch)
		batch = make([]ingestionEvent, 0, c.cfg.BatchSize)
	}

	for {
		select {
		case ev := <-c.queue:
			batch = append(batch, ev)
			if len(batch) >= c.cfg.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-c.done:
			for {
				select {
				case ev := <-c.queue:
					batch = append(batch, ev)
					if len(batch) >= c.cfg.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

func (c *client) deliver(batch []ingestionEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	status := "sent"
	if err := c.sendBatch(ctx, batch); err != nil {
		status = "failed"
		log := logger.WithComponent("langfuse")
		log.Warn().Err(err).Int("events", len(batch)).Msg("batch delivery failed")
	}
	for _, ev := range batch {
		metrics.LangfuseEventsTotal.WithLabelValues(ev.Type, status).Inc()
	}
}

func (c *client) sendBatch(ctx context.Context, events []ingestionEvent) error {
	body, err := json.Marshal(batchPayload{Batch: events})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/public/ingestion", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.PublicKey, c.cfg.SecretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	// 207 carries per-event errors; the batch itself was accepted.
	if resp.StatusCode >= 400 {
		return fmt.Errorf("ingestion failed with status %d", resp.StatusCode)
	}
	return nil
}

type noopClient struct{}

func (noopClient) IsEnabled() bool { return false }
func (noopClient) CreateTrace(context.Context, TraceInput) (string, error) { return "", nil }
func (noopClient) CreateScore(context.Context, ScoreInput) error { return nil }
func (noopClient) Close(context.Context) error { return nil }

func newEvent(kind string, body any) ingestionEvent {
	return ingestionEvent{
		ID:        uuid.NewString(),
		Type:      kind,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Body:      body,
	}
}

type batchPayload struct {
	Batch []ingestionEvent `json:"batch"`
}

type ingestionEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Body      any    `json:"body"`
}

type traceBody struct {
	ID       string         `json:"id"`
	Name     string         `json:"name,omitempty"`
	UserID   string         `json:"userId,omitempty"`
	Input    any            `json:"input,omitempty"`
	Output   any            `json:"output,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type scoreBody struct {
	ID      string  `json:"id"`
	TraceID string  `json:"traceId"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Comment string  `json:"comment,omitempty"`
}
