package service

import (
	"context"
	"sync"
	"time"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/internal/events"
	"github.com/blaisecz/wellness-forecast/internal/langfuse"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// MockMetricRepository is a mock implementation of MetricRepository
type MockMetricRepository struct {
	series []domain.MetricSeries
	err    error
}

func NewMockMetricRepository(series ...domain.MetricSeries) *MockMetricRepository {
	return &MockMetricRepository{series: series}
}

func (m *MockMetricRepository) List(ctx context.Context) ([]domain.MetricSeries, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.MetricSeries, len(m.series))
	copy(out, m.series)
	return out, nil
}

func (m *MockMetricRepository) GetByID(ctx context.Context, id string) (*domain.MetricSeries, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.series {
		if m.series[i].ID == id {
			s := m.series[i]
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

// MockDemoRequestRepository is a mock implementation of DemoRequestRepository
type MockDemoRequestRepository struct {
	byEmail    map[string]*domain.DemoRequest
	listResult []domain.DemoRequest
	createErr  error
	err        error
	// beforeCreate runs at the start of Create, e.g. to simulate a concurrent insert
	beforeCreate func()
}

func NewMockDemoRequestRepository() *MockDemoRequestRepository {
	return &MockDemoRequestRepository{byEmail: make(map[string]*domain.DemoRequest)}
}

func (m *MockDemoRequestRepository) Create(ctx context.Context, req *domain.DemoRequest) error {
	if m.beforeCreate != nil {
		m.beforeCreate()
	}
	if m.createErr != nil {
		return m.createErr
	}
	if m.err != nil {
		return m.err
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.CreatedAt = time.Now()
	m.byEmail[req.Email] = req
	return nil
}

func (m *MockDemoRequestRepository) GetByEmail(ctx context.Context, email string) (*domain.DemoRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	req, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	return req, nil
}

func (m *MockDemoRequestRepository) List(ctx context.Context, filter domain.DemoRequestFilter) ([]domain.DemoRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make([]domain.DemoRequest, len(m.listResult))
	copy(result, m.listResult)
	return result, nil
}

// MockPublisher records published alert events
type MockPublisher struct {
	mu      sync.Mutex
	events  []events.AlertEvent
	batches int
	err     error
}

func (m *MockPublisher) Publish(ctx context.Context, evs []events.AlertEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, evs...)
	m.batches++
	return nil
}

func (m *MockPublisher) Close() error { return nil }

// MockRecommendationLLM is a mock implementation of llm.RecommendationLLM
type MockRecommendationLLM struct {
	output   *domain.LLMRecommendationOutput
	err      error
	received *domain.RecommendationContext
}

func (m *MockRecommendationLLM) GenerateRecommendation(ctx context.Context, recCtx *domain.RecommendationContext) (*domain.LLMRecommendationOutput, error) {
	m.received = recCtx
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

// MockLangfuseClient is a mock implementation of langfuse.Client
type MockLangfuseClient struct {
	enabled bool
	traces  []langfuse.TraceInput
	scores  []langfuse.ScoreInput
}

func (m *MockLangfuseClient) IsEnabled() bool { return m.enabled }

func (m *MockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	if !m.enabled {
		return "", nil
	}
	m.traces = append(m.traces, in)
	return "trace-" + in.Name, nil
}

func (m *MockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	if m.enabled {
		m.scores = append(m.scores, in)
	}
	return nil
}

func (m *MockLangfuseClient) Close(ctx context.Context) error { return nil }

// blockingWriter is a kafka writer that holds every write until released.
type blockingWriter struct {
	release  chan struct{}
	mu       sync.Mutex
	messages []kafka.Message
	writes   int
}

func newBlockingWriter() *blockingWriter {
	return &blockingWriter{release: make(chan struct{})}
}

func (w *blockingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	select {
	case <-w.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = append(w.messages, msgs...)
	w.writes++
	return nil
}

func (w *blockingWriter) Close() error { return nil }
