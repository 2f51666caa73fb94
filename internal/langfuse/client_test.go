package langfuse

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// captureServer records every ingestion request and forwards the decoded body.
func captureServer(t *testing.T, status int) (*httptest.Server, <-chan map[string]any, <-chan string) {
	t.Helper()
	bodies := make(chan map[string]any, 8)
	auths := make(chan string, 8)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, pass, ok := r.BasicAuth(); ok {
			auths <- user + ":" + pass
		}
		var body map[string]any
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		bodies <- body
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server, bodies, auths
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for langfuse request")
	}
	var zero T
	return zero
}

func closeClient(t *testing.T, c Client) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func events(t *testing.T, body map[string]any) []map[string]any {
	t.Helper()
	batch, ok := body["batch"].([]any)
	if !ok {
		t.Fatalf("expected batch array, got %v", body)
	}
	out := make([]map[string]any, len(batch))
	for i, ev := range batch {
		out[i] = ev.(map[string]any)
	}
	return out
}

func TestNewClient_Disabled(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{name: "empty base URL", config: Config{PublicKey: "pk", SecretKey: "sk"}},
		{name: "empty public key", config: Config{BaseURL: "http://localhost", SecretKey: "sk"}},
		{name: "empty secret key", config: Config{BaseURL: "http://localhost", PublicKey: "pk"}},
		{name: "all empty", config: Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(tt.config)
			if c.IsEnabled() {
				t.Error("expected client to be disabled")
			}

			traceID, err := c.CreateTrace(context.Background(), TraceInput{Name: "metric-recommendation"})
			if err != nil || traceID != "" {
				t.Errorf("expected no-op trace, got %q, %v", traceID, err)
			}
			if err := c.CreateScore(context.Background(), ScoreInput{}); err != nil {
				t.Errorf("expected no-op score, got %v", err)
			}
			if err := c.Close(context.Background()); err != nil {
				t.Errorf("expected no-op close, got %v", err)
			}
		})
	}
}

func TestCreateTrace_DeliveredOnClose(t *testing.T) {
	server, bodies, auths := captureServer(t, http.StatusOK)

	c := NewClient(Config{
		BaseURL:       server.URL,
		PublicKey:     "pk-test",
		SecretKey:     "sk-test",
		Environment:   "testing",
		FlushInterval: time.Hour,
	})
	if !c.IsEnabled() {
		t.Fatal("expected client to be enabled")
	}

	metadata := map[string]any{"trend": "downward"}
	traceID, err := c.CreateTrace(context.Background(), TraceInput{
		UserID:   "dashboard",
		Name:     "metric-recommendation",
		Input:    map[string]any{"metric_id": "activity"},
		Output:   map[string]any{"summary": "Activity is declining."},
		Tags:     []string{"wellness-forecast"},
		Metadata: metadata,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if traceID == "" {
		t.Fatal("expected non-empty trace ID")
	}
	if _, ok := metadata["environment"]; ok {
		t.Error("caller metadata must not be mutated")
	}

	closeClient(t, c)

	if got := receive(t, auths); got != "pk-test:sk-test" {
		t.Errorf("expected auth pk-test:sk-test, got %s", got)
	}

	evs := events(t, receive(t, bodies))
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
	if evs[0]["type"] != "trace-create" {
		t.Errorf("expected type trace-create, got %v", evs[0]["type"])
	}

	body := evs[0]["body"].(map[string]any)
	if body["id"] != traceID {
		t.Errorf("expected body id %s, got %v", traceID, body["id"])
	}
	if body["userId"] != "dashboard" {
		t.Errorf("expected userId dashboard, got %v", body["userId"])
	}
	md := body["metadata"].(map[string]any)
	if md["environment"] != "testing" || md["trend"] != "downward" {
		t.Errorf("unexpected metadata %v", md)
	}
}

func TestClient_BatchesTraceAndScore(t *testing.T) {
	server, bodies, _ := captureServer(t, http.StatusOK)

	c := NewClient(Config{
		BaseURL: server.URL, PublicKey: "pk", SecretKey: "sk",
		BatchSize:     2,
		FlushInterval: time.Hour,
	})
	defer closeClient(t, c)

	traceID, _ := c.CreateTrace(context.Background(), TraceInput{ID: "trace-abc123", Name: "metric-recommendation"})
	if traceID != "trace-abc123" {
		t.Fatalf("expected caller trace ID, got %s", traceID)
	}
	if err := c.CreateScore(context.Background(), ScoreInput{
		TraceID: traceID,
		Name:    "user_rating",
		Value:   4,
		Comment: "The forecast matched my week.",
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// A full batch is sent without waiting for the ticker or Close.
	evs := events(t, receive(t, bodies))
	if len(evs) != 2 {
		t.Fatalf("expected 2 events in one batch, got %d", len(evs))
	}
	if evs[0]["type"] != "trace-create" || evs[1]["type"] != "score-create" {
		t.Fatalf("unexpected event order: %v, %v", evs[0]["type"], evs[1]["type"])
	}

	score := evs[1]["body"].(map[string]any)
	if score["traceId"] != "trace-abc123" || score["name"] != "user_rating" || score["value"] != 4.0 {
		t.Errorf("unexpected score body %v", score)
	}
	if score["comment"] != "The forecast matched my week." {
		t.Errorf("expected comment, got %v", score["comment"])
	}
}

func TestClient_FlushesOnInterval(t *testing.T) {
	server, bodies, _ := captureServer(t, http.StatusOK)

	c := NewClient(Config{
		BaseURL: server.URL, PublicKey: "pk", SecretKey: "sk",
		FlushInterval: 10 * time.Millisecond,
	})
	defer closeClient(t, c)

	if _, err := c.CreateTrace(context.Background(), TraceInput{Name: "metric-recommendation"}); err != nil {
		t.Fatal(err)
	}
	if evs := events(t, receive(t, bodies)); len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
}

func TestCreateScore_RequiresTraceAndName(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:0", PublicKey: "pk", SecretKey: "sk"})
	defer closeClient(t, c)

	for _, in := range []ScoreInput{{Name: "user_rating", Value: 3}, {TraceID: "t", Value: 3}} {
		if err := c.CreateScore(context.Background(), in); !errors.Is(err, ErrInvalidScore) {
			t.Errorf("expected ErrInvalidScore for %+v, got %v", in, err)
		}
	}
}

func TestCreateTrace_ServerErrorIsNotReturned(t *testing.T) {
	server, bodies, _ := captureServer(t, http.StatusInternalServerError)

	c := NewClient(Config{BaseURL: server.URL, PublicKey: "pk", SecretKey: "sk", FlushInterval: time.Hour})

	traceID, err := c.CreateTrace(context.Background(), TraceInput{Name: "test"})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if traceID == "" {
		t.Error("expected trace ID even on server failure")
	}

	closeClient(t, c)
	receive(t, bodies)
}

func TestClient_DropsAfterClose(t *testing.T) {
	server, bodies, _ := captureServer(t, http.StatusOK)

	c := NewClient(Config{BaseURL: server.URL, PublicKey: "pk", SecretKey: "sk", FlushInterval: time.Hour})
	closeClient(t, c)
	closeClient(t, c)

	if _, err := c.CreateTrace(context.Background(), TraceInput{Name: "late"}); err != nil {
		t.Fatal(err)
	}

	select {
	case body := <-bodies:
		t.Fatalf("expected no delivery after close, got %v", body)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSendBatch_ReportsHTTPFailure(t *testing.T) {
	server, _, _ := captureServer(t, http.StatusUnauthorized)

	c := NewClient(Config{BaseURL: server.URL, PublicKey: "pk", SecretKey: "sk"}).(*client)
	defer closeClient(t, c)

	if err := c.sendBatch(context.Background(), []ingestionEvent{newEvent(eventTraceCreate, traceBody{ID: "1"})}); err == nil {
		t.Fatal("expected error for 401 response")
	}
}
