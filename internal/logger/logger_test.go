package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger
	Logger = zerolog.New(&buf)
	t.Cleanup(func() { Logger = prev })
	return &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	return line
}

func TestWithComponent(t *testing.T) {
	buf := captureLogger(t)

	log := WithComponent("seed")
	log.Info().Msg("seed completed")

	line := decodeLine(t, buf)
	if line["component"] != "seed" || line["message"] != "seed completed" || line["level"] != "info" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestWithRequestID(t *testing.T) {
	buf := captureLogger(t)

	log := WithRequestID("req-42")
	log.Warn().Str("path", "/v1/reports/weekly").Msg("panic recovered")

	line := decodeLine(t, buf)
	if line["request_id"] != "req-42" || line["path"] != "/v1/reports/weekly" || line["level"] != "warn" {
		t.Fatalf("unexpected log line: %v", line)
	}
}
