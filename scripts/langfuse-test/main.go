// Script to test Langfuse connectivity by creating a test trace.
// Usage: go run scripts/langfuse-test/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/blaisecz/wellness-forecast/internal/langfuse"
	"github.com/blaisecz/wellness-forecast/internal/logger"
)

func main() {
	log := logger.WithComponent("langfuse-test")

	cfg := langfuse.Config{
		BaseURL:     getEnv("LANGFUSE_BASE_URL", "http://localhost:3001"),
		PublicKey:   os.Getenv("LANGFUSE_PUBLIC_KEY"),
		SecretKey:   os.Getenv("LANGFUSE_SECRET_KEY"),
		Environment: getEnv("LANGFUSE_ENV", "development"),
	}

	fmt.Println("=== Langfuse Connection Test ===")
	fmt.Printf("Base URL:    %s\n", cfg.BaseURL)
	fmt.Printf("Public Key:  %s\n", maskKey(cfg.PublicKey))
	fmt.Printf("Secret Key:  %s\n", maskKey(cfg.SecretKey))
	fmt.Printf("Environment: %s\n", cfg.Environment)
	fmt.Println()

	client := langfuse.NewClient(cfg)

	if !client.IsEnabled() {
		log.Fatal().Msg("Langfuse client is disabled. Check your env vars.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Create a test trace
	traceID, err := client.CreateTrace(ctx, langfuse.TraceInput{
		UserID: "test-user-123",
		Name:   "metric-recommendation-test",
		Input: map[string]any{
			"metric_id": "sleep",
			"method":    "least_squares",
			"time":      time.Now().Format(time.RFC3339),
		},
		Output: map[string]any{
			"summary": "Sleep quality dropped well below the forecast.",
		},
		Tags: []string{"test", "manual", "wellness-forecast"},
	})

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create trace")
	}

	if err := client.CreateScore(ctx, langfuse.ScoreInput{
		TraceID: traceID,
		Name:    "user_rating",
		Value:   5,
		Comment: "langfuse-test script",
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to create score")
	}

	// Events are batched; Close delivers them before exit.
	if err := client.Close(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to flush events")
	}

	fmt.Println("✓ Test trace created successfully!")
	fmt.Printf("  Trace ID: %s\n", traceID)
	fmt.Printf("  View at:  %s/trace/%s\n", cfg.BaseURL, traceID)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func maskKey(key string) string {
	if len(key) < 8 {
		if key == "" {
			return "(empty)"
		}
		return "***"
	}
	return key[:8] + "..."
}
