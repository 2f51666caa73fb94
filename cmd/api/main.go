// Wellness Forecast API
//
// REST API for the weekly wellness report: short-term forecasts, trend
// classification, threshold alerts and AI recommendations.
//
//	@title			Wellness Forecast API
//	@version		1.0
//	@description	Weekly wellness report with short-term forecasts, trend classification, threshold alerts and AI recommendations.
//
//	@BasePath	/v1
//
//	@tag.name			metrics
//	@tag.description	Per-metric forecast, chart and recommendation endpoints
//
//	@tag.name			reports
//	@tag.description	Weekly report and recommendation feedback
//
//	@tag.name			demo-requests
//	@tag.description	Landing page demo request capture
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/blaisecz/wellness-forecast/internal/api"
	"github.com/blaisecz/wellness-forecast/internal/api/handler"
	"github.com/blaisecz/wellness-forecast/internal/config"
	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/blaisecz/wellness-forecast/internal/events"
	"github.com/blaisecz/wellness-forecast/internal/forecast"
	"github.com/blaisecz/wellness-forecast/internal/langfuse"
	"github.com/blaisecz/wellness-forecast/internal/llm"
	"github.com/blaisecz/wellness-forecast/internal/logger"
	"github.com/blaisecz/wellness-forecast/internal/repository"
	"github.com/blaisecz/wellness-forecast/internal/seed"
	"github.com/blaisecz/wellness-forecast/internal/service"
	"github.com/blaisecz/wellness-forecast/internal/telemetry"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.LogLevel)
	log := logger.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing (no-op unless Langfuse is configured)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "wellness-forecast-api")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer shutdownTracer(context.Background())

	defaultMethod, err := domain.ParseForecastMethod(cfg.ForecastMethod, domain.ForecastMethodLeastSquares)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid FORECAST_METHOD")
	}

	// Initialize repositories
	metricRepo, demoRepo, err := newRepositories(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Store).Msg("failed to initialize storage")
	}

	// Alert publishing
	var publisher events.AlertPublisher = events.NewNoopPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaAlertTopic)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create kafka publisher")
		}
		publisher = events.NewAsyncPublisher(kp, events.AsyncOptions{})
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaAlertTopic).Msg("alert publishing enabled")
	}
	defer publisher.Close()

	// Langfuse client for traces and feedback scores
	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	})
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := langfuseClient.Close(flushCtx); err != nil {
			log.Warn().Err(err).Msg("langfuse flush incomplete")
		}
	}()

	// Initialize OpenAI client (recommendations use stored text without it)
	var recommendationLLM llm.RecommendationLLM
	if cfg.OpenAIAPIKey != "" {
		recommendationLLM = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIRecommendationModel, loadSystemPrompt(ctx, cfg))
	} else {
		log.Warn().Msg("OpenAI API key not configured, recommendations fall back to stored text")
	}

	// Initialize services
	reportService := service.NewReportService(metricRepo, publisher, service.ReportOptions{
		DefaultMethod: defaultMethod,
		WeekStart:     seed.ReportWeekStart,
		WeekEnd:       seed.ReportWeekEnd,
	})
	recommendationService := service.NewRecommendationService(reportService, recommendationLLM, langfuseClient)
	demoRequestService := service.NewDemoRequestService(demoRepo)

	// Setup router
	router := api.NewRouter(
		handler.NewMetricHandler(reportService, recommendationService),
		handler.NewReportHandler(reportService, langfuseClient),
		handler.NewDemoRequestHandler(demoRequestService),
		handler.NewPageHandler(reportService),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("method", string(defaultMethod)).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newRepositories(cfg *config.Config) (repository.MetricRepository, repository.DemoRequestRepository, error) {
	log := logger.WithComponent("main")

	switch cfg.Store {
	case config.StorePostgres:
		db, err := config.NewDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Seed {
			log.Info().Msg("seeding database with sample data (SEED=true)")
			if err := seed.Run(db); err != nil {
				return nil, nil, err
			}
		} else if err := seed.Migrate(db); err != nil {
			return nil, nil, err
		}
		return repository.NewMetricRepository(db), repository.NewDemoRequestRepository(db), nil

	case config.StoreMemory:
		metricRepo, err := repository.NewFixtureMetricRepository(seed.Metrics())
		if err != nil {
			return nil, nil, err
		}
		return metricRepo, repository.NewMemoryDemoRequestRepository(), nil

	default:
		return nil, nil, errors.New("unknown STORE " + cfg.Store + ", expected memory or postgres")
	}
}

// loadSystemPrompt prefers the managed Langfuse prompt and falls back to the built-in one.
func loadSystemPrompt(ctx context.Context, cfg *config.Config) string {
	prompt, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		PromptName:  cfg.LangfusePromptName,
		PromptLabel: cfg.LangfusePromptLabel,
		SavePath:    cfg.LangfusePromptCache,
	})
	log := logger.WithComponent("main")
	if err != nil || prompt.Text == "" {
		log.Info().Msg("using built-in recommendation prompt")
		return llm.DefaultSystemPrompt
	}

	log.Info().
		Str("prompt", prompt.Name).
		Str("source", prompt.Source).
		Int("version", prompt.Version).
		Msg("recommendation prompt loaded")
	return prompt.Compile(map[string]string{"horizon_weeks": strconv.Itoa(forecast.HorizonWeeks)})
}
