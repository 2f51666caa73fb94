package api

import (
	"encoding/json"
	"net/http"

	_ "github.com/blaisecz/wellness-forecast/docs"
	"github.com/blaisecz/wellness-forecast/internal/api/handler"
	"github.com/blaisecz/wellness-forecast/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	metricHandler      *handler.MetricHandler
	reportHandler      *handler.ReportHandler
	demoRequestHandler *handler.DemoRequestHandler
	pageHandler        *handler.PageHandler
}

func NewRouter(
	metricHandler *handler.MetricHandler,
	reportHandler *handler.ReportHandler,
	demoRequestHandler *handler.DemoRequestHandler,
	pageHandler *handler.PageHandler,
) *Router {
	return &Router{
		metricHandler:      metricHandler,
		reportHandler:      reportHandler,
		demoRequestHandler: demoRequestHandler,
		pageHandler:        pageHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// Dashboard
	r.Get("/", rt.pageHandler.Report)

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/metrics", func(r chi.Router) {
			r.Get("/", rt.metricHandler.List)
			r.Route("/{metricId}", func(r chi.Router) {
				r.Get("/", rt.metricHandler.Get)
				r.Get("/forecast", rt.metricHandler.Forecast)
				r.Get("/chart", rt.metricHandler.Chart)
				r.Get("/recommendation", rt.metricHandler.Recommendation)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/weekly", rt.reportHandler.GetWeekly)
			r.Post("/feedback", rt.reportHandler.PostFeedback)
		})

		r.Route("/demo-requests", func(r chi.Router) {
			r.Post("/", rt.demoRequestHandler.Create)
			r.Get("/", rt.demoRequestHandler.List)
		})
	})

	return r
}
