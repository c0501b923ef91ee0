package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"textinsight/internal/app"
	"textinsight/internal/handlers"
	"textinsight/internal/handlers/api"
	"textinsight/internal/metrics"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(a *app.App) {
	metrics.Init(a.SentimentCounter())

	// Initialize handlers
	probeHandler := handlers.NewProbeHandler(a.Pinger())
	analyzeHandler := api.NewAnalyzeHandler(a.Analyzer, a.Repo, a.Logger)
	searchHandler := api.NewSearchHandler(a.Repo)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// JSON API
	apiGroup := s.App.Group("/api")
	apiGroup.Post("/analyze", analyzeHandler.Analyze)
	apiGroup.Get("/search", searchHandler.Search)
}
