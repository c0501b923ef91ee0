package api

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"textinsight/internal/models"
	"textinsight/internal/store"
	"textinsight/internal/validation"
)

// Analyzer builds an AnalysisResult for a piece of text.
type Analyzer interface {
	Build(ctx context.Context, text string) models.AnalysisResult
}

// AnalyzeHandler runs analyses and persists them when a store is configured.
type AnalyzeHandler struct {
	analyzer Analyzer
	repo     store.Repository
	logger   *slog.Logger
}

// NewAnalyzeHandler creates a new analyze handler. repo may be nil.
func NewAnalyzeHandler(analyzer Analyzer, repo store.Repository, logger *slog.Logger) *AnalyzeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyzeHandler{analyzer: analyzer, repo: repo, logger: logger}
}

// Analyze handles POST /api/analyze with body {"text": "..."}.
func (h *AnalyzeHandler) Analyze(c fiber.Ctx) error {
	var body struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.Text == nil {
		return jsonError(c, fiber.StatusBadRequest, "text is required")
	}

	text := *body.Text
	if valid, msg := validation.ValidateText(text); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	result := h.analyzer.Build(c.Context(), text)

	if h.repo != nil {
		rec := models.NewAnalysisRecord(text, result)
		if err := h.repo.Insert(c.Context(), rec); err != nil {
			h.logger.Error("failed to persist analysis", "error", err)
		}
	}

	return jsonSuccess(c, result)
}
