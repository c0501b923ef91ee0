package api

import (
	"github.com/gofiber/fiber/v3"

	"textinsight/internal/models"
	"textinsight/internal/store"
	"textinsight/internal/validation"
)

// SearchHandler queries stored analyses.
type SearchHandler struct {
	repo store.Repository
}

// NewSearchHandler creates a new search handler. repo may be nil, in which
// case every search is rejected.
func NewSearchHandler(repo store.Repository) *SearchHandler {
	return &SearchHandler{repo: repo}
}

// Search handles GET /api/search?keyword=&sentiment=.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	if h.repo == nil {
		return jsonError(c, fiber.StatusBadRequest, store.ErrNotConfigured.Error())
	}

	sentiment, valid, msg := validation.ParseSentimentFilter(c.Query("sentiment"))
	if !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	filters := models.SearchFilters{
		Keyword:   validation.NormalizeKeyword(c.Query("keyword")),
		Sentiment: sentiment,
	}

	records, err := h.repo.Search(c.Context(), filters, store.SearchLimit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to search analyses")
	}

	return jsonSuccess(c, records)
}
