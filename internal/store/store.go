// Package store defines the persistence contract for analyses.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"textinsight/internal/models"
)

// SearchLimit caps the number of records a search returns.
const SearchLimit = 50

// ErrNotConfigured is returned when no persistence backend is available.
var ErrNotConfigured = errors.New("store not configured")

// Repository stores analyses and searches them newest-first.
type Repository interface {
	Insert(ctx context.Context, rec *models.AnalysisRecord) error
	Search(ctx context.Context, filters models.SearchFilters, limit int) ([]models.AnalysisRecord, error)
}

// Pinger is implemented by repositories that can check connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Pruner is implemented by repositories that can delete old analyses.
type Pruner interface {
	DeleteAnalysesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ClampLimit bounds limit to (0, SearchLimit].
func ClampLimit(limit int) int {
	if limit <= 0 || limit > SearchLimit {
		return SearchLimit
	}
	return limit
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern returns a LIKE pattern matching s anywhere, with LIKE
// metacharacters in s escaped using backslash.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
