package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"textinsight/internal/models"
	"textinsight/internal/store"
)

var (
	_ store.Repository = (*DB)(nil)
	_ store.Pruner     = (*DB)(nil)
	_ store.Pinger     = (*DB)(nil)
)

// analysisColumns is the standard column list for analysis queries.
const analysisColumns = `id, created_at, text, title, summary, topics, sentiment, keywords`

// scanAnalysis scans a row into an AnalysisRecord.
func scanAnalysis(row pgx.Row) (*models.AnalysisRecord, error) {
	var (
		rec       models.AnalysisRecord
		sentiment string
	)
	err := row.Scan(
		&rec.ID,
		&rec.CreatedAt,
		&rec.Text,
		&rec.Title,
		&rec.Summary,
		&rec.Topics,
		&sentiment,
		&rec.Keywords,
	)
	if err != nil {
		return nil, err
	}
	rec.Sentiment = models.Sentiment(sentiment)
	return &rec, nil
}

// scanAnalyses scans multiple rows into a slice of AnalysisRecords.
func scanAnalyses(rows pgx.Rows) ([]models.AnalysisRecord, error) {
	defer rows.Close()

	records := []models.AnalysisRecord{}
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// Insert stores an analysis. A zero ID or CreatedAt is filled in.
func (d *DB) Insert(ctx context.Context, rec *models.AnalysisRecord) error {
	if rec == nil || !rec.Sentiment.IsValid() {
		return ErrInvalidRecord
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := d.Pool.Exec(ctx, `
		INSERT INTO analyses (`+analysisColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rec.ID, rec.CreatedAt, rec.Text, rec.Title, rec.Summary,
		nonNil(rec.Topics), string(rec.Sentiment), nonNil(rec.Keywords))
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

// Search returns analyses matching filters, newest first.
func (d *DB) Search(ctx context.Context, filters models.SearchFilters, limit int) ([]models.AnalysisRecord, error) {
	sql, args := buildSearchQuery(filters, limit)
	rows, err := d.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search analyses: %w", err)
	}
	return scanAnalyses(rows)
}

// buildSearchQuery assembles the search statement. The keyword matches an
// exact element of keywords or a case-insensitive substring of text; the
// sentiment filter is ANDed with it.
func buildSearchQuery(filters models.SearchFilters, limit int) (string, []any) {
	sql := `SELECT ` + analysisColumns + ` FROM analyses WHERE 1=1`
	var args []any

	if filters.Sentiment != "" {
		args = append(args, string(filters.Sentiment))
		sql += ` AND sentiment = $` + strconv.Itoa(len(args))
	}

	if filters.Keyword != "" {
		args = append(args, filters.Keyword)
		kw := strconv.Itoa(len(args))
		args = append(args, store.ContainsPattern(filters.Keyword))
		pattern := strconv.Itoa(len(args))
		sql += ` AND (keywords @> ARRAY[$` + kw + `]::text[] OR text ILIKE $` + pattern + `)`
	}

	args = append(args, store.ClampLimit(limit))
	sql += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))

	return sql, args
}

// DeleteAnalysesBefore removes analyses created before cutoff and returns
// how many were deleted.
func (d *DB) DeleteAnalysesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM analyses WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune analyses: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CountAnalysesBySentiment returns the number of stored analyses per sentiment.
func (d *DB) CountAnalysesBySentiment(ctx context.Context) ([]models.SentimentCount, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT sentiment, COUNT(*)
		FROM analyses
		GROUP BY sentiment
		ORDER BY sentiment
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.SentimentCount
	for rows.Next() {
		var (
			s string
			c models.SentimentCount
		)
		if err := rows.Scan(&s, &c.Count); err != nil {
			return nil, err
		}
		c.Sentiment = models.Sentiment(s)
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
