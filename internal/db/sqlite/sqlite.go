// Package sqlite is a single-file Repository for local use and the CLI.
// List columns are stored as JSON arrays and searched with json_each.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"textinsight/internal/models"
	"textinsight/internal/store"
	"textinsight/migrations"
)

var (
	_ store.Repository = (*Store)(nil)
	_ store.Pruner     = (*Store)(nil)
	_ store.Pinger     = (*Store)(nil)
)

var errInvalidRecord = errors.New("invalid analysis record")

// Store wraps a SQLite database holding the analyses table.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies
// migrations. Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases alive for the lifetime of the Store.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	sourceDriver, err := iofs.New(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	dbDriver, err := sqlitemigrate.WithInstance(s.db, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite3", dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Ping checks that the database is usable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores an analysis. A zero ID or CreatedAt is filled in.
func (s *Store) Insert(ctx context.Context, rec *models.AnalysisRecord) error {
	if rec == nil || !rec.Sentiment.IsValid() {
		return errInvalidRecord
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	topics, err := encodeList(rec.Topics)
	if err != nil {
		return err
	}
	keywords, err := encodeList(rec.Keywords)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, created_at, text, title, summary, topics, sentiment, keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.CreatedAt, rec.Text, rec.Title, rec.Summary,
		topics, string(rec.Sentiment), keywords,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

// Search returns analyses matching filters, newest first.
func (s *Store) Search(ctx context.Context, filters models.SearchFilters, limit int) ([]models.AnalysisRecord, error) {
	var (
		where []string
		args  []any
	)
	if filters.Sentiment != "" {
		where = append(where, "sentiment = ?")
		args = append(args, string(filters.Sentiment))
	}
	if filters.Keyword != "" {
		where = append(where, `(EXISTS (SELECT 1 FROM json_each(analyses.keywords) WHERE json_each.value = ?)
			OR instr(lower(text), ?) > 0)`)
		args = append(args, filters.Keyword, strings.ToLower(filters.Keyword))
	}

	query := `SELECT id, created_at, text, title, summary, topics, sentiment, keywords FROM analyses`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	args = append(args, store.ClampLimit(limit))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search analyses: %w", err)
	}
	defer rows.Close()

	records := []models.AnalysisRecord{}
	for rows.Next() {
		rec, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteAnalysesBefore removes analyses created before cutoff.
func (s *Store) DeleteAnalysesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune analyses: %w", err)
	}
	return res.RowsAffected()
}

// CountAnalysesBySentiment returns the number of stored analyses per sentiment.
func (s *Store) CountAnalysesBySentiment(ctx context.Context) ([]models.SentimentCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT sentiment, COUNT(*) FROM analyses GROUP BY sentiment ORDER BY sentiment`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.SentimentCount
	for rows.Next() {
		var (
			label string
			c     models.SentimentCount
		)
		if err := rows.Scan(&label, &c.Count); err != nil {
			return nil, err
		}
		c.Sentiment = models.Sentiment(label)
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func scanAnalysis(rows *sql.Rows) (models.AnalysisRecord, error) {
	var (
		rec                      models.AnalysisRecord
		id, sentiment            string
		title                    sql.NullString
		topicsJSON, keywordsJSON string
	)
	if err := rows.Scan(&id, &rec.CreatedAt, &rec.Text, &title, &rec.Summary, &topicsJSON, &sentiment, &keywordsJSON); err != nil {
		return rec, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return rec, fmt.Errorf("invalid analysis id %q: %w", id, err)
	}
	rec.ID = parsed
	if title.Valid {
		rec.Title = &title.String
	}
	rec.Sentiment = models.Sentiment(sentiment)
	if err := json.Unmarshal([]byte(topicsJSON), &rec.Topics); err != nil {
		return rec, fmt.Errorf("invalid topics for %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(keywordsJSON), &rec.Keywords); err != nil {
		return rec, fmt.Errorf("invalid keywords for %s: %w", id, err)
	}
	return rec, nil
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
