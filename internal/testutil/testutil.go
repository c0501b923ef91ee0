// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"textinsight/internal/db"
	"textinsight/internal/db/sqlite"
	"textinsight/internal/models"
	"textinsight/internal/store"
)

// TestDB creates a Postgres connection and returns a cleanup function.
// Uses TEST_DATABASE_URL and skips the test when it is not set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanupTestData(ctx, database.Pool)
	cleanup := func() {
		cleanupTestData(ctx, database.Pool)
		database.Close()
	}

	return database, cleanup
}

// cleanupTestData removes all test data from the database.
func cleanupTestData(ctx context.Context, pool *pgxpool.Pool) {
	pool.Exec(ctx, "DELETE FROM analyses")
}

// TestSQLite opens a migrated SQLite store in the test's temp dir. It is
// closed when the test ends.
func TestSQLite(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "textinsight.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// CreateTestAnalysis stores an analysis created at the given time and
// returns it.
func CreateTestAnalysis(t *testing.T, repo store.Repository, text string, sentiment models.Sentiment, keywords []string, at time.Time) *models.AnalysisRecord {
	t.Helper()

	rec := models.NewAnalysisRecord(text, models.AnalysisResult{
		Topics:    []string{"general", "update", "text"},
		Sentiment: sentiment,
		Keywords:  keywords,
		Summary:   text,
	})
	rec.CreatedAt = at
	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("failed to create test analysis: %v", err)
	}
	return rec
}
