// Package analysis composes keyword ranking, sentiment scoring, title
// detection and insight generation into a single AnalysisResult.
package analysis

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"textinsight/internal/insight"
	"textinsight/internal/keywords"
	"textinsight/internal/metrics"
	"textinsight/internal/models"
	"textinsight/internal/sentiment"
)

// MaxTitleLength is the longest line accepted as a title.
const MaxTitleLength = 120

var lineBreak = regexp.MustCompile(`\r?\n`)

// Analyzer builds AnalysisResults. It is safe for concurrent use.
type Analyzer struct {
	generator   *insight.Generator
	maxKeywords int
}

// New creates an Analyzer around generator. A nil generator is treated as
// one without a backend.
func New(generator *insight.Generator) *Analyzer {
	if generator == nil {
		generator = insight.New(nil)
	}
	return &Analyzer{generator: generator, maxKeywords: keywords.DefaultMax}
}

// HasBackend reports whether summaries come from a generative backend.
func (a *Analyzer) HasBackend() bool {
	return a.generator.HasBackend()
}

// Build analyzes text. It never fails; backend problems degrade to the
// deterministic heuristics inside the generator.
func (a *Analyzer) Build(ctx context.Context, text string) models.AnalysisResult {
	start := time.Now()

	var (
		result models.AnalysisResult
		source insight.Source
		g      errgroup.Group
	)

	g.Go(func() error {
		in := a.generator.Analyze(ctx, text)
		result.Summary, result.Topics, source = in.Summary, in.Topics, in.Source
		return nil
	})
	g.Go(func() error {
		result.Keywords = keywords.ExtractTopKeywords(text, a.maxKeywords)
		return nil
	})
	g.Go(func() error {
		result.Sentiment = sentiment.NaiveSentiment(text)
		return nil
	})
	g.Go(func() error {
		result.Title = ExtractTitle(text)
		return nil
	})
	_ = g.Wait()

	metrics.RecordAnalysis(result.Sentiment, string(source), time.Since(start))
	return result
}

// ExtractTitle returns the first trimmed line that is non-empty and at most
// MaxTitleLength characters long, or nil when no line qualifies.
func ExtractTitle(text string) *string {
	for _, line := range lineBreak.Split(text, -1) {
		line = strings.TrimSpace(line)
		if n := utf8.RuneCountInString(line); n > 0 && n <= MaxTitleLength {
			return &line
		}
	}
	return nil
}
