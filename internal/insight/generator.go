// Package insight turns raw text into a short summary and topic list.
//
// A Generator built with a Backend asks the backend for both and interprets
// its free-form reply. Without a backend, or whenever the backend fails or
// replies with something unusable, the deterministic Summarize and
// FallbackTopics heuristics are used instead. Analyze never returns an error.
package insight

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"textinsight/internal/metrics"
)

// Source identifies where an Insight came from.
type Source string

const (
	SourceBackend  Source = "backend"
	SourceFallback Source = "fallback"
)

// Insight is the summary and topics for one text.
type Insight struct {
	Summary string
	Topics  []string
	Source  Source
}

// Backend is a generative text service.
type Backend interface {
	Name() string
	Complete(ctx context.Context, system, user string) (string, error)
}

// StructuredBackend is a Backend that can constrain its reply to a JSON schema.
type StructuredBackend interface {
	Backend
	CompleteJSON(ctx context.Context, system, user, name string, schema map[string]any) (string, error)
}

// Generator produces Insights. It is safe for concurrent use.
type Generator struct {
	backend    Backend
	parser     TopicParser
	structured bool
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithTopicParser replaces the default BracketParser.
func WithTopicParser(p TopicParser) Option {
	return func(g *Generator) { g.parser = p }
}

// WithStructuredOutput requests schema-constrained replies from backends
// that implement StructuredBackend.
func WithStructuredOutput(enabled bool) Option {
	return func(g *Generator) { g.structured = enabled }
}

// WithTimeout bounds each backend call. Zero means no bound beyond ctx.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) { g.timeout = d }
}

// WithLogger sets the logger used for backend failures.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New creates a Generator. A nil backend selects the deterministic mode.
func New(backend Backend, opts ...Option) *Generator {
	g := &Generator{
		backend: backend,
		parser:  BracketParser{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// HasBackend reports whether the generator was built with a backend.
func (g *Generator) HasBackend() bool {
	return g.backend != nil
}

// Analyze summarizes text and extracts up to three topics.
func (g *Generator) Analyze(ctx context.Context, text string) Insight {
	if g.backend == nil {
		return Fallback(text)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if g.structured {
		if sb, ok := g.backend.(StructuredBackend); ok {
			return g.analyzeStructured(ctx, sb, text)
		}
	}
	return g.analyzeFreeform(ctx, text)
}

// Fallback builds an Insight from the deterministic heuristics alone.
func Fallback(text string) Insight {
	return Insight{
		Summary: Summarize(text),
		Topics:  FallbackTopics(text),
		Source:  SourceFallback,
	}
}

func (g *Generator) analyzeFreeform(ctx context.Context, text string) Insight {
	reply, err := g.call(func() (string, error) {
		return g.backend.Complete(ctx, systemPrompt, userPrompt(freeformInstructions, text))
	})
	if err != nil {
		return g.degrade(text, err)
	}

	summary, ok := FirstLine(reply)
	if !ok {
		metrics.RecordBackendRequest(g.backend.Name(), metrics.OutcomeEmpty)
		g.logger.Warn("backend returned an empty reply, using fallback", "provider", g.backend.Name())
		return Fallback(text)
	}
	metrics.RecordBackendRequest(g.backend.Name(), metrics.OutcomeOK)

	topics, ok := g.parseTopics(reply)
	if !ok {
		g.logger.Debug("no topic list in backend reply", "provider", g.backend.Name())
		topics = FallbackTopics(text)
	}

	return Insight{Summary: summary, Topics: topics, Source: SourceBackend}
}

func (g *Generator) analyzeStructured(ctx context.Context, sb StructuredBackend, text string) Insight {
	reply, err := g.call(func() (string, error) {
		return sb.CompleteJSON(ctx, systemPrompt, userPrompt(structuredInstructions, text), structuredReplyName, structuredReplySchema)
	})
	if err != nil {
		return g.degrade(text, err)
	}

	out, err := decodeStructuredReply(reply)
	if err != nil {
		return g.degrade(text, err)
	}

	summary, ok := FirstLine(out.Summary)
	if !ok {
		metrics.RecordBackendRequest(sb.Name(), metrics.OutcomeEmpty)
		return Fallback(text)
	}
	metrics.RecordBackendRequest(sb.Name(), metrics.OutcomeOK)

	topics := out.Topics
	if topics == nil {
		topics = FallbackTopics(text)
	}
	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}

	return Insight{Summary: summary, Topics: topics, Source: SourceBackend}
}

// call runs fn and converts a panic into an error.
func (g *Generator) call(fn func() (string, error)) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend panic: %v", r)
		}
	}()
	return fn()
}

// parseTopics runs the topic parser. A panicking parser counts as no list.
func (g *Generator) parseTopics(reply string) (topics []string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Warn("topic parser panicked, using fallback topics", "panic", r)
			topics, ok = nil, false
		}
	}()
	return g.parser.ParseTopics(reply)
}

func (g *Generator) degrade(text string, err error) Insight {
	metrics.RecordBackendRequest(g.backend.Name(), metrics.OutcomeError)
	g.logger.Warn("backend unavailable, using fallback", "provider", g.backend.Name(), "error", err)
	return Fallback(text)
}
