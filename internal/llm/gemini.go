package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini talks to the Google Generative Language API.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

// NewGemini creates a Gemini backend. Close releases the underlying client.
func NewGemini(ctx context.Context, apiKey, model string, temperature float64, opts ...option.ClientOption) (*Gemini, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create gemini client: %w", err)
	}
	m := client.GenerativeModel(model)
	m.SetTemperature(float32(temperature))
	m.SetMaxOutputTokens(defaultMaxTokens)
	return &Gemini{client: client, model: m, name: model}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Complete(ctx context.Context, system, user string) (string, error) {
	// GenerativeModel is not safe to mutate concurrently; copy per call.
	m := *g.model
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := m.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	var parts []string
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				parts = append(parts, string(text))
			}
		}
		break
	}
	return joinText(parts)
}

func (g *Gemini) Close() error {
	return g.client.Close()
}
