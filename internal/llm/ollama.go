package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	ollama "github.com/ollama/ollama/api"
)

// Ollama talks to a local or self-hosted Ollama server.
type Ollama struct {
	client      *ollama.Client
	model       string
	temperature float64
}

// NewOllama creates an Ollama backend for host, e.g. "http://localhost:11434".
func NewOllama(host, model string, temperature float64) (*Ollama, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("could not parse ollama host: %w", err)
	}
	return &Ollama{
		client:      ollama.NewClient(base, http.DefaultClient),
		model:       model,
		temperature: temperature,
	}, nil
}

func (o *Ollama) Name() string { return "ollama" }

func (o *Ollama) Complete(ctx context.Context, system, user string) (string, error) {
	stream := false
	req := &ollama.ChatRequest{
		Model: o.model,
		Messages: []ollama.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream: &stream,
		Options: map[string]any{
			"temperature": o.temperature,
		},
	}

	var sb strings.Builder
	err := o.client.Chat(ctx, req, func(res ollama.ChatResponse) error {
		sb.WriteString(res.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}
	return joinText([]string{sb.String()})
}
