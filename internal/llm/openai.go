package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"textinsight/internal/insight"
)

// OpenAI talks to the Responses API.
type OpenAI struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAI creates an OpenAI backend. baseURL may be empty.
func NewOpenAI(apiKey, model string, temperature float64, baseURL string) *OpenAI {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAI{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: temperature,
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Complete(ctx context.Context, system, user string) (string, error) {
	return o.respond(ctx, o.params(system, user))
}

var _ insight.StructuredBackend = (*OpenAI)(nil)

// CompleteJSON constrains the reply to schema using strict structured output.
func (o *OpenAI) CompleteJSON(ctx context.Context, system, user, name string, schema map[string]any) (string, error) {
	params := o.params(system, user)
	params.Text = responses.ResponseTextConfigParam{
		Format: responses.ResponseFormatTextConfigUnionParam{
			OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
				Name:        name,
				Schema:      schema,
				Strict:      openai.Bool(true),
				Description: openai.String("Summary and topics JSON"),
				Type:        "json_schema",
			},
		},
	}
	return o.respond(ctx, params)
}

func (o *OpenAI) params(system, user string) responses.ResponseNewParams {
	return responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(defaultMaxTokens),
		Instructions:    openai.String(system),
		Temperature:     openai.Float(o.temperature),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(user, responses.EasyInputMessageRoleUser),
			},
		},
	}
}

func (o *OpenAI) respond(ctx context.Context, params responses.ResponseNewParams) (string, error) {
	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai responses: %w", err)
	}
	return joinText([]string{resp.OutputText()})
}
