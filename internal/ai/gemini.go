package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements JSONGenerator and TextGenerator on one Gemini client.
type GeminiProvider struct {
	client    *genai.Client
	jsonModel *genai.GenerativeModel
	textModel *genai.GenerativeModel
}

type GeminiOptions struct {
	APIKey      string
	Model       string
	Temperature float32
}

// NewGeminiProvider initializes a new Gemini client.
func NewGeminiProvider(ctx context.Context, opts GeminiOptions) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	name := opts.Model
	if name == "" {
		name = DefaultModel
	}
	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = 0.4
	}

	jsonModel := client.GenerativeModel(name)
	jsonModel.ResponseMIMEType = "application/json"
	jsonModel.SetTemperature(temperature)

	textModel := client.GenerativeModel(name)
	textModel.SetTemperature(temperature)

	return &GeminiProvider{
		client:    client,
		jsonModel: jsonModel,
		textModel: textModel,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// GenerateJSON asks the JSON-mode model and returns its raw text, fences included.
func (p *GeminiProvider) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return generate(ctx, p.jsonModel, prompt)
}

func (p *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	return generate(ctx, p.textModel, prompt)
}

func generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", ErrEmptyResponse
	}
	return text.String(), nil
}
