package advisor

import (
	"context"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// APIKeyEnv names the environment variable holding the Anthropic API key.
const APIKeyEnv = "ANTHROPIC_API_KEY"

// APIAdvisor uses the Anthropic Messages API
type APIAdvisor struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAPIAdvisor creates an advisor from ANTHROPIC_API_KEY.
func NewAPIAdvisor() (*APIAdvisor, error) {
	apiKey := os.Getenv(APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrUnavailable, APIKeyEnv)
	}

	return &APIAdvisor{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.ModelClaude3_5Haiku20241022,
	}, nil
}

func (a *APIAdvisor) Name() string {
	return "anthropic-api"
}

// Advise asks the API for refactoring suggestions.
func (a *APIAdvisor) Advise(ctx context.Context, req Request) (*Advice, error) {
	return advise(ctx, a.complete, req)
}

func (a *APIAdvisor) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: 2000,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Claude API error: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("empty response from Claude API")
}
