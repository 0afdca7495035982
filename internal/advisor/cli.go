package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	claudecode "github.com/severity1/claude-agent-sdk-go"
)

// CLIAdvisor runs queries through the Claude Code CLI
type CLIAdvisor struct {
	cwd string
}

// NewCLIAdvisor creates an advisor working in cwd. The Read tool is allowed
// so the model can look at collaborators of the class.
func NewCLIAdvisor(cwd string) (*CLIAdvisor, error) {
	return &CLIAdvisor{cwd: cwd}, nil
}

func (a *CLIAdvisor) Name() string {
	return "claude-code"
}

// Advise asks Claude Code for refactoring suggestions.
func (a *CLIAdvisor) Advise(ctx context.Context, req Request) (*Advice, error) {
	return advise(ctx, a.complete, req)
}

func (a *CLIAdvisor) options() []claudecode.Option {
	opts := []claudecode.Option{
		claudecode.WithModel("sonnet"),
		claudecode.WithMaxTurns(3),
		claudecode.WithAllowedTools("Read"),
	}
	if a.cwd != "" {
		opts = append(opts, claudecode.WithCwd(a.cwd))
	}
	return opts
}

func (a *CLIAdvisor) complete(ctx context.Context, prompt string) (string, error) {
	iterator, err := claudecode.Query(ctx, prompt, a.options()...)
	if err != nil {
		if claudecode.IsCLINotFoundError(err) {
			return "", fmt.Errorf("%w: Claude Code CLI not found", ErrUnavailable)
		}
		return "", fmt.Errorf("claude code error: %w", err)
	}
	defer iterator.Close()

	var responseBuilder strings.Builder
	for {
		message, err := iterator.Next(ctx)
		if err != nil {
			if errors.Is(err, claudecode.ErrNoMoreMessages) {
				break
			}
			return "", fmt.Errorf("error reading claude response: %w", err)
		}

		if assistantMsg, ok := message.(*claudecode.AssistantMessage); ok {
			for _, block := range assistantMsg.Content {
				if textBlock, ok := block.(*claudecode.TextBlock); ok {
					responseBuilder.WriteString(textBlock.Text)
				}
			}
		}
	}

	responseText := responseBuilder.String()
	if responseText == "" {
		return "", fmt.Errorf("empty response from claude code")
	}
	return responseText, nil
}
