package clients

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/dealdesk/dealdesk/pkg/research"
)

// ChatModel adapts a langchaingo model to the pipeline's LLMClient
// interface, retrying transient failures with linear backoff.
type ChatModel struct {
	Model      llms.Model
	Logger     *slog.Logger
	MaxRetries int
}

// NewChatModel wraps a langchaingo model with 3 retries.
func NewChatModel(model llms.Model, logger *slog.Logger) *ChatModel {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatModel{Model: model, Logger: logger, MaxRetries: 3}
}

// Chat sends role-tagged messages and returns the first choice's text.
func (c *ChatModel) Chat(ctx context.Context, messages []research.Message) (string, error) {
	prompts := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		role := llms.ChatMessageTypeHuman
		if m.Role == research.RoleSystem {
			role = llms.ChatMessageTypeSystem
		}
		prompts = append(prompts, llms.TextParts(role, m.Content))
	}

	var lastErr error
	for i := 0; i < c.MaxRetries; i++ {
		if i > 0 {
			c.Logger.Warn("Retrying LLM generation", "attempt", i+1, "last_error", lastErr)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Second * time.Duration(i)):
			}
		}

		resp, err := c.Model.GenerateContent(ctx, prompts)
		if err != nil {
			lastErr = fmt.Errorf("llm generation failed: %w", err)
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("llm returned no choices")
			continue
		}
		return resp.Choices[0].Content, nil
	}

	return "", fmt.Errorf("llm call failed after %d retries: %w", c.MaxRetries, lastErr)
}
