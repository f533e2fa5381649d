package llmservice

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"meeting-rag/internal/config"
	"meeting-rag/internal/models"
)

// Generator is the language model collaborator: one prompt in, one text out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client wraps a langchaingo chat model constructed once at startup.
type Client struct {
	llm llms.Model
}

func NewClient(cfg *config.LLMConfig) (*Client, error) {
	var (
		llm llms.Model
		err error
	)
	if cfg.Provider == "openai" {
		llm, err = openai.New(
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
			openai.WithModel(cfg.Model),
		)
	} else {
		llm, err = ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Model),
		)
	}
	if err != nil {
		return nil, err
	}
	return &Client{llm: llm}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}
	resp, err := c.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", &models.GenerationError{Op: "chat completion", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &models.GenerationError{Op: "chat completion", Err: errors.New("no choices returned")}
	}
	return resp.Choices[0].Content, nil
}
