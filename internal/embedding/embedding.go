package embedding

import (
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"meeting-rag/internal/config"
)

// New builds the embedding collaborator for the configured provider.
func New(cfg *config.LLMConfig) (embeddings.Embedder, error) {
	if cfg.Provider == "openai" {
		return NewOpenAIEmbedder(cfg)
	}
	return NewOllamaEmbedder(cfg)
}

func NewOllamaEmbedder(cfg *config.LLMConfig) (embeddings.Embedder, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(llm)
}

// NewOpenAIEmbedder targets any OpenAI-compatible embeddings endpoint.
func NewOpenAIEmbedder(cfg *config.LLMConfig) (embeddings.Embedder, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
		openai.WithEmbeddingModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}
	return embeddings.NewEmbedder(llm)
}
