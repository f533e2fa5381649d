package app

import (
	"fmt"

	"meeting-rag/internal/chat"
	"meeting-rag/internal/chunker"
	"meeting-rag/internal/config"
	"meeting-rag/internal/embedding"
	"meeting-rag/internal/highlights"
	"meeting-rag/internal/llmservice"
	"meeting-rag/internal/media"
	"meeting-rag/internal/pipeline"
	"meeting-rag/internal/retrieval"
	"meeting-rag/internal/store"
	"meeting-rag/internal/transcribe"
)

// App holds every engine, wired once at startup.
type App struct {
	Store      *store.Manager
	Pipeline   *pipeline.Pipeline
	Retrieval  *retrieval.Engine
	Chat       *chat.Engine
	Highlights *highlights.Engine
}

func New(cfg *config.Config, debug bool) (*App, error) {
	st, err := store.NewManager(cfg.Storage.DataDir, debug)
	if err != nil {
		return nil, fmt.Errorf("initializing store: %w", err)
	}

	embedder, err := embedding.New(&cfg.EmbedLLM)
	if err != nil {
		return nil, fmt.Errorf("initializing embedder: %w", err)
	}

	generator, err := llmservice.NewClient(&cfg.ChatLLM)
	if err != nil {
		return nil, fmt.Errorf("initializing language model client: %w", err)
	}

	pipe := &pipeline.Pipeline{
		Transcoder:  media.NewFFmpeg(cfg.FFmpegPath),
		Transcriber: transcribe.NewClient(&cfg.Transcription),
		Embedder:    embedder,
		Store:       st,
		Splitter:    chunker.New(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap),
	}

	retr := retrieval.NewEngine(embedder, st, cfg.RAG.TopK, cfg.RAG.FullContextMax)

	return &App{
		Store:      st,
		Pipeline:   pipe,
		Retrieval:  retr,
		Chat:       chat.NewEngine(retr, generator, cfg.RAG.HistoryWindow),
		Highlights: highlights.NewEngine(retr, generator, st, cfg.RAG.MaxContextChunks, cfg.RAG.MaxHighlights),
	}, nil
}

func (a *App) Close() error { return a.Store.Close() }
