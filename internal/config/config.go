package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where LoadConfig looks when no path is given.
const DefaultPath = "./configs/config.yaml"

// LLMConfig describes one model endpoint. Provider selects the client:
// "ollama" (keyless, local) or "openai" (any OpenAI-compatible API).
type LLMConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	Key      string `yaml:"key"`
	Model    string `yaml:"model"`
}

type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

// RAGConfig holds every retrieval and conversation tunable. The defaults
// mirror the constants the system was designed around.
type RAGConfig struct {
	ChunkSize        int `yaml:"chunk_size"`
	ChunkOverlap     int `yaml:"chunk_overlap"`
	TopK             int `yaml:"top_k"`
	FullContextMax   int `yaml:"full_context_max"`
	HistoryWindow    int `yaml:"history_window"`
	MaxContextChunks int `yaml:"max_context_chunks"`
	MaxHighlights    int `yaml:"max_highlights"`
}

type Config struct {
	Storage       StorageConfig `yaml:"storage"`
	FFmpegPath    string        `yaml:"ffmpeg_path"`
	EmbedLLM      LLMConfig     `yaml:"embed_llm"`
	ChatLLM       LLMConfig     `yaml:"chat_llm"`
	Transcription LLMConfig     `yaml:"transcription"`
	RAG           RAGConfig     `yaml:"rag"`
}

func Default() *Config {
	return &Config{
		Storage:    StorageConfig{DataDir: "./data"},
		FFmpegPath: "ffmpeg",
		EmbedLLM: LLMConfig{
			Provider: "ollama",
			BaseURL:  "http://localhost:11434",
			Model:    "nomic-embed-text",
		},
		ChatLLM: LLMConfig{
			Provider: "ollama",
			BaseURL:  "http://localhost:11434",
			Model:    "llama3.1",
		},
		Transcription: LLMConfig{
			BaseURL: "http://localhost:8000",
			Model:   "whisper-1",
		},
		RAG: RAGConfig{
			ChunkSize:        150,
			ChunkOverlap:     30,
			TopK:             5,
			FullContextMax:   10,
			HistoryWindow:    4,
			MaxContextChunks: 12,
			MaxHighlights:    8,
		},
	}
}

// LoadConfig reads the yaml config at path over the defaults. A missing file
// is not an error; the defaults plus environment overrides apply.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MEETINGRAG_EMBED_API_KEY"); v != "" {
		cfg.EmbedLLM.Key = v
	}
	if v := os.Getenv("MEETINGRAG_CHAT_API_KEY"); v != "" {
		cfg.ChatLLM.Key = v
	}
	if v := os.Getenv("MEETINGRAG_TRANSCRIBE_API_KEY"); v != "" {
		cfg.Transcription.Key = v
	}
	if v := os.Getenv("MEETINGRAG_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
}
