package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 150, cfg.RAG.ChunkSize)
	assert.Equal(t, 30, cfg.RAG.ChunkOverlap)
	assert.Equal(t, 5, cfg.RAG.TopK)
	assert.Equal(t, 10, cfg.RAG.FullContextMax)
	assert.Equal(t, 4, cfg.RAG.HistoryWindow)
	assert.Equal(t, "ollama", cfg.EmbedLLM.Provider)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
storage:
  data_dir: /var/lib/meetings
rag:
  top_k: 7
  history_window: 5
chat_llm:
  provider: openai
  base_url: https://api.groq.com/openai/v1
  model: openai/gpt-oss-120b
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/meetings", cfg.Storage.DataDir)
	assert.Equal(t, 7, cfg.RAG.TopK)
	assert.Equal(t, 5, cfg.RAG.HistoryWindow)
	assert.Equal(t, "openai", cfg.ChatLLM.Provider)
	// untouched keys keep their defaults
	assert.Equal(t, 150, cfg.RAG.ChunkSize)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("MEETINGRAG_CHAT_API_KEY", "sk-from-env")
	t.Setenv("MEETINGRAG_DATA_DIR", "/tmp/meetings-env")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sk-from-env", cfg.ChatLLM.Key)
	assert.Equal(t, "/tmp/meetings-env", cfg.Storage.DataDir)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [not: a: map"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
