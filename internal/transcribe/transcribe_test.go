package transcribe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-rag/internal/config"
	"meeting-rag/internal/models"
)

func writeAudioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF fake wav"), 0o644))
	return path
}

func newTestClient(url string) *Client {
	return NewClient(&config.LLMConfig{BaseURL: url, Model: "whisper-1", Key: "test-key"})
}

func TestTranscribeParsesSegmentsInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "verbose_json", r.FormValue("response_format"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"text": "hello world again",
			"segments": [
				{"start": 0.0, "end": 1.5, "text": " hello "},
				{"start": 1.5, "end": 3.0, "text": "world"},
				{"start": 3.0, "end": 4.0, "text": "again"}
			]
		}`))
	}))
	defer srv.Close()

	segments, err := newTestClient(srv.URL).Transcribe(context.Background(), writeAudioFile(t))
	require.NoError(t, err)
	require.Len(t, segments, 3)
	assert.Equal(t, " hello ", segments[0].Text)
	assert.Equal(t, 1.5, segments[1].Start)
	assert.Equal(t, "again", segments[2].Text)
}

func TestTranscribeFlatTextFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text": "just a flat transcript"}`))
	}))
	defer srv.Close()

	segments, err := newTestClient(srv.URL).Transcribe(context.Background(), writeAudioFile(t))
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, "just a flat transcript", segments[0].Text)
}

func TestTranscribeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Transcribe(context.Background(), writeAudioFile(t))
	var trErr *models.TranscriptionError
	assert.True(t, errors.As(err, &trErr))
}

func TestTranscribeMissingFile(t *testing.T) {
	_, err := newTestClient("http://localhost:1").Transcribe(context.Background(), "/does/not/exist.wav")
	var trErr *models.TranscriptionError
	assert.True(t, errors.As(err, &trErr))
}

func TestJoinSegments(t *testing.T) {
	segments := []models.Segment{
		{Text: "  first line "},
		{Text: ""},
		{Text: "second line"},
	}
	assert.Equal(t, "first line\nsecond line\n", JoinSegments(segments))
	assert.Equal(t, "", JoinSegments(nil))
}
