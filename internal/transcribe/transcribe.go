package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"meeting-rag/internal/config"
	"meeting-rag/internal/models"
)

// Transcriber turns an audio file into ordered text segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]models.Segment, error)
}

// Client posts audio to an OpenAI-compatible /v1/audio/transcriptions
// endpoint (whisper-server, OpenAI, Groq all speak this shape).
type Client struct {
	baseURL string
	key     string
	model   string
	http    *http.Client
}

func NewClient(cfg *config.LLMConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		key:     cfg.Key,
		model:   cfg.Model,
		http:    &http.Client{Timeout: 10 * time.Minute},
	}
}

type apiResponse struct {
	Text     string `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (c *Client) Transcribe(ctx context.Context, audioPath string) ([]models.Segment, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, &models.TranscriptionError{Err: fmt.Errorf("opening audio file: %w", err)}
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("model", c.model); err != nil {
		return nil, &models.TranscriptionError{Err: err}
	}
	if err := writer.WriteField("response_format", "verbose_json"); err != nil {
		return nil, &models.TranscriptionError{Err: err}
	}
	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, &models.TranscriptionError{Err: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, &models.TranscriptionError{Err: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &models.TranscriptionError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/audio/transcriptions", body)
	if err != nil {
		return nil, &models.TranscriptionError{Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimPrefix(c.key, "Bearer "))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &models.TranscriptionError{Err: fmt.Errorf("calling transcription API: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.TranscriptionError{Err: fmt.Errorf("reading response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &models.TranscriptionError{Err: fmt.Errorf("transcription API error (HTTP %d): %s", resp.StatusCode, string(respBody))}
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, &models.TranscriptionError{Err: fmt.Errorf("parsing response: %w", err)}
	}

	segments := make([]models.Segment, 0, len(apiResp.Segments))
	for _, seg := range apiResp.Segments {
		segments = append(segments, models.Segment{Text: seg.Text, Start: seg.Start, End: seg.End})
	}
	// some servers return only the flat text
	if len(segments) == 0 && strings.TrimSpace(apiResp.Text) != "" {
		segments = append(segments, models.Segment{Text: apiResp.Text})
	}
	return segments, nil
}

// JoinSegments concatenates trimmed segment texts in chronological order,
// one segment per line.
func JoinSegments(segments []models.Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String()
}
