package highlights

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"meeting-rag/internal/llmservice"
	"meeting-rag/internal/models"
)

// Retriever is the batch form of the retrieval engine.
type Retriever interface {
	RetrieveMany(ctx context.Context, meetingID string, queries []string) ([]string, error)
}

// Store persists the latest highlights document per meeting.
type Store interface {
	SaveHighlights(meetingID, content string) error
}

// Engine distills a meeting into a short list of decision, action and
// deadline statements.
type Engine struct {
	retriever        Retriever
	generator        llmservice.Generator
	store            Store
	maxContextChunks int
	maxHighlights    int
}

func NewEngine(retriever Retriever, generator llmservice.Generator, store Store, maxContextChunks, maxHighlights int) *Engine {
	return &Engine{
		retriever:        retriever,
		generator:        generator,
		store:            store,
		maxContextChunks: maxContextChunks,
		maxHighlights:    maxHighlights,
	}
}

// Summarize runs the fixed topic battery against the meeting's index, asks
// the language model for highlight statements, persists the result as the
// meeting's current highlights document, and returns it. A meeting whose
// retrieval comes back empty yields an empty document, not an error.
func (e *Engine) Summarize(ctx context.Context, meetingID string) ([]string, error) {
	chunks, err := e.retriever.RetrieveMany(ctx, meetingID, models.HighlightQueries)
	if err != nil {
		return nil, err
	}
	// earliest-retrieved chunks carry the highest relevance; truncate the tail
	if len(chunks) > e.maxContextChunks {
		chunks = chunks[:e.maxContextChunks]
	}
	log.Debug().Str("meeting_id", meetingID).Int("context_chunks", len(chunks)).Msg("extracting highlights")

	if len(chunks) == 0 {
		if err := e.store.SaveHighlights(meetingID, ""); err != nil {
			return nil, err
		}
		return nil, nil
	}

	prompt := fmt.Sprintf(models.HighlightsPromptTemplate, e.maxHighlights, strings.Join(chunks, "\n\n"))
	raw, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	lines := parseHighlights(raw, e.maxHighlights)
	if err := e.store.SaveHighlights(meetingID, strings.Join(lines, "\n")); err != nil {
		return nil, err
	}
	return lines, nil
}

// parseHighlights splits the raw model output into statements, dropping
// blank lines and any bullet or numbering the model added anyway.
func parseHighlights(raw string, max int) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = stripBullet(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == max {
			break
		}
	}
	return out
}

func stripBullet(line string) string {
	line = strings.TrimSpace(line)
	for _, prefix := range []string{"- ", "* ", "• "} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(line[len(prefix):])
		}
	}
	// numbered list markers like "3. " or "3) "
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(line) && (line[i] == '.' || line[i] == ')') && line[i+1] == ' ' {
		return strings.TrimSpace(line[i+2:])
	}
	return line
}
