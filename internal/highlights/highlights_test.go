package highlights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-rag/internal/models"
)

type fakeRetriever struct {
	chunks  []string
	err     error
	queries []string
}

func (f *fakeRetriever) RetrieveMany(ctx context.Context, meetingID string, queries []string) ([]string, error) {
	f.queries = queries
	if f.err != nil {
		return nil, f.err
	}
	return f.chunks, nil
}

type fakeGenerator struct {
	reply  string
	err    error
	prompt string
	calls  int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeStore struct {
	saved map[string]string
}

func newFakeStore() *fakeStore { return &fakeStore{saved: make(map[string]string)} }

func (f *fakeStore) SaveHighlights(meetingID, content string) error {
	f.saved[meetingID] = content
	return nil
}

func chunkSet(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("chunk %02d", i)
	}
	return out
}

func TestSummarize(t *testing.T) {
	retr := &fakeRetriever{chunks: chunkSet(3)}
	gen := &fakeGenerator{reply: "Budget approved.\nLaunch moved to Friday.\n"}
	st := newFakeStore()
	e := NewEngine(retr, gen, st, 12, 8)

	lines, err := e.Summarize(context.Background(), "m1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Budget approved.", "Launch moved to Friday."}, lines)
	assert.Equal(t, "Budget approved.\nLaunch moved to Friday.", st.saved["m1"])
	assert.Equal(t, models.HighlightQueries, retr.queries, "the fixed battery runs as-is")
}

func TestSummarizeCapsContext(t *testing.T) {
	retr := &fakeRetriever{chunks: chunkSet(20)}
	gen := &fakeGenerator{reply: "Something."}
	e := NewEngine(retr, gen, newFakeStore(), 12, 8)

	_, err := e.Summarize(context.Background(), "m1")
	require.NoError(t, err)

	assert.Contains(t, gen.prompt, "chunk 11", "earliest-retrieved chunks survive truncation")
	assert.NotContains(t, gen.prompt, "chunk 12", "context capped at max_context_chunks")
}

func TestSummarizeEmptyRetrieval(t *testing.T) {
	gen := &fakeGenerator{reply: "should not run"}
	st := newFakeStore()
	e := NewEngine(&fakeRetriever{}, gen, st, 12, 8)

	lines, err := e.Summarize(context.Background(), "m1")
	require.NoError(t, err)
	assert.Empty(t, lines, "empty retrieval yields an empty highlights document, not an error")
	assert.Zero(t, gen.calls)

	content, ok := st.saved["m1"]
	assert.True(t, ok, "empty document still persisted")
	assert.Equal(t, "", content)
}

func TestSummarizeCapsHighlightCount(t *testing.T) {
	var lines []string
	for i := 0; i < 15; i++ {
		lines = append(lines, fmt.Sprintf("Statement number %d.", i))
	}
	gen := &fakeGenerator{reply: strings.Join(lines, "\n")}
	e := NewEngine(&fakeRetriever{chunks: chunkSet(3)}, gen, newFakeStore(), 12, 8)

	got, err := e.Summarize(context.Background(), "m1")
	require.NoError(t, err)
	assert.Len(t, got, 8)
}

func TestSummarizeMissingMeeting(t *testing.T) {
	e := NewEngine(&fakeRetriever{err: models.ErrMeetingNotFound}, &fakeGenerator{}, newFakeStore(), 12, 8)

	_, err := e.Summarize(context.Background(), "ghost")
	assert.True(t, errors.Is(err, models.ErrMeetingNotFound))
}

func TestParseHighlightsStripsBullets(t *testing.T) {
	raw := "- Budget approved.\n\n* Launch on Friday.\n2. Hiring freeze continues.\n• Ship the fix.\n3) Close the ticket."

	got := parseHighlights(raw, 8)
	assert.Equal(t, []string{
		"Budget approved.",
		"Launch on Friday.",
		"Hiring freeze continues.",
		"Ship the fix.",
		"Close the ticket.",
	}, got)
}

func TestParseHighlightsKeepsLeadingNumbersInSentences(t *testing.T) {
	got := parseHighlights("2026 targets were fixed at the meeting.", 8)
	assert.Equal(t, []string{"2026 targets were fixed at the meeting."}, got)
}
