package retrieval

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-rag/internal/models"
)

type fakeEmbedder struct {
	queries int
	fail    bool
}

func (f *fakeEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	if f.fail {
		return nil, errors.New("embedding backend down")
	}
	f.queries++
	return []float32{1, 0, 0}, nil
}

type fakeIndex struct {
	chunks []string
}

func (f *fakeIndex) Count() int { return len(f.chunks) }

func (f *fakeIndex) Query(ctx context.Context, embedding []float32, k int) ([]string, error) {
	if k > len(f.chunks) {
		k = len(f.chunks)
	}
	return f.chunks[:k], nil
}

type idLocator struct{}

func (idLocator) IndexPath(meetingID string) string { return meetingID }

func newTestEngine(idx Searcher, emb *fakeEmbedder) *Engine {
	e := NewEngine(emb, idLocator{}, 5, 10)
	e.open = func(path string) (Searcher, error) {
		if idx == nil {
			return nil, models.ErrMeetingNotFound
		}
		return idx, nil
	}
	return e
}

func chunkSet(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("chunk %02d", i)
	}
	return out
}

func TestRetrieveMissingMeeting(t *testing.T) {
	e := newTestEngine(nil, &fakeEmbedder{})

	_, err := e.Retrieve(context.Background(), "ghost", "anything")
	assert.True(t, errors.Is(err, models.ErrMeetingNotFound))
}

func TestRetrieveSmallCorpusReturnsEverything(t *testing.T) {
	e := newTestEngine(&fakeIndex{chunks: chunkSet(7)}, &fakeEmbedder{})

	got, err := e.Retrieve(context.Background(), "m1", "what was discussed?")
	require.NoError(t, err)
	assert.Len(t, got, 7, "corpora at or under full_context_max return the whole corpus")
}

func TestRetrieveLargeCorpusTopK(t *testing.T) {
	e := newTestEngine(&fakeIndex{chunks: chunkSet(40)}, &fakeEmbedder{})

	got, err := e.Retrieve(context.Background(), "m1", "deadlines")
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestRetrieveEmptyIndex(t *testing.T) {
	emb := &fakeEmbedder{}
	e := newTestEngine(&fakeIndex{}, emb)

	got, err := e.Retrieve(context.Background(), "m1", "anything")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, emb.queries, "empty index must not trigger an embedding call")
}

func TestRetrieveEmbeddingFailure(t *testing.T) {
	e := newTestEngine(&fakeIndex{chunks: chunkSet(3)}, &fakeEmbedder{fail: true})

	_, err := e.Retrieve(context.Background(), "m1", "anything")
	var genErr *models.GenerationError
	assert.True(t, errors.As(err, &genErr))
}

func TestRetrieveManyDedup(t *testing.T) {
	// every query surfaces the same chunks
	e := newTestEngine(&fakeIndex{chunks: chunkSet(4)}, &fakeEmbedder{})

	got, err := e.RetrieveMany(context.Background(), "m1", []string{"topics", "decisions", "deadlines"})
	require.NoError(t, err)
	assert.Equal(t, chunkSet(4), got, "duplicates removed, first-seen order kept")
}

func TestRetrieveManyOneRetrievalPerQuery(t *testing.T) {
	emb := &fakeEmbedder{}
	e := newTestEngine(&fakeIndex{chunks: chunkSet(4)}, emb)

	_, err := e.RetrieveMany(context.Background(), "m1", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, 3, emb.queries)
}

func TestRetrieveManyPropagatesNotFound(t *testing.T) {
	e := newTestEngine(nil, &fakeEmbedder{})

	_, err := e.RetrieveMany(context.Background(), "ghost", []string{"a"})
	assert.True(t, errors.Is(err, models.ErrMeetingNotFound))
}
