package retrieval

import (
	"context"

	"github.com/tmc/langchaingo/embeddings"

	"meeting-rag/internal/index"
	"meeting-rag/internal/models"
)

// Locator resolves a meeting id to its index location.
type Locator interface {
	IndexPath(meetingID string) string
}

// Searcher is a read handle on one committed meeting index.
type Searcher interface {
	Count() int
	Query(ctx context.Context, embedding []float32, k int) ([]string, error)
}

type opener func(path string) (Searcher, error)

func openIndex(path string) (Searcher, error) {
	idx, err := index.Open(path)
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// Engine selects grounding context from a meeting's index. Breadth is
// corpus-adaptive: meetings with at most fullContextMax chunks return their
// whole corpus, larger ones a fixed top-k by embedding similarity.
type Engine struct {
	embedder       embeddings.Embedder
	locator        Locator
	open           opener
	topK           int
	fullContextMax int
}

func NewEngine(embedder embeddings.Embedder, locator Locator, topK, fullContextMax int) *Engine {
	return &Engine{
		embedder:       embedder,
		locator:        locator,
		open:           openIndex,
		topK:           topK,
		fullContextMax: fullContextMax,
	}
}

// Retrieve returns chunk texts relevant to query, in similarity order.
// A missing index surfaces ErrMeetingNotFound; an empty index yields an
// empty result.
func (e *Engine) Retrieve(ctx context.Context, meetingID, query string) ([]string, error) {
	idx, err := e.open(e.locator.IndexPath(meetingID))
	if err != nil {
		return nil, err
	}
	count := idx.Count()
	if count == 0 {
		return nil, nil
	}

	k := e.topK
	if count <= e.fullContextMax {
		// short meetings get their whole corpus as context
		k = count
	}

	vector, err := e.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, &models.GenerationError{Op: "query embedding", Err: err}
	}
	return idx.Query(ctx, vector, k)
}

// RetrieveMany runs one retrieval per query, concatenates results in query
// order, and removes exact-text duplicates keeping the first occurrence.
// Overlapping topic queries frequently surface the same chunk.
func (e *Engine) RetrieveMany(ctx context.Context, meetingID string, queries []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, q := range queries {
		chunks, err := e.Retrieve(ctx, meetingID, q)
		if err != nil {
			return nil, err
		}
		for _, c := range chunks {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out, nil
}
