package index

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"meeting-rag/internal/models"
)

// Entry is one (chunk text, embedding vector, chunk id) triple.
type Entry struct {
	ChunkID   int
	Content   string
	Embedding []float32
}

// Builder writes a fresh index into a temp directory and swaps it into place
// on Commit, so a half-written index is never visible at the final path.
type Builder struct {
	db         *chromem.DB
	collection *chromem.Collection
	tmpPath    string
	finalPath  string
}

func NewBuilder(path string) (*Builder, error) {
	tmp := path + ".tmp"
	if err := os.RemoveAll(tmp); err != nil {
		return nil, fmt.Errorf("failed to clear temp index: %w", err)
	}
	db, err := chromem.NewPersistentDB(tmp, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	c, err := db.GetOrCreateCollection(models.CollectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return &Builder{db: db, collection: c, tmpPath: tmp, finalPath: path}, nil
}

// Add inserts the entries with their precomputed embeddings.
func (b *Builder) Add(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]chromem.Document, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, chromem.Document{
			ID:        strconv.Itoa(e.ChunkID),
			Content:   e.Content,
			Metadata:  map[string]string{"chunk_id": strconv.Itoa(e.ChunkID)},
			Embedding: e.Embedding,
		})
	}
	if err := b.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	return nil
}

// Commit replaces whatever index previously lived at the final path.
func (b *Builder) Commit() error {
	if err := os.RemoveAll(b.finalPath); err != nil {
		return fmt.Errorf("failed to remove previous index: %w", err)
	}
	if err := os.Rename(b.tmpPath, b.finalPath); err != nil {
		return fmt.Errorf("failed to publish index: %w", err)
	}
	return nil
}

// Abort discards the half-built index.
func (b *Builder) Abort() {
	_ = os.RemoveAll(b.tmpPath)
}

// Index is a read handle on one meeting's committed index.
type Index struct {
	collection *chromem.Collection
}

// Open fails with ErrMeetingNotFound when no committed index exists at path.
func Open(path string) (*Index, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, models.ErrMeetingNotFound
	}
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	c, err := db.GetOrCreateCollection(models.CollectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open collection: %w", err)
	}
	return &Index{collection: c}, nil
}

func (i *Index) Count() int { return i.collection.Count() }

// Query returns chunk contents ordered by similarity to the query embedding.
// k is clamped to the corpus size.
func (i *Index) Query(ctx context.Context, embedding []float32, k int) ([]string, error) {
	count := i.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}
	if k < 1 {
		k = 1
	}
	results, err := i.collection.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}
	contents := make([]string, 0, len(results))
	for _, r := range results {
		contents = append(contents, r.Content)
	}
	return contents, nil
}
