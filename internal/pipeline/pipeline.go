package pipeline

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"meeting-rag/internal/chunker"
	"meeting-rag/internal/index"
	"meeting-rag/internal/media"
	"meeting-rag/internal/models"
	"meeting-rag/internal/transcribe"
)

// Stage names, in execution order.
const (
	StageMediaToAudio       = "media_to_audio"
	StageAudioToTranscript  = "audio_to_transcript"
	StageTranscriptToChunks = "transcript_to_chunks"
	StageChunksToIndex      = "chunks_to_index"
)

// Store is the slice of the meeting store manager the pipeline needs.
type Store interface {
	IndexPath(meetingID string) string
	IntermediateDir(meetingID string) string
	SaveTranscript(meetingID, text string) error
	RegisterMeeting(ctx context.Context, meetingID string) error
}

// Pipeline turns one media file into a committed, queryable meeting index.
// Stages run strictly in order with no internal retries or concurrency;
// callers must serialize runs for the same meeting id.
type Pipeline struct {
	Transcoder  media.Transcoder
	Transcriber transcribe.Transcriber
	Embedder    embeddings.Embedder
	Store       Store
	Splitter    *chunker.Splitter
}

// Ingest runs all stages for one meeting. Any stage failure aborts the run
// and surfaces as *models.IngestionError carrying the stage name and the
// original error. Re-running for the same id overwrites the prior index; the
// old index stays queryable until the new one is committed.
func (p *Pipeline) Ingest(ctx context.Context, mediaPath, meetingID string) error {
	logger := log.With().Str("meeting_id", meetingID).Logger()

	logger.Info().Str("stage", StageMediaToAudio).Str("media", mediaPath).Msg("extracting audio")
	audioPath, err := p.Transcoder.Transcode(ctx, mediaPath, p.Store.IntermediateDir(meetingID))
	if err != nil {
		return &models.IngestionError{Stage: StageMediaToAudio, Err: err}
	}

	logger.Info().Str("stage", StageAudioToTranscript).Msg("transcribing")
	segments, err := p.Transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return &models.IngestionError{Stage: StageAudioToTranscript, Err: err}
	}
	transcript := transcribe.JoinSegments(segments)
	if err := p.Store.SaveTranscript(meetingID, transcript); err != nil {
		return &models.IngestionError{Stage: StageAudioToTranscript, Err: err}
	}

	logger.Info().Str("stage", StageTranscriptToChunks).Msg("chunking transcript")
	chunks := p.Splitter.Split(transcript)

	// An empty chunk sequence still commits an (empty) index; retrieval
	// against it returns no results rather than failing.
	logger.Info().Str("stage", StageChunksToIndex).Int("chunks", len(chunks)).Msg("embedding and indexing")
	builder, err := index.NewBuilder(p.Store.IndexPath(meetingID))
	if err != nil {
		return &models.IngestionError{Stage: StageChunksToIndex, Err: err}
	}
	if len(chunks) > 0 {
		vectors, err := p.Embedder.EmbedDocuments(ctx, chunks)
		if err != nil {
			builder.Abort()
			return &models.IngestionError{Stage: StageChunksToIndex, Err: &models.GenerationError{Op: "chunk embedding", Err: err}}
		}
		entries := make([]index.Entry, 0, len(chunks))
		for i, c := range chunks {
			entries = append(entries, index.Entry{ChunkID: i, Content: c, Embedding: vectors[i]})
		}
		if err := builder.Add(ctx, entries); err != nil {
			builder.Abort()
			return &models.IngestionError{Stage: StageChunksToIndex, Err: err}
		}
	}
	if err := builder.Commit(); err != nil {
		builder.Abort()
		return &models.IngestionError{Stage: StageChunksToIndex, Err: err}
	}

	if err := p.Store.RegisterMeeting(ctx, meetingID); err != nil {
		return &models.IngestionError{Stage: StageChunksToIndex, Err: err}
	}
	logger.Info().Int("chunks", len(chunks)).Msg("meeting indexed")
	return nil
}
