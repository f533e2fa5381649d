package models

import (
	"errors"
	"fmt"
)

// ErrMeetingNotFound is returned when a meeting id has no completed index.
var ErrMeetingNotFound = errors.New("no indexed meeting found")

// MediaError means the input media is unreadable or unsupported.
type MediaError struct {
	Path string
	Err  error
}

func (e *MediaError) Error() string { return fmt.Sprintf("media error for %s: %v", e.Path, e.Err) }
func (e *MediaError) Unwrap() error { return e.Err }

// TranscriptionError means the transcription engine failed.
type TranscriptionError struct {
	Err error
}

func (e *TranscriptionError) Error() string { return fmt.Sprintf("transcription failed: %v", e.Err) }
func (e *TranscriptionError) Unwrap() error { return e.Err }

// GenerationError covers embedding and language model call failures.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string { return fmt.Sprintf("%s failed: %v", e.Op, e.Err) }
func (e *GenerationError) Unwrap() error { return e.Err }

// IngestionError wraps the failure of one named pipeline stage. The original
// stage error stays reachable through Unwrap.
type IngestionError struct {
	Stage string
	Err   error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingestion stage %s failed: %v", e.Stage, e.Err)
}
func (e *IngestionError) Unwrap() error { return e.Err }
