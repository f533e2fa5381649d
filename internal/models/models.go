package models

import "time"

// Segment is one time-ordered piece of transcription output.
type Segment struct {
	Text  string
	Start float64
	End   float64
}

// MeetingInfo is one entry of the meeting registry.
type MeetingInfo struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
