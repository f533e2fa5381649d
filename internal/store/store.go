package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"

	"meeting-rag/internal/models"
)

// MeetingRecord is one row of the id -> display name registry.
type MeetingRecord struct {
	bun.BaseModel `bun:"table:meetings,alias:m"`
	ID            string    `bun:"id,pk"`
	Name          string    `bun:"name"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
}

// Manager owns every on-disk location derived from a meeting id: the index
// directory, the intermediate artifacts, the highlights document, and the
// registry row. No other code constructs these paths.
type Manager struct {
	dataDir string
	db      *bun.DB
}

func NewManager(dataDir string, debug bool) (*Manager, error) {
	dirs := []string{
		dataDir,
		filepath.Join(dataDir, "vectordb"),
		filepath.Join(dataDir, "notes"),
		filepath.Join(dataDir, "intermediate"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, filepath.Join(dataDir, "meetings.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open meeting registry: %w", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(debug)))
	if _, err := db.NewCreateTable().Model((*MeetingRecord)(nil)).IfNotExists().Exec(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to init meeting registry: %w", err)
	}
	return &Manager{dataDir: dataDir, db: db}, nil
}

func (m *Manager) Close() error { return m.db.Close() }

// NewMeetingID mints an opaque meeting identifier.
func (m *Manager) NewMeetingID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// IndexPath resolves the meeting's isolated index directory. Pure function
// of the id; distinct ids never collide because the sanitized id is the
// directory name and ids are unique.
func (m *Manager) IndexPath(meetingID string) string {
	return filepath.Join(m.dataDir, "vectordb", sanitizeID(meetingID))
}

// IndexExists reports whether a committed index is present for the id.
// Resolving a path for a meeting with no index is not an error; callers check
// existence before querying.
func (m *Manager) IndexExists(meetingID string) bool {
	info, err := os.Stat(m.IndexPath(meetingID))
	return err == nil && info.IsDir()
}

// IntermediateDir holds per-meeting pipeline artifacts (audio, transcript).
func (m *Manager) IntermediateDir(meetingID string) string {
	return filepath.Join(m.dataDir, "intermediate", sanitizeID(meetingID))
}

// SaveTranscript writes the raw transcript next to the meeting's audio.
func (m *Manager) SaveTranscript(meetingID, text string) error {
	dir := m.IntermediateDir(meetingID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "transcript.txt"), []byte(text), 0o644)
}

// RegisterMeeting records the id with its creation time. Re-registering an
// existing id is a no-op, so re-ingestion keeps the original creation time.
func (m *Manager) RegisterMeeting(ctx context.Context, meetingID string) error {
	rec := &MeetingRecord{ID: meetingID, CreatedAt: time.Now().UTC()}
	_, err := m.db.NewInsert().Model(rec).On("CONFLICT (id) DO NOTHING").Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to register meeting: %w", err)
	}
	return nil
}

// SetDisplayName upserts the human-readable name for a meeting. The name is
// sanitized to a path-safe character set up front, because it may later be
// used to build file names.
func (m *Manager) SetDisplayName(ctx context.Context, meetingID, name string) error {
	rec := &MeetingRecord{ID: meetingID, Name: SanitizeName(name), CreatedAt: time.Now().UTC()}
	_, err := m.db.NewInsert().
		Model(rec).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set display name: %w", err)
	}
	return nil
}

// ListMeetings returns all registered meetings, most recently added first.
func (m *Manager) ListMeetings(ctx context.Context) ([]models.MeetingInfo, error) {
	var recs []MeetingRecord
	if err := m.db.NewSelect().Model(&recs).Order("created_at DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	infos := make([]models.MeetingInfo, 0, len(recs))
	for _, r := range recs {
		infos = append(infos, models.MeetingInfo{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt})
	}
	return infos, nil
}

func (m *Manager) highlightsPath(meetingID string) string {
	return filepath.Join(m.dataDir, "notes", "highlights_"+sanitizeID(meetingID)+".txt")
}

// SaveHighlights overwrites the meeting's current highlights document.
func (m *Manager) SaveHighlights(meetingID, content string) error {
	return os.WriteFile(m.highlightsPath(meetingID), []byte(content), 0o644)
}

// LoadHighlights returns the last saved highlights document.
func (m *Manager) LoadHighlights(meetingID string) (string, error) {
	b, err := os.ReadFile(m.highlightsPath(meetingID))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// sanitizeID keeps only characters that can never escape the parent
// directory: alphanumerics, hyphen, underscore.
func sanitizeID(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// SanitizeName additionally allows spaces, for display.
func SanitizeName(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ', r == '-', r == '_':
			sb.WriteRune(r)
		}
	}
	return strings.TrimSpace(sb.String())
}
