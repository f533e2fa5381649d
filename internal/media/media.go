package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"meeting-rag/internal/models"
)

// Transcoder extracts a normalized mono 16 kHz wav track from input media.
type Transcoder interface {
	Transcode(ctx context.Context, srcPath, outDir string) (string, error)
}

var supportedExtensions = map[string]bool{
	".mp4": true,
	".mp3": true,
	".wav": true,
	".m4a": true,
	".mkv": true,
}

// IsSupported reports whether the file extension is an accepted media type.
func IsSupported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

func SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// FFmpeg shells out to ffmpeg for the conversion.
type FFmpeg struct {
	Bin string
}

func NewFFmpeg(bin string) *FFmpeg {
	if bin == "" {
		bin = "ffmpeg"
	}
	return &FFmpeg{Bin: bin}
}

func (f *FFmpeg) Transcode(ctx context.Context, srcPath, outDir string) (string, error) {
	if _, err := os.Stat(srcPath); err != nil {
		return "", &models.MediaError{Path: srcPath, Err: err}
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", &models.MediaError{Path: srcPath, Err: err}
	}
	outPath := filepath.Join(outDir, "clean_meeting_audio.wav")

	// mono, 16 kHz, loudness normalized, denoised
	cmd := exec.CommandContext(ctx, f.Bin,
		"-y",
		"-i", srcPath,
		"-ar", "16000",
		"-ac", "1",
		"-af", "loudnorm,afftdn",
		outPath,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.Error().Err(err).Str("media", srcPath).Msg("ffmpeg failed")
		return "", &models.MediaError{Path: srcPath, Err: fmt.Errorf("ffmpeg: %v: %s", err, lastLine(out))}
	}
	return outPath, nil
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
