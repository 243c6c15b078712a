// Package assets locates and validates the external artifacts the pipeline
// consumes: the poem line list, per-line card images and speech clips, the
// background video, and the optional music track. All prerequisites are
// checked up front so a run never reaches probing or compilation with a
// missing file.
package assets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/backmassage/versereel/internal/config"
)

// Upstream producers write numbered assets, 1-based: the card renderer emits
// comment_01_transparent.png and the speech generator audio_01.wav.
const (
	imagePattern = "comment_%02d_transparent.png"
	audioPattern = "audio_%02d.wav"
)

// Set holds the resolved, existence-checked input artifacts for one run.
// Slices are in poem order; index i belongs to segment i.
type Set struct {
	Lines      []string // poem line texts (used for count and logging only)
	Images     []string // per-line card image paths
	Audio      []string // per-line speech clip paths
	Background string
	Music      string // empty when no music is configured
}

// MissingPrerequisiteError reports every required artifact that is absent,
// so a user can fix them all in one pass.
type MissingPrerequisiteError struct {
	Paths []string
}

func (e *MissingPrerequisiteError) Error() string {
	return fmt.Sprintf("missing prerequisites: %s", strings.Join(e.Paths, ", "))
}

// Collect reads the poem line list and resolves every per-line asset path,
// the background video, and the optional music track. It returns a
// *MissingPrerequisiteError naming every absent path; other failures
// (unreadable CSV, empty poem) are returned as plain errors.
func Collect(cfg *config.Config) (*Set, error) {
	if _, err := os.Stat(cfg.LinesPath); err != nil {
		// Without the line list the segment count is unknown, so no other
		// per-line path can even be named.
		return nil, &MissingPrerequisiteError{Paths: []string{cfg.LinesPath}}
	}

	lines, err := ReadPoemLines(cfg.LinesPath)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("poem file %s has no lines", cfg.LinesPath)
	}

	set := &Set{
		Lines:      lines,
		Background: cfg.BackgroundPath,
		Music:      cfg.MusicPath,
	}

	var missing []string
	for i := range lines {
		img := ImagePath(cfg.ImageDir, i)
		aud := AudioPath(cfg.AudioDir, i)
		if _, err := os.Stat(img); err != nil {
			missing = append(missing, img)
		}
		if _, err := os.Stat(aud); err != nil {
			missing = append(missing, aud)
		}
		set.Images = append(set.Images, img)
		set.Audio = append(set.Audio, aud)
	}

	if _, err := os.Stat(cfg.BackgroundPath); err != nil {
		missing = append(missing, cfg.BackgroundPath)
	}
	// Music is optional, but a path the user configured must exist: silently
	// producing a musicless video would mask a typo.
	if cfg.MusicPath != "" {
		if _, err := os.Stat(cfg.MusicPath); err != nil {
			missing = append(missing, cfg.MusicPath)
		}
	}

	if len(missing) > 0 {
		return nil, &MissingPrerequisiteError{Paths: missing}
	}
	return set, nil
}

// ImagePath returns the card image path for segment index (0-based).
func ImagePath(dir string, index int) string {
	return filepath.Join(dir, fmt.Sprintf(imagePattern, index+1))
}

// AudioPath returns the speech clip path for segment index (0-based).
func AudioPath(dir string, index int) string {
	return filepath.Join(dir, fmt.Sprintf(audioPattern, index+1))
}

// ReadPoemLines reads the poem CSV and returns the values of its "text"
// column in row order. Rows with an empty text cell are skipped. The file
// carries additional columns from the upstream composer (author, score,
// time); only text matters here.
func ReadPoemLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open poem file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // upstream rows may vary in width

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read poem header: %w", err)
	}

	textCol := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "text") {
			textCol = i
			break
		}
	}
	if textCol < 0 {
		return nil, errors.New("poem file has no 'text' column")
	}

	var lines []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read poem row: %w", err)
		}
		if textCol >= len(record) {
			continue
		}
		text := strings.TrimSpace(record[textCol])
		if text == "" {
			continue
		}
		lines = append(lines, text)
	}
	return lines, nil
}
