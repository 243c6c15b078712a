package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/backmassage/versereel/internal/assets"
	"github.com/backmassage/versereel/internal/config"
	"github.com/backmassage/versereel/internal/logging"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	log, err := logging.NewLogger(&cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

// A run with no assets on disk must fail before anything is probed,
// compiled, or rendered.
func TestRun_MissingPrerequisites(t *testing.T) {
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.LinesPath = filepath.Join(dir, "reddit_poem.csv")
	cfg.ImageDir = filepath.Join(dir, "images")
	cfg.AudioDir = filepath.Join(dir, "audio")
	cfg.BackgroundPath = filepath.Join(dir, "bg.mp4")
	cfg.OutputPath = filepath.Join(dir, "out.mp4")

	_, err := Run(context.Background(), &cfg, testLogger(t))
	var missing *assets.MissingPrerequisiteError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want *MissingPrerequisiteError", err)
	}
	if len(missing.Paths) == 0 {
		t.Error("missing prerequisite list is empty")
	}
}

func TestGraphOptions_FromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Width = 720
	cfg.Height = 1280
	cfg.VoiceVolume = 2.0
	cfg.MixWeights = "1 0.3"

	opts := graphOptions(&cfg)
	if opts.Width != 720 || opts.Height != 1280 {
		t.Errorf("frame = %dx%d, want 720x1280", opts.Width, opts.Height)
	}
	if opts.VoiceVolume != 2.0 {
		t.Errorf("VoiceVolume = %v, want 2.0", opts.VoiceVolume)
	}
	if opts.MixWeights != "1 0.3" {
		t.Errorf("MixWeights = %q, want %q", opts.MixWeights, "1 0.3")
	}
	if opts.SilenceSampleRate != 44100 {
		t.Errorf("SilenceSampleRate = %d, want 44100", opts.SilenceSampleRate)
	}
}
