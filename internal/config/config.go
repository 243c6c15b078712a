// Package config holds runtime configuration: defaults, environment
// overrides, CLI flag parsing, and validation. Timing and codec defaults
// match the legacy generator (v5) for output parity.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then overridden by [LoadEnv] (VERSEREEL_* variables, optionally from a
// .env file) and finally by [ParseFlags], before being passed (by pointer)
// to packages that need it.
type Config struct {
	// Paths. Background and output come from the two positional args;
	// the asset locations default to the legacy generator's layout.
	BackgroundPath string
	OutputPath     string
	LinesPath      string // Poem CSV with a "text" column.
	ImageDir       string // One card image per poem line.
	AudioDir       string // One speech clip per poem line.
	MusicPath      string // Optional. Empty means no music track.

	// Frame geometry (9:16 vertical).
	Width  int // Default: 1080.
	Height int // Default: 1920.

	// Timing (seconds).
	IntroDuration    float64 // Default: 2.0.
	OutroDuration    float64 // Default: 2.0.
	PauseDuration    float64 // Default: 0.5.
	FallbackDuration float64 // Default: 2.0. Used when a clip cannot be probed.

	// Probing.
	ProbeWorkers int // Default: 4. Bounded fan-out for ffprobe calls.

	// Audio mix.
	SilenceSampleRate int     // Default: 44100 Hz (silence sources).
	VoiceVolume       float64 // Default: 1.5.
	MusicVolume       float64 // Default: 0.08.
	VoiceHighpassHz   int     // Default: 100.
	VoiceLowpassHz    int     // Default: 3000.
	MixWeights        string  // Default: "1 0.5" (voice dominant).

	// Output encoding. Matches the legacy generator's libx264 block.
	VideoCodec       string // Fixed: "libx264".
	VideoPreset      string // Default: "slow".
	VideoCRF         int    // Default: 18.
	VideoPixFmt      string // Fixed: "yuv420p".
	KeyframeInterval int    // Fixed: 30 frames.
	BFrames          int    // Fixed: 3.
	RefFrames        int    // Fixed: 4.
	QMin             int    // Fixed: 10.
	QMax             int    // Fixed: 51.
	VideoProfile     string // Fixed: "high".
	VideoLevel       string // Fixed: "4.1".
	AudioCodec       string // Fixed: "aac".
	AudioBitrate     string // Default: "256k".
	AudioSampleRate  int    // Fixed: 48000 Hz (final mix).

	// Behavior flags.
	DryRun bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode
	LogFile   string
	CheckOnly bool
}

// DefaultConfig returns a Config with all defaults matching the legacy
// generator. Used as the base before [LoadEnv] and [ParseFlags] apply
// overrides.
func DefaultConfig() Config {
	return Config{
		LinesPath:         "output/reddit_poem.csv",
		ImageDir:          "output/comment_images_transparent",
		AudioDir:          "output/audio_files",
		MusicPath:         "",
		Width:             1080,
		Height:            1920,
		IntroDuration:     2.0,
		OutroDuration:     2.0,
		PauseDuration:     0.5,
		FallbackDuration:  2.0,
		ProbeWorkers:      4,
		SilenceSampleRate: 44100,
		VoiceVolume:       1.5,
		MusicVolume:       0.08,
		VoiceHighpassHz:   100,
		VoiceLowpassHz:    3000,
		MixWeights:        "1 0.5",
		VideoCodec:        "libx264",
		VideoPreset:       "slow",
		VideoCRF:          18,
		VideoPixFmt:       "yuv420p",
		KeyframeInterval:  30,
		BFrames:           3,
		RefFrames:         4,
		QMin:              10,
		QMax:              51,
		VideoProfile:      "high",
		VideoLevel:        "4.1",
		AudioCodec:        "aac",
		AudioBitrate:      "256k",
		AudioSampleRate:   48000,
		ColorMode:         ColorAuto,
	}
}

// Validate checks timing, geometry, and codec fields for sane values. When
// not in CheckOnly mode, it also requires the two positional paths.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("frame size must be positive")
	}
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return errors.New("frame size must be even (yuv420p requirement)")
	}
	if c.IntroDuration < 0 || c.OutroDuration < 0 || c.PauseDuration < 0 {
		return errors.New("intro/outro/pause durations must not be negative")
	}
	if c.FallbackDuration <= 0 {
		return errors.New("fallback duration must be positive")
	}
	if c.ProbeWorkers < 1 {
		return errors.New("probe workers must be at least 1")
	}
	if c.VideoCRF < 0 || c.VideoCRF > 51 {
		return errors.New("crf must be between 0 and 51")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	normalizedBitrate, err := normalizeAudioBitrate(c.AudioBitrate)
	if err != nil {
		return err
	}
	c.AudioBitrate = normalizedBitrate

	if c.CheckOnly {
		return nil
	}
	if c.BackgroundPath == "" || c.OutputPath == "" {
		return errors.New("need exactly background_video and output_file")
	}
	return nil
}

// normalizeAudioBitrate validates and canonicalizes user bitrate input.
// Accepted forms: "256", "256k", "256K", "256kbps". Output is "<n>k".
func normalizeAudioBitrate(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("audio bitrate must not be empty")
	}
	if strings.HasSuffix(s, "kbps") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "kbps"))
	} else if strings.HasSuffix(s, "k") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid audio bitrate %q (use positive Kbps value, e.g. 256k)", raw)
	}
	return fmt.Sprintf("%dk", n), nil
}
