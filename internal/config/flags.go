package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into assets, timing, geometry, audio, behavior, and
// display. Values already set by DefaultConfig/LoadEnv hold unless the user
// passes the corresponding flag.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses args (os.Args[1:] in production) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, missing positional args).
func ParseFlags(cfg *Config, version string, args []string) error {
	fs := flag.NewFlagSet("versereel", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var forceColor, noColor, showVersion, showHelp bool

	defineAssetFlags(fs, cfg)
	defineTimingFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &forceColor, &noColor)

	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showVersion, "V", false, "Same as --version")
	fs.BoolVar(&showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&showHelp, "h", false, "Same as --help")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if noColor {
		cfg.ColorMode = ColorNever
	} else if forceColor {
		cfg.ColorMode = ColorAlways
	}

	if showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "versereel v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// defineAssetFlags registers the asset path flags.
func defineAssetFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.LinesPath, "lines", cfg.LinesPath, "Poem CSV (one line per row, 'text' column)")
	fs.StringVar(&cfg.ImageDir, "images", cfg.ImageDir, "Directory of per-line card images")
	fs.StringVar(&cfg.AudioDir, "audio", cfg.AudioDir, "Directory of per-line speech clips")
	fs.StringVar(&cfg.MusicPath, "music", cfg.MusicPath, "Background music file (omit for no music)")
	fs.StringVar(&cfg.MusicPath, "m", cfg.MusicPath, "Same as --music")
}

// defineTimingFlags registers timing and geometry flags.
func defineTimingFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Float64Var(&cfg.IntroDuration, "intro", cfg.IntroDuration, "Intro duration in seconds")
	fs.Float64Var(&cfg.OutroDuration, "outro", cfg.OutroDuration, "Outro duration in seconds")
	fs.Float64Var(&cfg.PauseDuration, "pause", cfg.PauseDuration, "Pause between lines in seconds")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Output frame width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Output frame height")
}

// defineBehaviorFlags registers encoding and behavior flags.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.VideoPreset, "preset", cfg.VideoPreset, "x264 preset (e.g. slow, medium)")
	fs.StringVar(&cfg.VideoPreset, "p", cfg.VideoPreset, "Same as --preset")
	fs.IntVar(&cfg.VideoCRF, "crf", cfg.VideoCRF, "x264 CRF (lower = better quality)")
	fs.StringVar(&cfg.AudioBitrate, "audio-bitrate", cfg.AudioBitrate, "Final audio bitrate (e.g. 256k)")
	fs.IntVar(&cfg.ProbeWorkers, "probe-workers", cfg.ProbeWorkers, "Concurrent ffprobe calls")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Plan and compile only; do not transcode")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, forceColor, noColor *bool) {
	fs.BoolVar(forceColor, "color", false, "Force colored logs")
	fs.BoolVar(noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output (includes live ffmpeg output)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// parsePositionalArgs sets BackgroundPath and OutputPath from the two
// positional args when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("need exactly background_video and output_file")
	}
	cfg.BackgroundPath = strings.TrimSpace(args[0])
	cfg.OutputPath = strings.TrimSpace(args[1])
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "VerseReel v" + version + " — vertical poem-video compositor"},
		{"", ""},
		{"  versereel [OPTIONS] <background_video> <output_file>", ""},
		{"", ""},
		{"Assets", ""},
		{"  --lines <path>", "Poem CSV (default: output/reddit_poem.csv)"},
		{"  --images <dir>", "Per-line card images (default: output/comment_images_transparent)"},
		{"  --audio <dir>", "Per-line speech clips (default: output/audio_files)"},
		{"  -m, --music <path>", "Background music file (default: none)"},
		{"", ""},
		{"Timing & geometry", ""},
		{"  --intro <seconds>", "Intro length (default: 2.0)"},
		{"  --outro <seconds>", "Outro length (default: 2.0)"},
		{"  --pause <seconds>", "Pause between lines (default: 0.5)"},
		{"  --width <pixels>", "Frame width (default: 1080)"},
		{"  --height <pixels>", "Frame height (default: 1920)"},
		{"", ""},
		{"Encoding & behavior", ""},
		{"  -p, --preset <name>", "x264 preset (default: slow)"},
		{"  --crf <value>", "x264 CRF (default: 18)"},
		{"  --audio-bitrate <rate>", "Final audio bitrate (default: 256k)"},
		{"  --probe-workers <n>", "Concurrent ffprobe calls (default: 4)"},
		{"  -d, --dry-run", "Plan and compile only; do not transcode"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output (live ffmpeg output)"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, ffprobe, x264, AAC)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
