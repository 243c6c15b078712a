// Command versereel is the CLI entrypoint for the VerseReel poem video
// compositor.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check) or composites the poem's card images and speech
// clips onto the background video in a single ffmpeg pass.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/backmassage/versereel/internal/check"
	"github.com/backmassage/versereel/internal/config"
	"github.com/backmassage/versereel/internal/display"
	"github.com/backmassage/versereel/internal/ffmpeg"
	"github.com/backmassage/versereel/internal/logging"
	"github.com/backmassage/versereel/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.LoadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "versereel: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg, version, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "versereel: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "versereel: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "versereel: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		check.RunCheck(log)
		return 0
	}

	log.Info("=== VerseReel v%s (%s) ===", version, commit)
	log.Info("Background: %s", cfg.BackgroundPath)
	log.Info("Output:     %s", cfg.OutputPath)
	if cfg.DryRun {
		log.Warn("DRY RUN — nothing will be rendered")
	}
	log.Info("")

	// Fail fast if ffmpeg/ffprobe or the required encoders are unavailable.
	if err := check.CheckDeps(); err != nil {
		log.Error("%v", err)
		log.Error("Run with --check for full diagnostics")
		return 1
	}

	// Phase 3: Signal handling — cancel the context on SIGINT/SIGTERM so a
	// running encode is killed and its temp file removed.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping…")
		cancel()
	}()

	// Phase 4: Run the pipeline (collect → probe → plan → compile → render).
	stats, err := pipeline.Run(ctx, &cfg, log)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Cancelled")
			return 130
		}
		var terr *ffmpeg.TranscodeError
		if errors.As(err, &terr) && !cfg.Verbose && terr.Stderr != "" {
			log.Error("%s", strings.TrimSpace(terr.Stderr))
		}
		log.Error("%v", err)
		return 1
	}

	if stats.Fallbacks > 0 {
		log.Warn("%d of %d clips used the fallback duration", stats.Fallbacks, stats.Segments)
	}
	return 0
}
