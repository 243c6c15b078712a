// Package pipeline orchestrates one render: collect assets, probe speech
// durations, plan the timeline, compile the filter graph, and invoke ffmpeg.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/versereel/internal/assets"
	"github.com/backmassage/versereel/internal/config"
	"github.com/backmassage/versereel/internal/display"
	"github.com/backmassage/versereel/internal/ffmpeg"
	"github.com/backmassage/versereel/internal/graph"
	"github.com/backmassage/versereel/internal/logging"
	"github.com/backmassage/versereel/internal/probe"
	"github.com/backmassage/versereel/internal/timeline"
)

// Run is the top-level entry point: assets → probe → plan → compile →
// render. Every stage is fatal on error; per-clip probe parse failures are
// downgraded to warnings with the configured fallback duration.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (*RenderStats, error) {
	stats := &RenderStats{}

	// --- Collect ---
	set, err := assets.Collect(cfg)
	if err != nil {
		return stats, err
	}
	stats.Segments = len(set.Lines)
	log.Info("Poem: %d lines, background %s", len(set.Lines), filepath.Base(set.Background))
	if set.Music != "" {
		log.Info("Music: %s", filepath.Base(set.Music))
	}

	// --- Probe ---
	results, err := probeDurations(ctx, cfg, set.Audio)
	if err != nil {
		return stats, err
	}

	segments := make([]timeline.Segment, len(results))
	for i, r := range results {
		if r.Fallback {
			stats.Fallbacks++
			log.Warn("Cannot read duration of %s, assuming %.1fs: %v",
				filepath.Base(r.Path), r.Duration, r.Err)
		}
		segments[i] = timeline.Segment{
			Index:     i,
			ImagePath: set.Images[i],
			AudioPath: set.Audio[i],
			Duration:  r.Duration,
		}
	}

	// --- Plan ---
	tl, err := timeline.Plan(segments, cfg.IntroDuration, cfg.OutroDuration, cfg.PauseDuration)
	if err != nil {
		return stats, err
	}
	stats.TotalDuration = tl.Total()
	log.Info("Timeline: %d intervals, %s total",
		len(tl.Intervals), display.FormatSeconds(tl.Total()))

	// --- Compile ---
	im, err := graph.NewInputMap(set.Background, set.Images, set.Audio, set.Music)
	if err != nil {
		return stats, err
	}
	prog, err := graph.Compile(tl, im, graphOptions(cfg))
	if err != nil {
		return stats, err
	}
	log.Debug(cfg.Verbose, "Filter graph: %s", prog.Serialize())

	job := &ffmpeg.Job{
		Program:       prog,
		InputPaths:    im.Paths(),
		TotalDuration: tl.Total(),
		OutputPath:    cfg.OutputPath,
	}

	// --- Dry-run ---
	if cfg.DryRun {
		log.Success("[DRY] Would render %d segments (%s) with %d inputs to %s",
			len(segments), display.FormatSeconds(tl.Total()), im.Len(), cfg.OutputPath)
		return stats, nil
	}

	// --- Render ---
	if dir := filepath.Dir(cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return stats, fmt.Errorf("cannot create output directory: %w", err)
		}
	}

	log.Render("Rendering %d segments (%s) to %s",
		len(segments), display.FormatSeconds(tl.Total()), cfg.OutputPath)

	start := time.Now()
	if err := ffmpeg.Execute(ctx, cfg, job); err != nil {
		return stats, err
	}
	stats.Elapsed = time.Since(start)

	if fi, err := os.Stat(cfg.OutputPath); err == nil {
		stats.OutputBytes = fi.Size()
	}
	log.Success("Rendered %s (%s) in %s",
		cfg.OutputPath,
		display.FormatBytes(stats.OutputBytes),
		display.FormatSeconds(stats.Elapsed.Seconds()))

	return stats, nil
}

// probeDurations fans the speech clips out to the prober, showing a
// progress bar on stderr so long poems give feedback while ffprobe runs.
func probeDurations(ctx context.Context, cfg *config.Config, paths []string) ([]probe.Result, error) {
	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("Probing clips"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetVisibility(!cfg.Verbose),
	)
	defer bar.Close()

	return probe.Durations(ctx, paths, cfg.ProbeWorkers, cfg.FallbackDuration, func() {
		bar.Add(1)
	})
}

// graphOptions maps configuration onto the compiler's knobs.
func graphOptions(cfg *config.Config) graph.Options {
	return graph.Options{
		Width:             cfg.Width,
		Height:            cfg.Height,
		SilenceSampleRate: cfg.SilenceSampleRate,
		VoiceVolume:       cfg.VoiceVolume,
		VoiceHighpass:     cfg.VoiceHighpassHz,
		VoiceLowpass:      cfg.VoiceLowpassHz,
		MusicVolume:       cfg.MusicVolume,
		MixWeights:        cfg.MixWeights,
	}
}
