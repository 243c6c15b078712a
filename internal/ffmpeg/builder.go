// Package ffmpeg turns a compiled graph program into an ffmpeg command line
// and runs it.
package ffmpeg

import (
	"strconv"

	"github.com/backmassage/versereel/internal/config"
	"github.com/backmassage/versereel/internal/graph"
)

// Job is everything one render invocation needs: the compiled filter
// program, the external input files in positional order, the planned total
// duration, and where the result goes.
type Job struct {
	Program       *graph.Program
	InputPaths    []string
	TotalDuration float64
	OutputPath    string
}

// Build constructs the complete ffmpeg argument slice for a render job.
// Input files appear in exactly the order the graph's input map assigned,
// so every [N:v]/[N:a] reference in the filter text resolves to the right
// file.
func Build(cfg *config.Config, job *Job, outputPath string) []string {
	args := make([]string, 0, 48)

	// --- Preamble ---
	args = append(args, "ffmpeg", "-hide_banner", "-nostdin", "-y")

	// Loglevel: info when verbose, otherwise error.
	if cfg.Verbose {
		args = append(args, "-loglevel", "info", "-stats")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// --- Inputs, in input-map order ---
	// The background loops so it can cover any total duration.
	args = append(args, "-stream_loop", "-1", "-i", job.InputPaths[0])
	for _, p := range job.InputPaths[1:] {
		args = append(args, "-i", p)
	}

	// --- Filter graph and stream maps ---
	args = append(args,
		"-filter_complex", job.Program.Serialize(),
		"-map", "["+job.Program.VideoOut+"]",
		"-map", "["+job.Program.AudioOut+"]",
	)

	// --- Video codec ---
	args = append(args,
		"-c:v", cfg.VideoCodec,
		"-preset", cfg.VideoPreset,
		"-crf", strconv.Itoa(cfg.VideoCRF),
		"-pix_fmt", cfg.VideoPixFmt,
		"-g", strconv.Itoa(cfg.KeyframeInterval),
		"-bf", strconv.Itoa(cfg.BFrames),
		"-refs", strconv.Itoa(cfg.RefFrames),
		"-qmin", strconv.Itoa(cfg.QMin),
		"-qmax", strconv.Itoa(cfg.QMax),
		"-profile:v", cfg.VideoProfile,
		"-level", cfg.VideoLevel,
	)

	// --- Audio codec ---
	args = append(args,
		"-c:a", cfg.AudioCodec,
		"-b:a", cfg.AudioBitrate,
		"-ar", strconv.Itoa(cfg.AudioSampleRate),
	)

	// --- Duration clamp and container opts ---
	// -t cuts the looping background off at the planned total.
	args = append(args,
		"-t", strconv.FormatFloat(job.TotalDuration, 'f', 3, 64),
		"-movflags", "+faststart",
	)

	// --- Output ---
	args = append(args, outputPath)

	return args
}
