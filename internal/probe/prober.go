// Package probe obtains precise media durations via ffprobe. A clip is
// probed with a container-level JSON query first and a plain duration query
// as fallback; when both produce nothing parseable the caller's fallback
// duration is used so one unreadable clip never sinks a whole run. Only a
// missing ffprobe binary is fatal.
package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrUnavailable means ffprobe itself cannot be run. No duration can ever be
// known, so the whole run must abort.
var ErrUnavailable = errors.New("ffprobe not available")

// ParseError means ffprobe ran but its output held no usable duration.
// Recovered per-clip with the fallback duration; never fatal.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Result is the outcome of probing one clip. When Fallback is set, Duration
// holds the configured fallback value and Err explains why.
type Result struct {
	Path     string
	Duration float64
	Fallback bool
	Err      error
}

// Duration probes one file and returns its container duration in seconds.
// Query order follows the legacy generator: full JSON format query first,
// then the flat -show_entries form. Returns a *ParseError when the tool ran
// but neither query yielded a duration; ErrUnavailable when the tool itself
// cannot be executed.
func Duration(ctx context.Context, path string) (float64, error) {
	out, err := runProbe(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)
	if err != nil {
		var perr *ParseError
		if !errors.As(err, &perr) {
			return 0, err // unavailable or cancelled
		}
	} else if d, perr := ParseFormatDuration(out); perr == nil {
		return d, nil
	}

	// Alternate query mode: duration only, no wrappers.
	out, err = runProbe(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, err
	}
	d, perr := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if perr != nil {
		return 0, &ParseError{Path: path, Err: perr}
	}
	return d, nil
}

// Durations probes paths concurrently with at most workers ffprobe calls in
// flight, collecting results into a slice ordered like paths. Per-clip parse
// failures are recorded as fallback results; ErrUnavailable or context
// cancellation aborts the batch. progress (may be nil) is called once per
// completed clip.
func Durations(ctx context.Context, paths []string, workers int, fallback float64, progress func()) ([]Result, error) {
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			d, err := Duration(gctx, path)
			switch {
			case err == nil:
				results[i] = Result{Path: path, Duration: d}
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return err
			case errors.Is(err, ErrUnavailable):
				return err
			default:
				results[i] = Result{Path: path, Duration: fallback, Fallback: true, Err: err}
			}
			if progress != nil {
				progress()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ParseFormatDuration extracts format.duration from ffprobe JSON output.
// Exported for testing without a real ffprobe binary.
func ParseFormatDuration(data []byte) (float64, error) {
	var raw struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	if raw.Format.Duration == "" {
		return 0, errors.New("ffprobe JSON has no format.duration")
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(raw.Format.Duration), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", raw.Format.Duration, err)
	}
	return d, nil
}

// runProbe executes one ffprobe invocation, mapping a missing or
// non-executable binary to ErrUnavailable and a non-zero exit to a
// *ParseError (the tool ran; its output is unusable for this clip).
func runProbe(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	// args ends with the probed path.
	return nil, &ParseError{Path: args[len(args)-1], Err: err}
}
