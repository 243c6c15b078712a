package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/backmassage/versereel/internal/config"
)

// Execute runs the render. The encode targets a temp file next to the final
// output and is renamed into place only on success, so a killed or failed
// run never leaves a half-written file at the destination path.
//
// When verbose is enabled, stderr is tee'd to os.Stderr in real time;
// otherwise it is captured silently and surfaced only on failure. A failed
// run writes a debug artifact containing the exact command line and filter
// graph before returning a *TranscodeError.
func Execute(ctx context.Context, cfg *config.Config, job *Job) error {
	runID := uuid.NewString()
	tempPath := job.OutputPath + ".tmp-" + runID

	args := Build(cfg, job, tempPath)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if cfg.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	if err := cmd.Run(); err != nil {
		os.Remove(tempPath)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		artifact := writeDebugArtifact(job, args, runID)
		return &TranscodeError{
			Err:          err,
			Stderr:       stderrBuf.String(),
			ArtifactPath: artifact,
		}
	}

	if err := os.Rename(tempPath, job.OutputPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("moving output into place: %w", err)
	}
	return nil
}

// writeDebugArtifact saves the full command and filter graph alongside the
// intended output. Returns the artifact path, or "" if the write itself
// failed; the transcode error still carries stderr either way.
func writeDebugArtifact(job *Job, args []string, runID string) string {
	path := filepath.Join(filepath.Dir(job.OutputPath), "versereel-debug-"+runID+".txt")

	var b strings.Builder
	b.WriteString("# command\n")
	b.WriteString(shellJoin(args))
	b.WriteString("\n\n# filter graph\n")
	b.WriteString(job.Program.Serialize())
	b.WriteString("\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return ""
	}
	return path
}

// shellJoin renders args as a copy-pasteable command line, quoting anything
// with shell-significant characters.
func shellJoin(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsAny(a, " ;[]()'\"\\$&|<>*?") {
			parts[i] = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		} else {
			parts[i] = a
		}
	}
	return strings.Join(parts, " ")
}
