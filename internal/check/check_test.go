package check

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// recordLogger captures log lines per level; it is the smallest thing that
// satisfies Logger.
type recordLogger struct {
	infos, successes, warns, errs []string
}

func (r *recordLogger) Info(f string, a ...interface{})    { r.infos = append(r.infos, fmt.Sprintf(f, a...)) }
func (r *recordLogger) Success(f string, a ...interface{}) { r.successes = append(r.successes, fmt.Sprintf(f, a...)) }
func (r *recordLogger) Warn(f string, a ...interface{})    { r.warns = append(r.warns, fmt.Sprintf(f, a...)) }
func (r *recordLogger) Error(f string, a ...interface{})   { r.errs = append(r.errs, fmt.Sprintf(f, a...)) }

func TestRunCheck_ToolsMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	log := &recordLogger{}
	RunCheck(log)

	joined := strings.Join(log.errs, "\n")
	if !strings.Contains(joined, "ffmpeg not found") {
		t.Errorf("missing ffmpeg not reported: %v", log.errs)
	}
	if !strings.Contains(joined, "ffprobe not found") {
		t.Errorf("missing ffprobe not reported: %v", log.errs)
	}
	if len(log.successes) != 0 {
		t.Errorf("unexpected successes with empty PATH: %v", log.successes)
	}
}

func TestCheckDeps_FfmpegMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if err := CheckDeps(); !errors.Is(err, ErrFfmpegNotFound) {
		t.Errorf("err = %v, want ErrFfmpegNotFound", err)
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ffmpeg version 6.1\nbuilt with gcc", "ffmpeg version 6.1"},
		{"  single line  ", "single line"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := firstLine(tt.in); got != tt.want {
			t.Errorf("firstLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
