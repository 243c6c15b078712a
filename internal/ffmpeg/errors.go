package ffmpeg

import "fmt"

// TranscodeError reports an ffmpeg invocation that exited non-zero. The
// full command line and filter graph are written to ArtifactPath so the
// failure can be reproduced by hand.
type TranscodeError struct {
	Err          error
	Stderr       string
	ArtifactPath string
}

func (e *TranscodeError) Error() string {
	if e.ArtifactPath != "" {
		return fmt.Sprintf("ffmpeg failed: %v (debug command written to %s)", e.Err, e.ArtifactPath)
	}
	return fmt.Sprintf("ffmpeg failed: %v", e.Err)
}

func (e *TranscodeError) Unwrap() error { return e.Err }
