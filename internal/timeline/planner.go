// Package timeline computes the output video's temporal structure: exact
// start/end offsets for every visual and audio slot, from per-segment speech
// durations and fixed intro/outro/pause lengths. Planning is a pure
// function; no component downstream is permitted to recompute timings
// independently.
package timeline

import (
	"errors"
	"fmt"
)

// ErrEmpty is returned when planning is attempted with zero segments.
// Intro and outro alone are not a meaningful poem video.
var ErrEmpty = errors.New("timeline needs at least one segment")

// Plan walks segments in order, accumulating a running clock that starts at
// intro: one segment interval per segment, a pause after every segment
// except the last, then the outro. All arithmetic is double-precision
// seconds; rounding happens only at graph emission.
//
// Zero-length intro, outro, and pause slots are omitted entirely: a
// zero-duration trim or silence source would hand concat an empty stream.
// With all three non-zero, N segments yield 2N+1 intervals and Total()
// equals intro + Σ durations + (N-1)*pause + outro; omitted slots
// contribute nothing to either count.
func Plan(segments []Segment, intro, outro, pause float64) (*Timeline, error) {
	if len(segments) == 0 {
		return nil, ErrEmpty
	}
	for _, s := range segments {
		if s.Duration < 0 {
			return nil, fmt.Errorf("segment %d has negative duration %v", s.Index, s.Duration)
		}
	}

	tl := &Timeline{
		Segments:  segments,
		Intervals: make([]Interval, 0, 2*len(segments)+1),
	}

	if intro > 0 {
		tl.Intervals = append(tl.Intervals, Interval{
			Kind: KindIntro, Start: 0, Duration: intro, Segment: -1,
		})
	}

	clock := intro
	for i, s := range segments {
		tl.Intervals = append(tl.Intervals, Interval{
			Kind: KindSegment, Start: clock, Duration: s.Duration, Segment: i,
		})
		clock += s.Duration

		if pause > 0 && i < len(segments)-1 {
			tl.Intervals = append(tl.Intervals, Interval{
				Kind: KindPause, Start: clock, Duration: pause, Segment: i,
			})
			clock += pause
		}
	}

	if outro > 0 {
		tl.Intervals = append(tl.Intervals, Interval{
			Kind: KindOutro, Start: clock, Duration: outro, Segment: -1,
		})
	}

	return tl, nil
}
