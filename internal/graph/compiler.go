// Package graph lowers a planned timeline into an ffmpeg filter_complex
// program: a validated node list with deterministic pad labels, plus the
// positional input map that ties [N:v]/[N:a] references to actual files.
// Serialization is byte-stable so the same plan always yields the same
// command line.
package graph

import (
	"fmt"
	"strconv"

	"github.com/backmassage/versereel/internal/timeline"
)

// Options carries the knobs the compiler folds into filter expressions.
type Options struct {
	Width  int
	Height int

	SilenceSampleRate int

	VoiceVolume   float64
	VoiceHighpass int
	VoiceLowpass  int
	MusicVolume   float64
	MixWeights    string
}

// Compile lowers a planned timeline onto the input map, producing a complete
// filter graph program. Emission is staged: background preparation, video
// trims in timeline order, per-segment overlays, silence sources, the video
// and audio concats, voice shaping, and finally the optional music mix.
// The node order is deterministic, so Serialize output is reproducible.
func Compile(tl *timeline.Timeline, im *InputMap, opts Options) (*Program, error) {
	if len(tl.Segments) == 0 {
		return nil, timeline.ErrEmpty
	}
	if im.Segments() != len(tl.Segments) {
		return nil, fmt.Errorf("graph: timeline has %d segments but input map has %d", len(tl.Segments), im.Segments())
	}

	p := &Program{}
	size := strconv.Itoa(opts.Width) + ":" + strconv.Itoa(opts.Height)

	// Background: fill the frame, crop the excess, normalize the sample
	// aspect ratio so concat never sees mismatched streams.
	p.Nodes = append(p.Nodes, Node{
		In:   []Pad{InputPad(im.Background, "v")},
		Expr: "scale=" + size + ":force_original_aspect_ratio=increase,crop=" + size + ",setsar=1",
		Out:  []string{"bg"},
	})

	// One trim of the prepared background per interval, in timeline order.
	// setpts rebases each slice to t=0 so the later concat is seamless.
	for _, iv := range tl.Intervals {
		p.Nodes = append(p.Nodes, Node{
			In:   []Pad{LabelPad("bg")},
			Expr: "trim=" + fmtSec(iv.Start) + ":" + fmtSec(iv.End()) + ",setpts=PTS-STARTPTS",
			Out:  []string{trimLabel(iv)},
		})
	}

	// Per-segment image overlay on its background slice.
	for i := range tl.Segments {
		p.Nodes = append(p.Nodes, Node{
			In:   []Pad{InputPad(im.Images[i], "v")},
			Expr: "scale=" + size,
			Out:  []string{fmt.Sprintf("overlay%d", i)},
		})
		p.Nodes = append(p.Nodes, Node{
			In:   []Pad{LabelPad(fmt.Sprintf("bg%d", i)), LabelPad(fmt.Sprintf("overlay%d", i))},
			Expr: "overlay=0:0",
			Out:  []string{fmt.Sprintf("v%d", i)},
		})
	}

	// Silence sources for every non-speech interval, in timeline order.
	for _, iv := range tl.Intervals {
		if iv.Kind == timeline.KindSegment {
			continue
		}
		p.Nodes = append(p.Nodes, Node{
			Expr: "aevalsrc=0:duration=" + fmtSec(iv.Duration) +
				":sample_rate=" + strconv.Itoa(opts.SilenceSampleRate) +
				":channel_layout=stereo",
			Out: []string{silenceLabel(iv)},
		})
	}

	// Video concat across all intervals.
	videoIn := make([]Pad, 0, len(tl.Intervals))
	for _, iv := range tl.Intervals {
		videoIn = append(videoIn, LabelPad(videoLabel(iv)))
	}
	p.Nodes = append(p.Nodes, Node{
		In:   videoIn,
		Expr: fmt.Sprintf("concat=n=%d:v=1:a=0", len(videoIn)),
		Out:  []string{"video"},
	})
	p.VideoOut = "video"

	// Audio concat: silence and speech interleaved in the same order.
	audioIn := make([]Pad, 0, len(tl.Intervals))
	for _, iv := range tl.Intervals {
		if iv.Kind == timeline.KindSegment {
			audioIn = append(audioIn, InputPad(im.Audio[iv.Segment], "a"))
		} else {
			audioIn = append(audioIn, LabelPad(silenceLabel(iv)))
		}
	}
	p.Nodes = append(p.Nodes, Node{
		In:   audioIn,
		Expr: fmt.Sprintf("concat=n=%d:v=0:a=1", len(audioIn)),
		Out:  []string{"concat_audio"},
	})

	// Voice shaping is applied unconditionally; the speech track always
	// gets the boost and the band-pass regardless of music.
	p.Nodes = append(p.Nodes, Node{
		In: []Pad{LabelPad("concat_audio")},
		Expr: "volume=" + fmtNum(opts.VoiceVolume) +
			",highpass=f=" + strconv.Itoa(opts.VoiceHighpass) +
			",lowpass=f=" + strconv.Itoa(opts.VoiceLowpass),
		Out: []string{"voice"},
	})
	p.AudioOut = "voice"

	if im.HasMusic() {
		p.Nodes = append(p.Nodes, Node{
			In:   []Pad{InputPad(im.Music, "a")},
			Expr: "volume=" + fmtNum(opts.MusicVolume),
			Out:  []string{"music"},
		})
		p.Nodes = append(p.Nodes, Node{
			In:   []Pad{LabelPad("voice"), LabelPad("music")},
			Expr: "amix=inputs=2:duration=longest:weights=" + opts.MixWeights,
			Out:  []string{"final_audio"},
		})
		p.AudioOut = "final_audio"
	}

	if err := p.Validate(im.Len()); err != nil {
		return nil, err
	}
	return p, nil
}

// trimLabel names the background slice for an interval.
func trimLabel(iv timeline.Interval) string {
	switch iv.Kind {
	case timeline.KindIntro:
		return "intro_v"
	case timeline.KindOutro:
		return "outro_v"
	case timeline.KindPause:
		return fmt.Sprintf("pause%d", iv.Segment)
	default:
		return fmt.Sprintf("bg%d", iv.Segment)
	}
}

// videoLabel names the stream an interval contributes to the video concat.
// Segments contribute their overlay result, everything else its bare slice.
func videoLabel(iv timeline.Interval) string {
	if iv.Kind == timeline.KindSegment {
		return fmt.Sprintf("v%d", iv.Segment)
	}
	return trimLabel(iv)
}

// silenceLabel names the silence source for a non-speech interval.
func silenceLabel(iv timeline.Interval) string {
	switch iv.Kind {
	case timeline.KindIntro:
		return "intro_audio"
	case timeline.KindOutro:
		return "outro_audio"
	default:
		return fmt.Sprintf("pause_audio%d", iv.Segment)
	}
}
