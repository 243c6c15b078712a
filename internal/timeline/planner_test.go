package timeline

import (
	"errors"
	"math"
	"testing"
)

// segs builds segments with the given durations; paths don't matter here.
func segs(durations ...float64) []Segment {
	out := make([]Segment, len(durations))
	for i, d := range durations {
		out[i] = Segment{Index: i, Duration: d}
	}
	return out
}

func TestPlan_SingleSegment(t *testing.T) {
	tl, err := Plan(segs(3.0), 2.0, 2.0, 0.5)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	want := []Interval{
		{Kind: KindIntro, Start: 0, Duration: 2.0, Segment: -1},
		{Kind: KindSegment, Start: 2.0, Duration: 3.0, Segment: 0},
		{Kind: KindOutro, Start: 5.0, Duration: 2.0, Segment: -1},
	}
	if len(tl.Intervals) != len(want) {
		t.Fatalf("intervals: got %d, want %d", len(tl.Intervals), len(want))
	}
	for i, w := range want {
		got := tl.Intervals[i]
		if got.Kind != w.Kind || got.Start != w.Start || got.Duration != w.Duration || got.Segment != w.Segment {
			t.Errorf("interval %d: got %+v, want %+v", i, got, w)
		}
	}
	if tl.Total() != 7.0 {
		t.Errorf("total: got %v, want 7.0", tl.Total())
	}
}

func TestPlan_ThreeSegments(t *testing.T) {
	tl, err := Plan(segs(1.0, 2.0, 1.5), 2.0, 2.0, 0.5)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	// intro + 4.5 speech + 2 pauses + outro = 9.5
	if math.Abs(tl.Total()-9.5) > 1e-6 {
		t.Errorf("total: got %v, want 9.5", tl.Total())
	}
	if len(tl.Intervals) != 7 {
		t.Errorf("intervals: got %d, want 7", len(tl.Intervals))
	}

	wantKinds := []Kind{KindIntro, KindSegment, KindPause, KindSegment, KindPause, KindSegment, KindOutro}
	for i, k := range wantKinds {
		if tl.Intervals[i].Kind != k {
			t.Errorf("interval %d: kind %v, want %v", i, tl.Intervals[i].Kind, k)
		}
	}
}

func TestPlan_Contiguity(t *testing.T) {
	durations := [][]float64{
		{3.0},
		{1.0, 2.0, 1.5},
		{0.0, 0.0},
		{2.25, 0.1, 7.75, 1.333, 4.0},
	}
	for _, durs := range durations {
		tl, err := Plan(segs(durs...), 2.0, 2.0, 0.5)
		if err != nil {
			t.Fatalf("Plan(%v): %v", durs, err)
		}

		n := len(durs)
		if got := len(tl.Intervals); got != 2*n+1 {
			t.Errorf("%v: intervals = %d, want %d", durs, got, 2*n+1)
		}

		pauses := 0
		for i, iv := range tl.Intervals {
			if iv.Duration < 0 {
				t.Errorf("%v: interval %d has negative duration", durs, i)
			}
			if i > 0 {
				prev := tl.Intervals[i-1]
				if math.Abs(iv.Start-prev.End()) > 1e-9 {
					t.Errorf("%v: interval %d not contiguous: start %v, prev end %v",
						durs, i, iv.Start, prev.End())
				}
			}
			if iv.Kind == KindPause {
				pauses++
			}
		}
		if pauses != n-1 {
			t.Errorf("%v: pauses = %d, want %d", durs, pauses, n-1)
		}

		sum := 0.0
		for _, d := range durs {
			sum += d
		}
		closedForm := 2.0 + sum + float64(n-1)*0.5 + 2.0
		if math.Abs(tl.Total()-closedForm) > 1e-6 {
			t.Errorf("%v: total %v, want %v", durs, tl.Total(), closedForm)
		}
	}
}

func TestPlan_ZeroSlotsOmitted(t *testing.T) {
	// A zero-length intro/outro/pause must not produce an interval at all:
	// each one would become an empty trim or silence stream downstream.
	tl, err := Plan(segs(1.5, 2.5), 0, 0, 0)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(tl.Intervals) != 2 {
		t.Fatalf("intervals: got %d, want 2 (segments only): %+v", len(tl.Intervals), tl.Intervals)
	}
	for i, iv := range tl.Intervals {
		if iv.Kind != KindSegment {
			t.Errorf("interval %d: kind %v, want segment", i, iv.Kind)
		}
		if iv.Duration == 0 {
			t.Errorf("interval %d has zero duration", i)
		}
	}
	if tl.Intervals[0].Start != 0 || tl.Intervals[1].Start != 1.5 {
		t.Errorf("starts: %v / %v, want 0 / 1.5", tl.Intervals[0].Start, tl.Intervals[1].Start)
	}
	if tl.Total() != 4.0 {
		t.Errorf("total: got %v, want 4.0", tl.Total())
	}

	// Pause omitted but intro/outro kept.
	tl, err = Plan(segs(1.0, 1.0), 2.0, 2.0, 0)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	wantKinds := []Kind{KindIntro, KindSegment, KindSegment, KindOutro}
	if len(tl.Intervals) != len(wantKinds) {
		t.Fatalf("intervals: got %d, want %d", len(tl.Intervals), len(wantKinds))
	}
	for i, k := range wantKinds {
		if tl.Intervals[i].Kind != k {
			t.Errorf("interval %d: kind %v, want %v", i, tl.Intervals[i].Kind, k)
		}
	}
}

func TestPlan_Empty(t *testing.T) {
	_, err := Plan(nil, 2.0, 2.0, 0.5)
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("want ErrEmpty, got %v", err)
	}
}

func TestPlan_NegativeDuration(t *testing.T) {
	_, err := Plan(segs(1.0, -0.5), 2.0, 2.0, 0.5)
	if err == nil {
		t.Error("negative duration should fail")
	}
}

func TestPlan_PauseSegmentOwnership(t *testing.T) {
	tl, err := Plan(segs(1.0, 1.0, 1.0), 2.0, 2.0, 0.5)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	// Pause intervals carry the index of the segment they follow.
	var pauseOwners []int
	for _, iv := range tl.Intervals {
		if iv.Kind == KindPause {
			pauseOwners = append(pauseOwners, iv.Segment)
		}
	}
	if len(pauseOwners) != 2 || pauseOwners[0] != 0 || pauseOwners[1] != 1 {
		t.Errorf("pause owners: %v, want [0 1]", pauseOwners)
	}
}
