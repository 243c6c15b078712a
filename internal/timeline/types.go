package timeline

// Kind classifies an interval within the output's temporal structure.
type Kind int

const (
	KindIntro Kind = iota
	KindSegment
	KindPause
	KindOutro
)

// String returns the lowercase kind name used in labels and logs.
func (k Kind) String() string {
	switch k {
	case KindIntro:
		return "intro"
	case KindSegment:
		return "segment"
	case KindPause:
		return "pause"
	case KindOutro:
		return "outro"
	}
	return "unknown"
}

// Segment is one poem line's image+audio+duration triple, constructed once
// from the ordered line list before planning and immutable thereafter.
type Segment struct {
	Index     int // 0-based, poem order
	ImagePath string
	AudioPath string
	Duration  float64 // seconds, >= 0
}

// Interval is one time-bounded slot in the Timeline. Intervals are
// contiguous and non-overlapping; Start of interval i+1 equals
// Start+Duration of interval i.
//
// Segment holds the owning segment index for KindSegment intervals and the
// index of the preceding segment for KindPause intervals (pause labels are
// derived from it); it is -1 for intro and outro.
type Interval struct {
	Kind     Kind
	Start    float64
	Duration float64
	Segment  int
}

// End returns the interval's exclusive end time.
func (iv Interval) End() float64 { return iv.Start + iv.Duration }

// Timeline is the complete ordered sequence of intervals describing the
// final output's temporal structure: intro, seg 0, pause, seg 1, …,
// seg N-1, outro.
type Timeline struct {
	Intervals []Interval
	Segments  []Segment
}

// Total returns the timeline's total duration in seconds.
func (t *Timeline) Total() float64 {
	if len(t.Intervals) == 0 {
		return 0
	}
	last := t.Intervals[len(t.Intervals)-1]
	return last.End()
}
