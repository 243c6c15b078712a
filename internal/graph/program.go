package graph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrLabelCollision is returned when a node tries to define an output
	// label that an earlier node already produced.
	ErrLabelCollision = errors.New("graph: duplicate output label")

	// ErrUnresolvedInput is returned when a node consumes a label no earlier
	// node produced, or references an external input index outside the
	// input map.
	ErrUnresolvedInput = errors.New("graph: unresolved input reference")
)

// Pad identifies one stream flowing into a node: either a stream of an
// external input (Input >= 0, Stream "v" or "a") or a label produced by an
// earlier node (Input == -1).
type Pad struct {
	Input  int
	Stream string
	Label  string
}

// InputPad references a stream of an external input.
func InputPad(index int, stream string) Pad {
	return Pad{Input: index, Stream: stream}
}

// LabelPad references the output of an earlier node.
func LabelPad(label string) Pad {
	return Pad{Input: -1, Label: label}
}

func (p Pad) String() string {
	if p.Input >= 0 {
		return fmt.Sprintf("[%d:%s]", p.Input, p.Stream)
	}
	return "[" + p.Label + "]"
}

// Node is one filter chain: zero or more input pads, the filter expression
// text, and the labels it defines. Source filters such as aevalsrc have no
// input pads.
type Node struct {
	In   []Pad
	Expr string
	Out  []string
}

func (n Node) String() string {
	var b strings.Builder
	for _, p := range n.In {
		b.WriteString(p.String())
	}
	b.WriteString(n.Expr)
	for _, out := range n.Out {
		b.WriteString("[" + out + "]")
	}
	return b.String()
}

// Program is a compiled filter graph: an ordered node list plus the labels
// that carry the final video and audio streams.
type Program struct {
	Nodes    []Node
	VideoOut string
	AudioOut string
}

// Serialize renders the program as an ffmpeg filter_complex string. The
// output is a pure function of the node list, so recompiling the same plan
// yields byte-identical text.
func (p *Program) Serialize() string {
	parts := make([]string, len(p.Nodes))
	for i, n := range p.Nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ";")
}

// Validate walks the nodes in order, checking that every consumed label was
// defined by an earlier node, every external input index is within the map,
// and no label is defined twice. A label may be consumed by any number of
// later nodes.
func (p *Program) Validate(inputs int) error {
	defined := make(map[string]bool)
	for _, n := range p.Nodes {
		for _, in := range n.In {
			if in.Input >= 0 {
				if in.Input >= inputs {
					return fmt.Errorf("%w: input index %d out of range (have %d inputs)", ErrUnresolvedInput, in.Input, inputs)
				}
				continue
			}
			if !defined[in.Label] {
				return fmt.Errorf("%w: [%s] consumed before definition", ErrUnresolvedInput, in.Label)
			}
		}
		for _, out := range n.Out {
			if defined[out] {
				return fmt.Errorf("%w: [%s]", ErrLabelCollision, out)
			}
			defined[out] = true
		}
	}
	for _, final := range []string{p.VideoOut, p.AudioOut} {
		if !defined[final] {
			return fmt.Errorf("%w: final label [%s] never defined", ErrUnresolvedInput, final)
		}
	}
	return nil
}

// fmtSec renders a duration or timestamp with fixed millisecond precision,
// the only place float formatting enters the graph text.
func fmtSec(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// fmtNum renders a volume or weight without trailing zeros (1.5, 0.08).
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
