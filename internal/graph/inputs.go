package graph

import (
	"fmt"
)

// InputMap is the positional contract between external resource files and
// the indices referenced inside a compiled Program. One enumeration pass in
// NewInputMap assigns every index and records the matching path, so the
// compiler's references and the invoker's file list can never disagree.
//
// Order: background video, then the N images in segment order, then the N
// audio clips in segment order, then the optional music file.
type InputMap struct {
	Background int
	Images     []int
	Audio      []int
	Music      int // -1 when no music track is present

	paths []string
}

// NewInputMap enumerates the external resources in their fixed order.
// music may be empty. The image and audio lists must be the same length;
// a mismatch signals a segment/resource count bug upstream.
func NewInputMap(background string, images, audio []string, music string) (*InputMap, error) {
	if len(images) != len(audio) {
		return nil, fmt.Errorf("graph: %d images but %d audio clips", len(images), len(audio))
	}
	if background == "" {
		return nil, fmt.Errorf("graph: background path must not be empty")
	}

	m := &InputMap{Music: -1}

	add := func(path string) int {
		m.paths = append(m.paths, path)
		return len(m.paths) - 1
	}

	m.Background = add(background)
	for _, p := range images {
		m.Images = append(m.Images, add(p))
	}
	for _, p := range audio {
		m.Audio = append(m.Audio, add(p))
	}
	if music != "" {
		m.Music = add(music)
	}
	return m, nil
}

// Segments returns the number of poem segments the map was built for.
func (m *InputMap) Segments() int { return len(m.Images) }

// Len returns the number of external inputs.
func (m *InputMap) Len() int { return len(m.paths) }

// HasMusic reports whether a music input is present.
func (m *InputMap) HasMusic() bool { return m.Music >= 0 }

// Paths returns the external input files in index order. The result aliases
// the map's internal slice; callers must not mutate it.
func (m *InputMap) Paths() []string { return m.paths }
