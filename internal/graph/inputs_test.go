package graph

import (
	"reflect"
	"testing"
)

func TestNewInputMap_Order(t *testing.T) {
	m, err := NewInputMap("bg.mp4",
		[]string{"img0.png", "img1.png"},
		[]string{"a0.wav", "a1.wav"},
		"music.mp3")
	if err != nil {
		t.Fatalf("NewInputMap: %v", err)
	}

	if m.Background != 0 {
		t.Errorf("background index = %d, want 0", m.Background)
	}
	if !reflect.DeepEqual(m.Images, []int{1, 2}) {
		t.Errorf("image indices = %v, want [1 2]", m.Images)
	}
	if !reflect.DeepEqual(m.Audio, []int{3, 4}) {
		t.Errorf("audio indices = %v, want [3 4]", m.Audio)
	}
	if m.Music != 5 {
		t.Errorf("music index = %d, want 5", m.Music)
	}

	wantPaths := []string{"bg.mp4", "img0.png", "img1.png", "a0.wav", "a1.wav", "music.mp3"}
	if !reflect.DeepEqual(m.Paths(), wantPaths) {
		t.Errorf("paths = %v, want %v", m.Paths(), wantPaths)
	}
}

func TestNewInputMap_NoMusic(t *testing.T) {
	m, err := NewInputMap("bg.mp4", []string{"img0.png"}, []string{"a0.wav"}, "")
	if err != nil {
		t.Fatalf("NewInputMap: %v", err)
	}
	if m.HasMusic() {
		t.Error("HasMusic() = true for empty music path")
	}
	if m.Len() != 2+1 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestNewInputMap_CountMismatch(t *testing.T) {
	if _, err := NewInputMap("bg.mp4", []string{"img0.png", "img1.png"}, []string{"a0.wav"}, ""); err == nil {
		t.Error("expected error for mismatched image/audio counts")
	}
}

func TestNewInputMap_EmptyBackground(t *testing.T) {
	if _, err := NewInputMap("", []string{"img0.png"}, []string{"a0.wav"}, ""); err == nil {
		t.Error("expected error for empty background path")
	}
}
