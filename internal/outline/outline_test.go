package outline

import (
	"testing"

	"github.com/Faultbox/assembly-guide/internal/scene"
)

func TestBlinkTogglesEveryHalfPeriod(t *testing.T) {
	c := New(nil)
	c.SetBlinking(true, 2.0)

	want := true
	for i := 0; i < 8; i++ {
		c.Update(0.25)
		want = !want
		if c.On() != want {
			t.Fatalf("update %d: On() = %v, want %v", i, c.On(), want)
		}
	}
}

func TestBlinkAccumulatesSmallSteps(t *testing.T) {
	c := New(nil)
	c.SetBlinking(true, 1.0) // toggle every 0.5s

	c.Update(0.2)
	c.Update(0.2)
	if !c.On() {
		t.Fatal("toggled before half period")
	}
	c.Update(0.2)
	if c.On() {
		t.Fatal("should toggle once 0.5s accumulated")
	}

	// A 1.0s frame is two half periods: net no change.
	c.Update(1.0)
	if c.On() {
		t.Error("two toggles in one frame should cancel out")
	}
}

func TestDisableBlinkingForcesOn(t *testing.T) {
	c := New(nil)
	c.SetBlinking(true, 2.0)
	c.Update(0.25)
	if c.On() {
		t.Fatal("expected off phase")
	}

	c.SetBlinking(false, 0)
	if !c.On() || c.Blinking() {
		t.Error("disabling should force the highlight on")
	}
	c.Update(10)
	if !c.On() {
		t.Error("non-blinking highlight must stay on")
	}
}

func TestBlinkingWithoutFrequencyIsDisabled(t *testing.T) {
	c := New(nil)
	c.SetBlinking(true, 0)
	if c.Blinking() {
		t.Error("zero frequency should not enable blinking")
	}
}

func TestSelectionAndClear(t *testing.T) {
	s := scene.New("test")
	a := s.AddMesh("a", nil, scene.Bounds{}, nil)
	b := s.AddMesh("b", nil, scene.Bounds{}, nil)
	opacity := a.Opacity()

	c := New(nil)
	c.SetSelection([]*scene.Mesh{a})
	if !c.IsSelected(a) || c.IsSelected(b) || len(c.Selection()) != 1 {
		t.Fatal("selection not applied")
	}

	c.SetSelection([]*scene.Mesh{b})
	if c.IsSelected(a) || !c.IsSelected(b) {
		t.Error("SetSelection should replace, not add")
	}

	c.SetBlinking(true, 4)
	c.Clear()
	if len(c.Selection()) != 0 || c.IsSelected(b) || c.Blinking() || !c.On() {
		t.Error("Clear should empty selection and stop blinking")
	}
	if a.Opacity() != opacity || !a.Visible {
		t.Error("outline controller must not mutate meshes")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#ff0000", Color{1, 0, 0, 1}, true},
		{"00ff00", Color{0, 1, 0, 1}, true},
		{"#fff", Color{1, 1, 1, 1}, true},
		{"#0000ff80", Color{0, 0, 1, 128.0 / 255.0}, true},
		{"#12", Color{}, false},
		{"#zzzzzz", Color{}, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseColor(%q) error = %v", tt.in, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
