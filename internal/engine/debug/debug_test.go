package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/assembly-guide/internal/outline"
	"github.com/Faultbox/assembly-guide/internal/scene"
	"github.com/Faultbox/assembly-guide/pkg/math"
)

func unitBox() scene.Bounds {
	return scene.Bounds{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}
}

func TestWireframeVertices(t *testing.T) {
	verts := WireframeVertices(unitBox(), math.Translate(10, 0, 0), 0)
	if len(verts) != BBoxWireframeVertexCount*3 {
		t.Fatalf("got %d floats, want %d", len(verts), BBoxWireframeVertexCount*3)
	}

	// Every edge has unit-box length 2 and runs along one axis.
	for i := 0; i < len(verts); i += 6 {
		a := math.Vec3{X: verts[i], Y: verts[i+1], Z: verts[i+2]}
		b := math.Vec3{X: verts[i+3], Y: verts[i+4], Z: verts[i+5]}
		if d := a.Distance(b); d < 1.999 || d > 2.001 {
			t.Errorf("edge %d length = %v", i/6, d)
		}
		if a.X < 9 || a.X > 11 {
			t.Errorf("edge %d not translated: %v", i/6, a)
		}
	}
}

func TestWireframePadding(t *testing.T) {
	verts := WireframeVertices(unitBox(), math.Identity(), 0.5)
	for _, v := range verts {
		if v != 1.5 && v != -1.5 {
			t.Fatalf("padded coordinate %v, want ±1.5", v)
		}
	}
}

type highlight struct {
	on  bool
	sel map[*scene.Mesh]bool
}

func (h highlight) IsSelected(m *scene.Mesh) bool { return h.sel[m] }
func (h highlight) On() bool                      { return h.on }
func (h highlight) Color() outline.Color          { return outline.DefaultColor }

func TestBuildDrawList(t *testing.T) {
	s := scene.New("t")
	solid := s.AddMesh("solid", nil, unitBox(), nil)
	ghost := s.AddMesh("ghost", nil, unitBox(), nil)
	ghost.SetOpacity(0.3)
	gone := s.AddMesh("gone", nil, unitBox(), nil)
	gone.Visible = false
	faded := s.AddMesh("faded", nil, unitBox(), nil)
	faded.SetOpacity(0)

	hl := highlight{on: true, sel: map[*scene.Mesh]bool{ghost: true, gone: true}}
	list := BuildDrawList([]*scene.Mesh{ghost, solid, gone, faded}, hl)

	if len(list) != 3 {
		t.Fatalf("got %d batches, want 3", len(list))
	}
	if list[0].Mesh != solid || list[0].Transparent {
		t.Error("opaque mesh should be drawn first")
	}
	if list[1].Mesh != ghost || !list[1].Transparent || list[1].Color[3] != 0.3 {
		t.Errorf("transparent batch = %+v", list[1])
	}
	c := outline.DefaultColor
	if list[2].Mesh != ghost || list[2].Color != [4]float32{c.R, c.G, c.B, c.A} {
		t.Error("highlight box should come last in the outline colour")
	}

	hl.on = false
	if n := len(BuildDrawList([]*scene.Mesh{ghost, solid}, hl)); n != 2 {
		t.Errorf("highlight off phase: got %d batches, want 2", n)
	}
}

func TestScreenshotCapture(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "guide")
	sc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	if got := filepath.Base(sc.Filename("Step 2: wings")); got != "guide_Step-2--wings_2024-03-01_12-00-00.png" {
		t.Errorf("Filename() = %s", got)
	}

	// 1x2 image: bottom row red, top row blue in OpenGL order.
	pixels := []byte{255, 0, 0, 255, 0, 0, 255, 255}
	path, err := sc.CaptureFromPixels(pixels, 1, 2, "")
	if err != nil {
		t.Fatalf("CaptureFromPixels() error = %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "guide_2024") {
		t.Errorf("unexpected name %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0 || b == 0 {
		t.Error("top row should be blue after the flip")
	}

	if _, err := sc.CaptureFromPixels(pixels, 2, 2, ""); err == nil {
		t.Error("expected size mismatch error")
	}
}
