package engine

import (
	"math"
	"testing"

	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

func TestHitTestRotatedRectangle(t *testing.T) {
	g := scene.New()
	rot := geom.Rotate(math.Pi / 4)
	g.Add("r", scene.Rectangle{Width: 100, Height: 50}, rot)

	x, y := rot.TransformPoint(50, 25)
	if got := HitTest(g, x, y); got != "r" {
		t.Errorf("HitTest(mapped center) = %q, want r", got)
	}
	if got := HitTest(g, 1000, 1000); got != "" {
		t.Errorf("HitTest(1000, 1000) = %q, want none", got)
	}
}

func TestHitTestTopmostFirst(t *testing.T) {
	g := scene.New()
	g.Add("bottom", scene.Rectangle{Width: 100, Height: 100}, geom.Identity())
	g.Add("top", scene.Ellipse{CX: 50, CY: 50, RX: 20, RY: 20}, geom.Identity())

	tests := []struct {
		name string
		x, y float64
		want string
	}{
		{"inside both", 50, 50, "top"},
		{"inside bottom only", 5, 5, "bottom"},
		{"rectangle corner inclusive", 100, 100, "bottom"},
		{"outside", 150, 50, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HitTest(g, tt.x, tt.y); got != tt.want {
				t.Errorf("HitTest(%v, %v) = %q, want %q", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitTestNestedAndDegenerate(t *testing.T) {
	g := scene.New()
	g.AddGroup("g", []*scene.Node{
		scene.NewLeaf("child", scene.Rectangle{Width: 10, Height: 10}, geom.Translate(5, 0)),
	}, geom.Translate(100, 100).Compose(geom.Scale(2, 2)))
	g.Add("flat", scene.Rectangle{Width: 1000, Height: 1000}, geom.Scale(0, 1))

	// child spans world (110..130, 100..120).
	if got := HitTest(g, 120, 110); got != "child" {
		t.Errorf("HitTest(120, 110) = %q, want child", got)
	}
	if got := HitTest(g, 0, 0); got != "" {
		t.Errorf("degenerate leaf was hit: %q", got)
	}
}

func TestHitTestPathControlBox(t *testing.T) {
	leaf := scene.Leaf{
		ID:    "p",
		Shape: scene.Path{Commands: []scene.PathCommand{scene.MoveTo(0, 0), scene.CurveTo(0, 100, 100, 100, 100, 0)}},
		World: geom.Identity(),
	}
	// The curve never reaches y=100 but its control points do.
	if !HitTestLeaf(leaf, 50, 95) {
		t.Error("point inside control box missed")
	}
	if HitTestLeaf(leaf, 50, 101) {
		t.Error("point outside control box hit")
	}
}

func TestSelectionOverlayCorners(t *testing.T) {
	g := scene.New()
	g.Add("r", scene.Rectangle{X: 0, Y: 0, Width: 10, Height: 20}, geom.Translate(100, 0))
	g.Add("e", scene.Ellipse{CX: 0, CY: 0, RX: 5, RY: 5}, geom.Identity())
	g.Add("empty", scene.Path{}, geom.Identity())

	overlays := SelectionOverlays(g, func(string) bool { return true })
	if len(overlays) != 2 {
		t.Fatalf("got %d overlays, want 2 (empty path skipped)", len(overlays))
	}
	want := [4]geom.Point{{X: 100, Y: 0}, {X: 110, Y: 0}, {X: 110, Y: 20}, {X: 100, Y: 20}}
	if overlays[0].Corners != want {
		t.Errorf("rectangle corners = %v, want %v", overlays[0].Corners, want)
	}
	if c := overlays[1].Centroid(); c != (geom.Point{}) {
		t.Errorf("ellipse centroid = %v, want origin", c)
	}
}

func TestCornerOpposite(t *testing.T) {
	tests := []struct {
		c, want Corner
	}{
		{TopLeft, BottomRight},
		{TopRight, BottomLeft},
		{BottomRight, TopLeft},
		{BottomLeft, TopRight},
	}
	for _, tt := range tests {
		if got := tt.c.Opposite(); got != tt.want {
			t.Errorf("%v.Opposite() = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestParseCorner(t *testing.T) {
	for c := TopLeft; c <= BottomLeft; c++ {
		if got, ok := ParseCorner(c.String()); !ok || got != c {
			t.Errorf("ParseCorner(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := ParseCorner("middle"); ok {
		t.Error("ParseCorner(middle) ok = true")
	}
}
