package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#ff0000", color.NRGBA{255, 0, 0, 255}, true},
		{"#0f0", color.NRGBA{0, 255, 0, 255}, true},
		{"#00000080", color.NRGBA{0, 0, 0, 128}, true},
		{"SteelBlue", color.NRGBA{70, 130, 180, 255}, true},
		{"", color.NRGBA{}, false},
		{"none", color.NRGBA{}, false},
		{"#12", color.NRGBA{}, false},
		{"#zzzzzz", color.NRGBA{}, false},
		{"notacolor", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, ok := ParseColor(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseColor(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if !ok {
				return
			}
			if got := color.NRGBAModel.Convert(c).(color.NRGBA); got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func near(c color.Color, want color.RGBA) bool {
	got := color.RGBAModel.Convert(c).(color.RGBA)
	diff := func(a, b uint8) bool { return a > b+2 || b > a+2 }
	return !diff(got.R, want.R) && !diff(got.G, want.G) && !diff(got.B, want.B) && !diff(got.A, want.A)
}

func TestRasterFillAndStroke(t *testing.T) {
	g := scene.New()
	filled := g.Add("filled", scene.Rectangle{X: 5, Y: 5, Width: 10, Height: 10}, geom.Identity())
	filled.Style = scene.Style{Fill: "#ff0000"}
	outlined := g.Add("outlined", scene.Rectangle{X: 25, Y: 5, Width: 10, Height: 10}, geom.Identity())
	outlined.Style = scene.Style{Stroke: "#00ff00", StrokeWidth: 2}

	img := Raster(g, 40, 20)
	bg := color.RGBA{0x1e, 0x1e, 0x1e, 0xff}

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"background", 1, 1, bg},
		{"fill interior", 10, 10, color.RGBA{255, 0, 0, 255}},
		{"stroke left edge", 24, 10, color.RGBA{0, 255, 0, 255}},
		{"stroke interior unpainted", 30, 10, bg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := img.At(tt.x, tt.y); !near(got, tt.want) {
				t.Errorf("At(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRasterFollowsWorldTransform(t *testing.T) {
	g := scene.New()
	g.AddGroup("grp", []*scene.Node{
		scene.NewLeaf("e", scene.Ellipse{RX: 2, RY: 2}, geom.Identity()),
	}, geom.Translate(20, 20).Compose(geom.Scale(3, 3)))
	g.Find("grp").Children[0].Style = scene.Style{Fill: "white"}
	g.Add("flat", scene.Rectangle{Width: 40, Height: 40}, geom.Scale(0, 1)).Style = scene.Style{Fill: "#000"}

	img := Raster(g, 40, 40)
	if got := img.At(20, 20); !near(got, color.RGBA{255, 255, 255, 255}) {
		t.Errorf("ellipse center = %v, want white", got)
	}
	if got := img.At(20, 28); !near(got, color.RGBA{0x1e, 0x1e, 0x1e, 0xff}) {
		t.Errorf("outside scaled ellipse = %v, want background", got)
	}
}

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := PNG(&buf, scene.New(), 32, 16); err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 32, 16) {
		t.Errorf("bounds = %v", got)
	}
}

func TestFlattenSplitsSubpaths(t *testing.T) {
	pls := flatten([]scene.PathCommand{
		scene.MoveTo(0, 0), scene.LineTo(10, 0), scene.ClosePath(),
		scene.LineTo(0, 10),
		scene.MoveTo(50, 50), scene.CurveTo(50, 60, 60, 60, 60, 50),
	})
	if len(pls) != 3 {
		t.Fatalf("got %d polylines, want 3", len(pls))
	}
	if !pls[0].closed || len(pls[0].points) != 2 {
		t.Errorf("first polyline = %+v", pls[0])
	}
	if pls[1].points[0] != geom.Pt(0, 0) {
		t.Errorf("segment after close starts at %v, want subpath start", pls[1].points[0])
	}
	if last := pls[2].points[len(pls[2].points)-1]; last != geom.Pt(60, 50) {
		t.Errorf("flattened curve ends at %v", last)
	}
	if len(pls[2].points) != curveSteps+1 {
		t.Errorf("curve flattened to %d points, want %d", len(pls[2].points), curveSteps+1)
	}
}
