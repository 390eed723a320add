package render

import (
	"slices"
	"strings"
	"testing"

	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

func ops(cmds []DrawCommand) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Op
	}
	return out
}

func TestCommandsRectangle(t *testing.T) {
	g := scene.New()
	g.Add(g.GenerateID(), scene.Rectangle{X: 10, Y: 20, Width: 100, Height: 50}, geom.Matrix2D{1, 2, 3, 4, 5, 6})

	cmds := Commands(g)
	want := []string{OpSetTransform, OpFillStyle, OpStrokeStyle, OpLineWidth, OpBeginPath, OpRect, OpFill, OpStroke, OpResetTransform}
	if got := ops(cmds); !slices.Equal(got, want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	if !slices.Equal(cmds[0].Transform, []float64{1, 3, 2, 4, 5, 6}) {
		t.Errorf("setTransform = %v, want canvas order [1 3 2 4 5 6]", cmds[0].Transform)
	}
	if cmds[0].ObjectID != "obj_1" {
		t.Errorf("objectId = %q, want obj_1", cmds[0].ObjectID)
	}
	if !slices.Equal(cmds[5].Args, []float64{10, 20, 100, 50}) {
		t.Errorf("rect args = %v", cmds[5].Args)
	}
}

func TestCommandsUnpaintedPath(t *testing.T) {
	g := scene.New()
	n := g.Add("p", scene.Path{Commands: []scene.PathCommand{
		scene.MoveTo(0, 0), scene.CurveTo(1, 2, 3, 4, 5, 6), scene.ClosePath(),
	}}, geom.Identity())
	n.Style = scene.Style{Stroke: "#000", StrokeWidth: 1}

	want := []string{OpSetTransform, OpStrokeStyle, OpLineWidth, OpBeginPath, OpMoveTo, OpBezierCurveTo, OpClosePath, OpStroke, OpResetTransform}
	if got := ops(Commands(g)); !slices.Equal(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}
}

func TestCommandsPaintersOrder(t *testing.T) {
	g := scene.New()
	g.Add("bottom", scene.Rectangle{Width: 1, Height: 1}, geom.Identity())
	g.AddGroup("grp", []*scene.Node{scene.NewLeaf("nested", scene.Ellipse{RX: 1, RY: 1}, geom.Identity())}, geom.Translate(5, 5))
	g.Add("top", scene.Rectangle{Width: 1, Height: 1}, geom.Identity())

	var ids []string
	for _, c := range Commands(g) {
		if c.Op == OpSetTransform {
			ids = append(ids, c.ObjectID)
		}
	}
	if !slices.Equal(ids, []string{"bottom", "nested", "top"}) {
		t.Errorf("paint order = %v", ids)
	}
}

func TestDrawCommandsToJSONEmpty(t *testing.T) {
	got, err := DrawCommandsToJSON(Commands(scene.New()))
	if err != nil || got != "[]" {
		t.Errorf("DrawCommandsToJSON(empty) = %q, %v", got, err)
	}
}

func TestSVG(t *testing.T) {
	g := scene.New()
	g.Add("r", scene.Rectangle{X: 0, Y: 0, Width: 10, Height: 5.5}, geom.Translate(3, 4))
	n := g.Add("p", scene.Path{Commands: []scene.PathCommand{scene.MoveTo(0, 0), scene.LineTo(1, 1), scene.ClosePath()}}, geom.Identity())
	n.Style = scene.Style{Fill: `"><script>`, StrokeWidth: 0}

	out := SVG(g, 800, 600)

	for _, want := range []string{
		`viewBox="0 0 800 600"`,
		`fill="#1e1e1e"`,
		`<rect id="r" x="0" y="0" width="10" height="5.5" fill="#3b82f6" stroke="#1e40af" stroke-width="2" transform="matrix(1,0,0,1,3,4)"/>`,
		`d="M0,0 L1,1 Z"`,
		`stroke="none"`,
		"</svg>\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<script>") {
		t.Error("SVG did not escape a color value")
	}
}
