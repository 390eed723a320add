package document

import (
	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

// NewSampleScene builds a small demo scene: a rectangle, an ellipse, a
// triangle, a heart and a rotated group holding two shapes.
func NewSampleScene() *scene.Graph {
	g := scene.New()

	rect := g.Add(g.GenerateID(), scene.Rectangle{Width: 200, Height: 150}, geom.Translate(200, 200))
	rect.Style = scene.Style{Fill: "#e94560", Stroke: "#000000", StrokeWidth: 2}

	ellipse := g.Add(g.GenerateID(), scene.Ellipse{RX: 120, RY: 80}, geom.Translate(640, 360))
	ellipse.Style = scene.Style{Fill: "#0f3460", Stroke: "#16213e", StrokeWidth: 2}

	triangle := g.Add(g.GenerateID(), scene.Path{
		Commands: []scene.PathCommand{
			scene.MoveTo(0, 150),
			scene.LineTo(100, 0),
			scene.LineTo(200, 150),
			scene.ClosePath(),
		},
		Closed: true,
	}, geom.Translate(900, 200))
	triangle.Style = scene.Style{Fill: "#53d769", Stroke: "#2d6a4f", StrokeWidth: 2}

	s := 1.2
	heart := g.Add(g.GenerateID(), scene.Path{
		Commands: []scene.PathCommand{
			scene.MoveTo(0, 30*s),
			scene.CurveTo(-50*s, -20*s, -50*s, -70*s, 0, -50*s),
			scene.CurveTo(50*s, -70*s, 50*s, -20*s, 0, 30*s),
			scene.ClosePath(),
		},
		Closed: true,
	}, geom.Translate(1100, 550))
	heart.Style = scene.Style{Fill: "#ef4444", Stroke: "#991b1b", StrokeWidth: 2}

	spinnerRect := scene.NewLeaf(g.GenerateID(), scene.Rectangle{Width: 60, Height: 100}, geom.Translate(-30, -50))
	spinnerRect.Style = scene.Style{Fill: "#f5a623", Stroke: "#c78400", StrokeWidth: 2}
	spinnerDot := scene.NewLeaf(g.GenerateID(), scene.Ellipse{RX: 20, RY: 20}, geom.Translate(0, -70))
	spinnerDot.Style = scene.Style{Fill: "#bd10e0", Stroke: "#8b0ba8", StrokeWidth: 2}
	g.AddGroup(g.GenerateID(), []*scene.Node{spinnerRect, spinnerDot},
		geom.Translate(500, 450).Compose(geom.RotateDegrees(-20)))

	return g
}
