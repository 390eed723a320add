package scene

import (
	"github.com/inkframe/inkframe/backend-go/internal/geom"
)

// ShapeKind names the concrete geometry of a leaf.
type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeEllipse   ShapeKind = "ellipse"
	ShapePath      ShapeKind = "path"
)

// Shape is the local-space geometry of a leaf. It is implemented only by
// Rectangle, Ellipse and Path.
type Shape interface {
	Kind() ShapeKind
	// LocalBounds returns the axis-aligned box in local space. ok is false
	// for geometry without extent, such as a path with no points.
	LocalBounds() (b geom.BoundingBox, ok bool)
	cloneShape() Shape
}

// Rectangle is an axis-aligned rectangle in local space.
type Rectangle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Ellipse is an axis-aligned ellipse in local space.
type Ellipse struct {
	CX float64
	CY float64
	RX float64
	RY float64
}

// Path is a sequence of SVG-style commands.
type Path struct {
	Commands []PathCommand
	Closed   bool
}

func (Rectangle) Kind() ShapeKind { return ShapeRectangle }
func (Ellipse) Kind() ShapeKind   { return ShapeEllipse }
func (Path) Kind() ShapeKind      { return ShapePath }

func (r Rectangle) LocalBounds() (geom.BoundingBox, bool) {
	return geom.BoxFromRect(r.X, r.Y, r.Width, r.Height), true
}

// Contains is inclusive on all four edges. A rectangle with negative size
// contains nothing.
func (r Rectangle) Contains(x, y float64) bool {
	b, _ := r.LocalBounds()
	return b.Contains(x, y)
}

func (e Ellipse) LocalBounds() (geom.BoundingBox, bool) {
	return geom.BoxFromEllipse(e.CX, e.CY, e.RX, e.RY), true
}

// Contains uses the normalized ellipse equation. A non-positive radius
// contains nothing.
func (e Ellipse) Contains(x, y float64) bool {
	if e.RX <= 0 || e.RY <= 0 {
		return false
	}
	dx := (x - e.CX) / e.RX
	dy := (y - e.CY) / e.RY
	return dx*dx+dy*dy <= 1
}

// LocalBounds covers every anchor and control point.
func (p Path) LocalBounds() (geom.BoundingBox, bool) {
	b := geom.EmptyBox()
	for _, cmd := range p.Commands {
		for _, pt := range cmd.Points() {
			b = b.Extend(pt)
		}
	}
	return b, !b.IsEmpty()
}

// Contains tests the path's control box, edges included.
func (p Path) Contains(x, y float64) bool {
	b, ok := p.LocalBounds()
	return ok && b.Contains(x, y)
}

// Anchors returns the endpoint of every MoveTo, LineTo and CurveTo, in order.
func (p Path) Anchors() []geom.Point {
	var out []geom.Point
	for _, cmd := range p.Commands {
		if cmd.Op != OpClosePath {
			out = append(out, geom.Pt(cmd.X, cmd.Y))
		}
	}
	return out
}

func (r Rectangle) cloneShape() Shape { return r }
func (e Ellipse) cloneShape() Shape   { return e }

func (p Path) cloneShape() Shape {
	cmds := make([]PathCommand, len(p.Commands))
	copy(cmds, p.Commands)
	return Path{Commands: cmds, Closed: p.Closed}
}

// CloneShape returns a copy of s that shares no memory with it.
func CloneShape(s Shape) Shape {
	if s == nil {
		return nil
	}
	return s.cloneShape()
}
