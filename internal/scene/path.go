package scene

import "github.com/inkframe/inkframe/backend-go/internal/geom"

// PathOp is the verb of a path command.
type PathOp string

const (
	OpMoveTo    PathOp = "MoveTo"
	OpLineTo    PathOp = "LineTo"
	OpCurveTo   PathOp = "CurveTo"
	OpClosePath PathOp = "ClosePath"
)

// PathCommand is one path segment. X1/Y1 and X2/Y2 are the cubic control
// points and are only meaningful for CurveTo; X/Y is the end anchor for every
// op except ClosePath.
type PathCommand struct {
	Op PathOp
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
	X  float64
	Y  float64
}

func MoveTo(x, y float64) PathCommand {
	return PathCommand{Op: OpMoveTo, X: x, Y: y}
}

func LineTo(x, y float64) PathCommand {
	return PathCommand{Op: OpLineTo, X: x, Y: y}
}

func CurveTo(x1, y1, x2, y2, x, y float64) PathCommand {
	return PathCommand{Op: OpCurveTo, X1: x1, Y1: y1, X2: x2, Y2: y2, X: x, Y: y}
}

func ClosePath() PathCommand {
	return PathCommand{Op: OpClosePath}
}

// Points returns every coordinate the command references, control points first.
func (c PathCommand) Points() []geom.Point {
	switch c.Op {
	case OpMoveTo, OpLineTo:
		return []geom.Point{{X: c.X, Y: c.Y}}
	case OpCurveTo:
		return []geom.Point{{X: c.X1, Y: c.Y1}, {X: c.X2, Y: c.Y2}, {X: c.X, Y: c.Y}}
	default:
		return nil
	}
}

// Transform maps every coordinate of the command through m.
func (c PathCommand) Transform(m geom.Matrix2D) PathCommand {
	out := c
	if c.Op == OpCurveTo {
		out.X1, out.Y1 = m.TransformPoint(c.X1, c.Y1)
		out.X2, out.Y2 = m.TransformPoint(c.X2, c.Y2)
	}
	if c.Op != OpClosePath {
		out.X, out.Y = m.TransformPoint(c.X, c.Y)
	}
	return out
}

// Valid reports whether Op is one of the four known verbs.
func (op PathOp) Valid() bool {
	switch op {
	case OpMoveTo, OpLineTo, OpCurveTo, OpClosePath:
		return true
	}
	return false
}
