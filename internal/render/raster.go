package render

import (
	"encoding/hex"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"slices"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"

	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498307936

// curveSteps is the number of segments a cubic is flattened into for strokes.
const curveSteps = 16

// Raster paints the scene into a new width x height image. Fills follow the
// nonzero rule; strokes are drawn as square-capped segments without joins.
func Raster(g *scene.Graph, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	bg, _ := ParseColor(Background)
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for leaf := range g.Leaves() {
		if leaf.World.IsDegenerate() {
			continue
		}
		local := Outline(leaf.Shape)
		if len(local) == 0 {
			continue
		}
		world := make([]scene.PathCommand, len(local))
		for i, c := range local {
			world[i] = c.Transform(leaf.World)
		}

		if c, ok := ParseColor(leaf.Style.Fill); ok {
			ras := vector.NewRasterizer(width, height)
			fillPath(ras, world)
			ras.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
		}
		if c, ok := ParseColor(leaf.Style.Stroke); ok && leaf.Style.StrokeWidth > 0 {
			// Stroke width is in local units; scale it by the area factor of
			// the world transform.
			half := leaf.Style.StrokeWidth * math.Sqrt(math.Abs(leaf.World.Determinant())) / 2
			ras := vector.NewRasterizer(width, height)
			for _, pl := range flatten(world) {
				strokePolyline(ras, pl, half)
			}
			ras.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
		}
	}
	return dst
}

// PNG rasterizes the scene and writes it as a PNG image.
func PNG(w io.Writer, g *scene.Graph, width, height int) error {
	return png.Encode(w, Raster(g, width, height))
}

// Outline returns the shape as path commands in local space. Ellipses are
// approximated by four cubics.
func Outline(s scene.Shape) []scene.PathCommand {
	switch s := s.(type) {
	case scene.Rectangle:
		return []scene.PathCommand{
			scene.MoveTo(s.X, s.Y),
			scene.LineTo(s.X+s.Width, s.Y),
			scene.LineTo(s.X+s.Width, s.Y+s.Height),
			scene.LineTo(s.X, s.Y+s.Height),
			scene.ClosePath(),
		}
	case scene.Ellipse:
		cx, cy, rx, ry := s.CX, s.CY, s.RX, s.RY
		kx, ky := kappa*rx, kappa*ry
		return []scene.PathCommand{
			scene.MoveTo(cx+rx, cy),
			scene.CurveTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry),
			scene.CurveTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy),
			scene.CurveTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry),
			scene.CurveTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy),
			scene.ClosePath(),
		}
	case scene.Path:
		return slices.Clone(s.Commands)
	default:
		return nil
	}
}

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa and SVG color names. Empty
// strings and "none" are not paintable.
func ParseColor(s string) (color.Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil, false
	}
	if hexDigits, ok := strings.CutPrefix(s, "#"); ok {
		if len(hexDigits) == 3 {
			hexDigits = string([]byte{
				hexDigits[0], hexDigits[0], hexDigits[1], hexDigits[1], hexDigits[2], hexDigits[2],
			})
		}
		if len(hexDigits) == 6 {
			hexDigits += "ff"
		}
		if len(hexDigits) != 8 {
			return nil, false
		}
		b, err := hex.DecodeString(hexDigits)
		if err != nil {
			return nil, false
		}
		return color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}, true
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return nil, false
	}
	return c, true
}

func f32(v float64) float32 { return float32(v) }

func fillPath(ras *vector.Rasterizer, cmds []scene.PathCommand) {
	started := false
	for _, c := range cmds {
		switch c.Op {
		case scene.OpMoveTo:
			if started {
				ras.ClosePath()
			}
			ras.MoveTo(f32(c.X), f32(c.Y))
			started = true
		case scene.OpLineTo:
			if !started {
				ras.MoveTo(f32(c.X), f32(c.Y))
				started = true
				continue
			}
			ras.LineTo(f32(c.X), f32(c.Y))
		case scene.OpCurveTo:
			if !started {
				ras.MoveTo(f32(c.X), f32(c.Y))
				started = true
				continue
			}
			ras.CubeTo(f32(c.X1), f32(c.Y1), f32(c.X2), f32(c.Y2), f32(c.X), f32(c.Y))
		case scene.OpClosePath:
			if started {
				ras.ClosePath()
			}
		}
	}
	if started {
		ras.ClosePath()
	}
}

type polyline struct {
	points []geom.Point
	closed bool
}

// flatten splits commands into subpaths and replaces cubics with line
// segments.
func flatten(cmds []scene.PathCommand) []polyline {
	var out []polyline
	var cur polyline
	flush := func() {
		if len(cur.points) > 1 {
			out = append(out, cur)
		}
		cur = polyline{}
	}

	for _, c := range cmds {
		switch c.Op {
		case scene.OpMoveTo:
			flush()
			cur.points = append(cur.points, geom.Pt(c.X, c.Y))
		case scene.OpLineTo:
			cur.points = append(cur.points, geom.Pt(c.X, c.Y))
		case scene.OpCurveTo:
			if len(cur.points) == 0 {
				cur.points = append(cur.points, geom.Pt(c.X, c.Y))
				continue
			}
			p0 := cur.points[len(cur.points)-1]
			for i := 1; i <= curveSteps; i++ {
				cur.points = append(cur.points, cubicAt(p0, c, float64(i)/curveSteps))
			}
		case scene.OpClosePath:
			if len(cur.points) > 0 {
				cur.closed = true
				start := cur.points[0]
				flush()
				// Drawing continues from the subpath start.
				cur.points = append(cur.points, start)
			}
		}
	}
	flush()
	return out
}

func cubicAt(p0 geom.Point, c scene.PathCommand, t float64) geom.Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	d := 3 * mt * t * t
	e := t * t * t
	return geom.Pt(
		a*p0.X+b*c.X1+d*c.X2+e*c.X,
		a*p0.Y+b*c.Y1+d*c.Y2+e*c.Y,
	)
}

func strokePolyline(ras *vector.Rasterizer, pl polyline, half float64) {
	for i := 1; i < len(pl.points); i++ {
		strokeSegment(ras, pl.points[i-1], pl.points[i], half)
	}
	if pl.closed {
		strokeSegment(ras, pl.points[len(pl.points)-1], pl.points[0], half)
	}
}

// strokeSegment adds a quad covering the segment, extended by half at both
// ends. All quads share one winding so overlaps do not cancel.
func strokeSegment(ras *vector.Rasterizer, a, b geom.Point, half float64) {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		return
	}
	ux, uy := d.X/l*half, d.Y/l*half
	ax, ay := a.X-ux, a.Y-uy
	bx, by := b.X+ux, b.Y+uy
	nx, ny := -uy, ux

	ras.MoveTo(f32(ax+nx), f32(ay+ny))
	ras.LineTo(f32(bx+nx), f32(by+ny))
	ras.LineTo(f32(bx-nx), f32(by-ny))
	ras.LineTo(f32(ax-nx), f32(ay-ny))
	ras.ClosePath()
}
