package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

// Background is the canvas color painted behind exported scenes.
const Background = "#1e1e1e"

// SVG renders the scene as a standalone SVG document.
func SVG(g *scene.Graph, width, height int) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprintf(&b, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" width=\"%d\" height=\"%d\">\n",
		width, height, width, height)
	fmt.Fprintf(&b, "  <rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" fill=\"%s\"/>\n", width, height, Background)

	for leaf := range g.Leaves() {
		paint := fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="%s" transform="%s"`,
			paintAttr(leaf.Style.Fill), paintAttr(leaf.Style.Stroke),
			num(leaf.Style.StrokeWidth), matrixAttr(leaf.World))

		switch s := leaf.Shape.(type) {
		case scene.Rectangle:
			fmt.Fprintf(&b, "  <rect id=\"%s\" x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" %s/>\n",
				html.EscapeString(leaf.ID), num(s.X), num(s.Y), num(s.Width), num(s.Height), paint)
		case scene.Ellipse:
			fmt.Fprintf(&b, "  <ellipse id=\"%s\" cx=\"%s\" cy=\"%s\" rx=\"%s\" ry=\"%s\" %s/>\n",
				html.EscapeString(leaf.ID), num(s.CX), num(s.CY), num(s.RX), num(s.RY), paint)
		case scene.Path:
			fmt.Fprintf(&b, "  <path id=\"%s\" d=\"%s\" %s/>\n", html.EscapeString(leaf.ID), PathData(s.Commands), paint)
		}
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// PathData converts commands to an SVG path "d" attribute.
func PathData(cmds []scene.PathCommand) string {
	parts := make([]string, 0, len(cmds))
	for _, c := range cmds {
		switch c.Op {
		case scene.OpMoveTo:
			parts = append(parts, "M"+num(c.X)+","+num(c.Y))
		case scene.OpLineTo:
			parts = append(parts, "L"+num(c.X)+","+num(c.Y))
		case scene.OpCurveTo:
			parts = append(parts, fmt.Sprintf("C%s,%s %s,%s %s,%s",
				num(c.X1), num(c.Y1), num(c.X2), num(c.Y2), num(c.X), num(c.Y)))
		case scene.OpClosePath:
			parts = append(parts, "Z")
		}
	}
	return strings.Join(parts, " ")
}

// SVG's matrix() takes the same column order as Canvas2D setTransform.
func matrixAttr(m geom.Matrix2D) string {
	v := m.CanvasSlice()
	s := make([]string, len(v))
	for i, f := range v {
		s[i] = num(f)
	}
	return "matrix(" + strings.Join(s, ",") + ")"
}

func paintAttr(color string) string {
	if color == "" {
		return "none"
	}
	return html.EscapeString(color)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
