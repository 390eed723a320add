package document

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

// ErrMalformed is wrapped by every decode failure caused by document content.
var ErrMalformed = errors.New("malformed document")

// Encode converts a scene graph into its persisted form.
func Encode(g *scene.Graph) *Document {
	doc := &Document{
		Version:   FormatVersion,
		IDCounter: g.IDCounter(),
		Roots:     make([]*Node, 0, len(g.Roots())),
	}
	for _, n := range g.Roots() {
		doc.Roots = append(doc.Roots, encodeNode(n))
	}
	return doc
}

func encodeNode(n *scene.Node) *Node {
	out := &Node{
		ID:        n.ID,
		Transform: n.Transform.ToSlice(),
	}
	if n.IsGroup() {
		out.Type = NodeTypeGroup
		out.Children = make([]*Node, 0, len(n.Children))
		for _, c := range n.Children {
			out.Children = append(out.Children, encodeNode(c))
		}
		return out
	}
	out.Type = NodeTypeLeaf
	out.Shape = encodeShape(n.Shape)
	out.Style = &Style{
		Fill:        n.Style.Fill,
		Stroke:      n.Style.Stroke,
		StrokeWidth: n.Style.StrokeWidth,
	}
	return out
}

func encodeShape(s scene.Shape) *Shape {
	switch s := s.(type) {
	case scene.Rectangle:
		return &Shape{Type: ShapeTypeRectangle, X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
	case scene.Ellipse:
		return &Shape{Type: ShapeTypeEllipse, CX: s.CX, CY: s.CY, RX: s.RX, RY: s.RY}
	case scene.Path:
		closed := s.Closed
		return &Shape{Type: ShapeTypePath, Commands: EncodeCommands(s.Commands), Closed: &closed}
	default:
		return nil
	}
}

// EncodeCommands converts path commands to their wire form.
func EncodeCommands(in []scene.PathCommand) []Command {
	out := make([]Command, len(in))
	for i, c := range in {
		out[i] = Command{Type: string(c.Op), X1: c.X1, Y1: c.Y1, X2: c.X2, Y2: c.Y2, X: c.X, Y: c.Y}
	}
	return out
}

// DecodeCommands validates and converts wire path commands.
func DecodeCommands(in []Command) ([]scene.PathCommand, error) {
	out := make([]scene.PathCommand, len(in))
	for i, c := range in {
		op := scene.PathOp(c.Type)
		if !op.Valid() {
			return nil, fmt.Errorf("%w: command %d has unknown type %q", ErrMalformed, i, c.Type)
		}
		if !finite(c.X1, c.Y1, c.X2, c.Y2, c.X, c.Y) {
			return nil, fmt.Errorf("%w: command %d is not finite", ErrMalformed, i)
		}
		out[i] = scene.PathCommand{Op: op, X1: c.X1, Y1: c.Y1, X2: c.X2, Y2: c.Y2, X: c.X, Y: c.Y}
	}
	return out, nil
}

// Decode validates doc and builds a scene graph from it. The id counter is
// raised when needed so that fresh ids never collide with ids in the
// document.
func Decode(doc *Document) (*scene.Graph, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	if doc.Version > FormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformed, doc.Version)
	}

	d := decoder{seen: make(map[string]bool), counter: doc.IDCounter}
	roots, err := d.nodes(doc.Roots)
	if err != nil {
		return nil, err
	}
	// GenerateID increments before use; a full counter would wrap to ids in use.
	if d.counter == math.MaxUint64 {
		return nil, fmt.Errorf("%w: id counter exhausted", ErrMalformed)
	}

	g := scene.New()
	g.Restore(roots, d.counter)
	return g, nil
}

type decoder struct {
	seen    map[string]bool
	counter uint64
}

func (d *decoder) nodes(in []*Node) ([]*scene.Node, error) {
	out := make([]*scene.Node, 0, len(in))
	for i, n := range in {
		if n == nil {
			return nil, fmt.Errorf("%w: node %d is null", ErrMalformed, i)
		}
		node, err := d.node(n)
		if err != nil {
			return nil, fmt.Errorf("decode node %q: %w", n.ID, err)
		}
		out = append(out, node)
	}
	return out, nil
}

func (d *decoder) node(n *Node) (*scene.Node, error) {
	if n.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrMalformed)
	}
	if d.seen[n.ID] {
		return nil, fmt.Errorf("%w: duplicate id", ErrMalformed)
	}
	d.seen[n.ID] = true
	d.reserve(n.ID)

	transform, err := decodeTransform(n.Transform)
	if err != nil {
		return nil, err
	}

	switch n.Type {
	case NodeTypeGroup:
		if n.Shape != nil {
			return nil, fmt.Errorf("%w: group has a shape", ErrMalformed)
		}
		children, err := d.nodes(n.Children)
		if err != nil {
			return nil, err
		}
		return scene.NewGroup(n.ID, children, transform), nil

	case NodeTypeLeaf:
		if len(n.Children) > 0 {
			return nil, fmt.Errorf("%w: leaf has children", ErrMalformed)
		}
		shape, err := decodeShape(n.Shape)
		if err != nil {
			return nil, err
		}
		leaf := scene.NewLeaf(n.ID, shape, transform)
		if n.Style != nil {
			style, err := decodeStyle(n.Style)
			if err != nil {
				return nil, err
			}
			leaf.Style = style
		}
		return leaf, nil

	default:
		return nil, fmt.Errorf("%w: unknown node type %q", ErrMalformed, n.Type)
	}
}

// reserve raises the counter past ids of the form obj_<n>.
func (d *decoder) reserve(id string) {
	num, ok := strings.CutPrefix(id, "obj_")
	if !ok {
		return
	}
	if v, err := strconv.ParseUint(num, 10, 64); err == nil && v > d.counter {
		d.counter = v
	}
}

func decodeTransform(v []float64) (geom.Matrix2D, error) {
	if v == nil {
		return geom.Identity(), nil
	}
	if len(v) != 6 {
		return geom.Matrix2D{}, fmt.Errorf("%w: transform has %d values, want 6", ErrMalformed, len(v))
	}
	if !finite(v...) {
		return geom.Matrix2D{}, fmt.Errorf("%w: transform is not finite", ErrMalformed)
	}
	return geom.Matrix2D(v), nil
}

func decodeShape(s *Shape) (scene.Shape, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: leaf has no shape", ErrMalformed)
	}
	switch s.Type {
	case ShapeTypeRectangle:
		if !finite(s.X, s.Y, s.Width, s.Height) {
			return nil, fmt.Errorf("%w: rectangle is not finite", ErrMalformed)
		}
		return scene.Rectangle{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}, nil
	case ShapeTypeEllipse:
		if !finite(s.CX, s.CY, s.RX, s.RY) {
			return nil, fmt.Errorf("%w: ellipse is not finite", ErrMalformed)
		}
		return scene.Ellipse{CX: s.CX, CY: s.CY, RX: s.RX, RY: s.RY}, nil
	case ShapeTypePath:
		cmds, err := DecodeCommands(s.Commands)
		if err != nil {
			return nil, err
		}
		closed := true
		if s.Closed != nil {
			closed = *s.Closed
		}
		return scene.Path{Commands: cmds, Closed: closed}, nil
	default:
		return nil, fmt.Errorf("%w: unknown shape type %q", ErrMalformed, s.Type)
	}
}

func decodeStyle(s *Style) (scene.Style, error) {
	if s.StrokeWidth < 0 || !finite(s.StrokeWidth) {
		return scene.Style{}, fmt.Errorf("%w: invalid stroke width %v", ErrMalformed, s.StrokeWidth)
	}
	return scene.Style{Fill: s.Fill, Stroke: s.Stroke, StrokeWidth: s.StrokeWidth}, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
