package engine

import (
	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

// Corner indexes the four overlay handles.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
)

// Opposite returns the diagonally opposite corner.
func (c Corner) Opposite() Corner {
	return (c + 2) % 4
}

// Valid reports whether c is one of the four handles.
func (c Corner) Valid() bool {
	return c >= TopLeft && c <= BottomLeft
}

func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomRight:
		return "bottom-right"
	case BottomLeft:
		return "bottom-left"
	default:
		return "invalid"
	}
}

// ParseCorner is the inverse of Corner.String.
func ParseCorner(s string) (Corner, bool) {
	for c := TopLeft; c <= BottomLeft; c++ {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// SelectionOverlay is the world-space quadrilateral around one selected leaf.
// Corners are in local-space order [top-left, top-right, bottom-right,
// bottom-left] and need not be axis-aligned.
type SelectionOverlay struct {
	ID      string        `json:"id"`
	Corners [4]geom.Point `json:"corners"`
}

// Corner returns the world position of handle c.
func (o SelectionOverlay) Corner(c Corner) geom.Point {
	return o.Corners[c]
}

// Centroid is the mean of the four corners.
func (o SelectionOverlay) Centroid() geom.Point {
	var x, y float64
	for _, c := range o.Corners {
		x += c.X
		y += c.Y
	}
	return geom.Point{X: x / 4, Y: y / 4}
}

// OverlayForLeaf builds the overlay of a leaf. ok is false for shapes
// without extent.
func OverlayForLeaf(leaf scene.Leaf) (SelectionOverlay, bool) {
	local, ok := leaf.Shape.LocalBounds()
	if !ok {
		return SelectionOverlay{}, false
	}
	var out SelectionOverlay
	out.ID = leaf.ID
	for i, c := range local.Corners() {
		out.Corners[i] = leaf.World.Apply(c)
	}
	return out, true
}

// SelectionOverlays returns overlays for the selected leaves in paint order.
func SelectionOverlays(g *scene.Graph, selected func(id string) bool) []SelectionOverlay {
	var overlays []SelectionOverlay
	for leaf := range g.Leaves() {
		if !selected(leaf.ID) {
			continue
		}
		if o, ok := OverlayForLeaf(leaf); ok {
			overlays = append(overlays, o)
		}
	}
	return overlays
}
