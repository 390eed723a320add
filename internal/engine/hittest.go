package engine

import (
	"slices"

	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

// HitTest returns the id of the topmost leaf containing the point, or "".
func HitTest(g *scene.Graph, x, y float64) string {
	leaves := slices.Collect(g.Leaves())
	// Traverse in reverse order (front to back) to get topmost hit
	for i := len(leaves) - 1; i >= 0; i-- {
		if HitTestLeaf(leaves[i], x, y) {
			return leaves[i].ID
		}
	}
	return ""
}

// HitTestLeaf maps the world point into the leaf's local space and tests
// shape membership there. Leaves with a degenerate world transform are never
// hit.
func HitTestLeaf(leaf scene.Leaf, x, y float64) bool {
	inv, ok := leaf.World.Inverse()
	if !ok {
		return false
	}
	lx, ly := inv.TransformPoint(x, y)

	switch s := leaf.Shape.(type) {
	case scene.Rectangle:
		return s.Contains(lx, ly)
	case scene.Ellipse:
		return s.Contains(lx, ly)
	case scene.Path:
		// Control box only; curved fills are not tested exactly.
		return s.Contains(lx, ly)
	default:
		return false
	}
}
