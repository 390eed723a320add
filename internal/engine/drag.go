package engine

import (
	"math"

	"github.com/inkframe/inkframe/backend-go/internal/geom"
)

// Resize limits.
const (
	MinResizeDistance = 1.0
	MinResizeScale    = 0.1
	MaxResizeScale    = 10.0
)

// DragMode is the active interaction of a DragController.
type DragMode int

const (
	DragNone DragMode = iota
	DragMoving
	DragResizing
	DragRotating
)

func (m DragMode) String() string {
	switch m {
	case DragMoving:
		return "moving"
	case DragResizing:
		return "resizing"
	case DragRotating:
		return "rotating"
	default:
		return "none"
	}
}

// Baseline is a node's state frozen when a drag begins. Parent is the world
// transform of the node's parent, used to carry world-space edits into the
// node's local space.
type Baseline struct {
	Local  geom.Matrix2D
	Parent geom.Matrix2D
}

// DragController turns a pointer drag into transforms. Every update is
// computed from the baselines captured at begin, never from the live
// transforms, so no error accumulates across updates.
type DragController struct {
	mode      DragMode
	corner    Corner
	start     geom.Point
	pivot     geom.Point
	baselines map[string]Baseline
}

// Mode returns the current interaction.
func (d *DragController) Mode() DragMode { return d.mode }

// Active reports whether a drag is in progress.
func (d *DragController) Active() bool { return d.mode != DragNone }

// Corner returns the dragged handle while resizing.
func (d *DragController) Corner() Corner { return d.corner }

// Start returns the pointer position at begin.
func (d *DragController) Start() geom.Point { return d.start }

// Pivot returns the fixed point of a resize or rotate.
func (d *DragController) Pivot() geom.Point { return d.pivot }

// Baseline returns the frozen state of id.
func (d *DragController) Baseline(id string) (Baseline, bool) {
	b, ok := d.baselines[id]
	return b, ok
}

func (d *DragController) begin(mode DragMode, start, pivot geom.Point, baselines map[string]Baseline) {
	copied := make(map[string]Baseline, len(baselines))
	for id, b := range baselines {
		copied[id] = b
	}
	d.mode = mode
	d.corner = TopLeft
	d.start = start
	d.pivot = pivot
	d.baselines = copied
}

// BeginMove starts a move drag. Any previous drag is discarded.
func (d *DragController) BeginMove(start geom.Point, baselines map[string]Baseline) {
	d.begin(DragMoving, start, geom.Point{}, baselines)
}

// BeginResize starts a uniform resize about pivot, which callers take from
// the overlay corner opposite the dragged one.
func (d *DragController) BeginResize(start geom.Point, corner Corner, pivot geom.Point, baselines map[string]Baseline) {
	d.begin(DragResizing, start, pivot, baselines)
	d.corner = corner
}

// BeginRotate starts a rotation about pivot, normally the overlay centroid.
func (d *DragController) BeginRotate(start, pivot geom.Point, baselines map[string]Baseline) {
	d.begin(DragRotating, start, pivot, baselines)
}

// End clears all drag state.
func (d *DragController) End() {
	*d = DragController{}
}

// UpdateMove returns the new local transform of every dragged node. ok is
// false when no move is in progress.
func (d *DragController) UpdateMove(cur geom.Point) (map[string]geom.Matrix2D, bool) {
	if d.mode != DragMoving {
		return nil, false
	}
	delta := cur.Sub(d.start)
	return d.apply(geom.Translate(delta.X, delta.Y)), true
}

// ResizeScale is the clamped uniform scale for the pointer at cur.
func (d *DragController) ResizeScale(cur geom.Point) float64 {
	d0 := max(MinResizeDistance, d.start.Dist(d.pivot))
	d1 := max(MinResizeDistance, cur.Dist(d.pivot))
	return min(max(d1/d0, MinResizeScale), MaxResizeScale)
}

// UpdateResize scales every node about the pivot.
func (d *DragController) UpdateResize(cur geom.Point) (map[string]geom.Matrix2D, bool) {
	if d.mode != DragResizing {
		return nil, false
	}
	s := d.ResizeScale(cur)
	return d.apply(geom.ScaleAround(s, s, d.pivot)), true
}

// RotateAngle is the rotation for the pointer at cur. The sign is inverted
// so that a counter-clockwise pointer sweep on a y-down screen rotates
// counter-clockwise.
func (d *DragController) RotateAngle(cur geom.Point) float64 {
	a0 := math.Atan2(d.start.Y-d.pivot.Y, d.start.X-d.pivot.X)
	a1 := math.Atan2(cur.Y-d.pivot.Y, cur.X-d.pivot.X)
	return -(a1 - a0)
}

// UpdateRotate rotates every node about the pivot.
func (d *DragController) UpdateRotate(cur geom.Point) (map[string]geom.Matrix2D, bool) {
	if d.mode != DragRotating {
		return nil, false
	}
	return d.apply(geom.RotateAround(d.RotateAngle(cur), d.pivot)), true
}

// Update dispatches to the update of the current mode.
func (d *DragController) Update(cur geom.Point) (map[string]geom.Matrix2D, bool) {
	switch d.mode {
	case DragMoving:
		return d.UpdateMove(cur)
	case DragResizing:
		return d.UpdateResize(cur)
	case DragRotating:
		return d.UpdateRotate(cur)
	default:
		return nil, false
	}
}

func (d *DragController) apply(edit geom.Matrix2D) map[string]geom.Matrix2D {
	out := make(map[string]geom.Matrix2D, len(d.baselines))
	for id, b := range d.baselines {
		if m, ok := ApplyWorldEdit(edit, b); ok {
			out[id] = m
		}
	}
	return out
}

// ApplyWorldEdit composes a world-space edit onto a baseline and returns the
// new local transform. Under a transformed parent the edit is conjugated
// into parent space. ok is false when the parent cannot be inverted.
func ApplyWorldEdit(edit geom.Matrix2D, b Baseline) (geom.Matrix2D, bool) {
	if edit.IsIdentity() {
		return b.Local, true
	}
	if b.Parent.IsIdentity() {
		return edit.Compose(b.Local), true
	}
	inv, ok := b.Parent.Inverse()
	if !ok {
		return geom.Matrix2D{}, false
	}
	return inv.Compose(edit).Compose(b.Parent).Compose(b.Local), true
}
