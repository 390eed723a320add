package engine

import (
	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

// --- Drag ---

// baselines snapshots the selected leaves for a drag.
func (e *Editor) baselines() map[string]Baseline {
	out := make(map[string]Baseline, e.selection.len())
	for _, id := range e.selection.list() {
		n := e.scene.Find(id)
		if n == nil || n.IsGroup() {
			continue
		}
		parent, _ := e.scene.ParentWorld(id)
		out[id] = Baseline{Local: n.Transform, Parent: parent}
	}
	return out
}

// BeginMoveDrag starts moving the selection from (x, y).
func (e *Editor) BeginMoveDrag(x, y float64) {
	e.drag.BeginMove(geom.Pt(x, y), e.baselines())
}

// BeginResizeDrag starts resizing the selection by dragging corner. The
// opposite corner of the first selected leaf stays fixed. It returns false
// and leaves any current drag alone when corner is invalid or nothing is
// selected.
func (e *Editor) BeginResizeDrag(x, y float64, corner Corner) bool {
	if !corner.Valid() {
		return false
	}
	o, ok := e.primaryOverlay()
	if !ok {
		return false
	}
	e.drag.BeginResize(geom.Pt(x, y), corner, o.Corner(corner.Opposite()), e.baselines())
	return true
}

// BeginRotateDrag starts rotating the selection about the centroid of the
// first selected leaf.
func (e *Editor) BeginRotateDrag(x, y float64) bool {
	o, ok := e.primaryOverlay()
	if !ok {
		return false
	}
	e.drag.BeginRotate(geom.Pt(x, y), o.Centroid(), e.baselines())
	return true
}

func (e *Editor) UpdateMoveDrag(x, y float64) bool {
	return e.applyDrag(e.drag.UpdateMove(geom.Pt(x, y)))
}

func (e *Editor) UpdateResizeDrag(x, y float64) bool {
	return e.applyDrag(e.drag.UpdateResize(geom.Pt(x, y)))
}

func (e *Editor) UpdateRotateDrag(x, y float64) bool {
	return e.applyDrag(e.drag.UpdateRotate(geom.Pt(x, y)))
}

// UpdateDrag forwards the pointer to whichever drag is active.
func (e *Editor) UpdateDrag(x, y float64) bool {
	return e.applyDrag(e.drag.Update(geom.Pt(x, y)))
}

func (e *Editor) applyDrag(transforms map[string]geom.Matrix2D, ok bool) bool {
	if !ok {
		e.logger.Debug("drag update ignored", "mode", e.drag.Mode())
		return false
	}
	for id, m := range transforms {
		if n := e.scene.FindMut(id); n != nil {
			n.Transform = m
		}
	}
	return true
}

// EndDrag finishes the current drag. The transforms written so far stay.
func (e *Editor) EndDrag() {
	e.drag.End()
}

func (e *Editor) IsDragging() bool {
	return e.drag.Active()
}

// DragMode returns the active drag interaction.
func (e *Editor) DragMode() DragMode {
	return e.drag.Mode()
}

// MoveSelected nudges every selected leaf by (dx, dy) in world space.
func (e *Editor) MoveSelected(dx, dy float64) {
	edit := geom.Translate(dx, dy)
	for id, b := range e.baselines() {
		m, ok := ApplyWorldEdit(edit, b)
		if !ok {
			continue
		}
		if n := e.scene.FindMut(id); n != nil {
			n.Transform = m
		}
	}
}

// --- Pen ---

// PenDown handles a press with the pen tool. It returns true when the press
// lands on the first anchor and the path can be closed.
func (e *Editor) PenDown(x, y float64) bool {
	return e.pen.Down(geom.Pt(x, y))
}

func (e *Editor) PenMove(x, y float64) {
	e.pen.Move(geom.Pt(x, y))
}

func (e *Editor) PenUp() {
	e.pen.Up()
}

// PenClose closes the path being drawn, adds it to the scene at identity
// and returns its id. It returns "" when the pen is idle.
func (e *Editor) PenClose() string {
	cmds, ok := e.pen.Close()
	if !ok {
		return ""
	}
	return e.addShape(scene.Path{Commands: cmds, Closed: true}, geom.Identity())
}

// PenFinish adds the path being drawn as an open path. Paths with fewer
// than two commands are discarded and "" is returned.
func (e *Editor) PenFinish() string {
	cmds, ok := e.pen.Finish()
	if !ok {
		return ""
	}
	return e.addShape(scene.Path{Commands: cmds, Closed: false}, geom.Identity())
}

func (e *Editor) PenCancel() {
	e.pen.Cancel()
}

func (e *Editor) PenPreview() (PenPreview, bool) {
	return e.pen.Preview()
}

func (e *Editor) IsPenDrawing() bool {
	return e.pen.Drawing()
}
