package engine

import (
	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

// CloseThreshold is the distance from the first anchor within which a click
// offers to close the path.
const CloseThreshold = 15.0

// PenController assembles a bezier path from click, drag and release events.
// The zero value is idle.
type PenController struct {
	drawing  bool
	commands []scene.PathCommand
	first    geom.Point
	last     geom.Point

	hasPending bool
	pending    geom.Point // fixed end anchor of the segment being placed
	handle     geom.Point // live control point while dragging
	dragging   bool
}

// Drawing reports whether a path is being built.
func (p *PenController) Drawing() bool { return p.drawing }

// Commands returns a copy of the commands accumulated so far.
func (p *PenController) Commands() []scene.PathCommand {
	out := make([]scene.PathCommand, len(p.commands))
	copy(out, p.commands)
	return out
}

// Down handles a pointer press. It returns true when the press is close
// enough to the first anchor to close the path; in that case nothing
// changes and the caller decides whether to call Close.
func (p *PenController) Down(pt geom.Point) bool {
	if !p.drawing {
		*p = PenController{
			drawing:  true,
			commands: []scene.PathCommand{scene.MoveTo(pt.X, pt.Y)},
			first:    pt,
			last:     pt,
		}
		return false
	}

	if len(p.commands) >= 2 && pt.Dist(p.first) < CloseThreshold {
		return true
	}

	p.hasPending = true
	p.pending = pt
	p.handle = pt
	p.dragging = false
	return false
}

// Move updates the live handle. It is ignored unless an end anchor is
// pending.
func (p *PenController) Move(pt geom.Point) {
	if !p.drawing || !p.hasPending {
		return
	}
	p.handle = pt
	p.dragging = true
}

// Up confirms the pending anchor as a curve when the pointer was dragged
// and as a straight line otherwise. Without a pending anchor it does
// nothing.
func (p *PenController) Up() {
	if !p.drawing || !p.hasPending {
		return
	}
	if p.dragging {
		p.commands = append(p.commands, p.previewCurve())
	} else {
		p.commands = append(p.commands, scene.LineTo(p.pending.X, p.pending.Y))
	}
	p.last = p.pending
	p.hasPending = false
	p.pending = geom.Point{}
	p.handle = geom.Point{}
	p.dragging = false
}

// The first control point sits on the last anchor, giving a straight exit.
func (p *PenController) previewCurve() scene.PathCommand {
	return scene.CurveTo(p.last.X, p.last.Y, p.handle.X, p.handle.Y, p.pending.X, p.pending.Y)
}

// Close appends ClosePath and returns the finished commands. ok is false
// when idle.
func (p *PenController) Close() (cmds []scene.PathCommand, ok bool) {
	if !p.drawing {
		return nil, false
	}
	cmds = append(p.commands, scene.ClosePath())
	*p = PenController{}
	return cmds, true
}

// Finish returns the commands as an open path when at least two were
// placed. Shorter paths are discarded. The controller is idle afterwards.
func (p *PenController) Finish() (cmds []scene.PathCommand, ok bool) {
	if !p.drawing {
		return nil, false
	}
	cmds = p.commands
	*p = PenController{}
	if len(cmds) < 2 {
		return nil, false
	}
	return cmds, true
}

// Cancel discards the path.
func (p *PenController) Cancel() {
	*p = PenController{}
}

// PenPreview is the transient state a host draws while the pen is active.
type PenPreview struct {
	Commands     []scene.PathCommand
	LastAnchor   geom.Point
	Pending      *geom.Point
	Handle       *geom.Point
	Dragging     bool
	PreviewCurve *scene.PathCommand
}

// Preview returns the in-progress path. ok is false when idle.
func (p *PenController) Preview() (PenPreview, bool) {
	if !p.drawing {
		return PenPreview{}, false
	}
	out := PenPreview{
		Commands:   p.Commands(),
		LastAnchor: p.last,
		Dragging:   p.dragging,
	}
	if p.hasPending {
		pending, handle := p.pending, p.handle
		out.Pending = &pending
		out.Handle = &handle
	}
	if p.dragging {
		c := p.previewCurve()
		out.PreviewCurve = &c
	}
	return out, true
}
