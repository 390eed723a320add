package engine

import (
	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

// PathPoint is an editable anchor of a path in world space.
type PathPoint struct {
	X   float64      `json:"x"`
	Y   float64      `json:"y"`
	Op  scene.PathOp `json:"type"`
	Cmd int          `json:"command"`
}

// SelectedIsPath reports whether the first selected object is a path leaf.
func (e *Editor) SelectedIsPath() bool {
	id, ok := e.selection.first()
	if !ok {
		return false
	}
	n := e.scene.Find(id)
	if n == nil || n.IsGroup() {
		return false
	}
	_, isPath := n.Shape.(scene.Path)
	return isPath
}

// PathPoints returns one world-space point per anchor of the path id: the
// endpoint of every MoveTo, LineTo and CurveTo. Control points are not
// included.
func (e *Editor) PathPoints(id string) []PathPoint {
	n := e.scene.Find(id)
	if n == nil || n.IsGroup() {
		return nil
	}
	path, ok := n.Shape.(scene.Path)
	if !ok {
		return nil
	}
	world, _ := e.scene.WorldTransform(id)

	var points []PathPoint
	for i, cmd := range path.Commands {
		if cmd.Op == scene.OpClosePath {
			continue
		}
		x, y := world.TransformPoint(cmd.X, cmd.Y)
		points = append(points, PathPoint{X: x, Y: y, Op: cmd.Op, Cmd: i})
	}
	return points
}

// UpdatePathPoint moves anchor index of path id to the world position
// (wx, wy). Only the endpoint moves; control points stay. It returns false
// when the path, the anchor or an inverse world transform does not exist.
func (e *Editor) UpdatePathPoint(id string, index int, wx, wy float64) bool {
	if index < 0 {
		return false
	}
	world, ok := e.scene.WorldTransform(id)
	if !ok {
		return false
	}
	inv, ok := world.Inverse()
	if !ok {
		return false
	}
	n := e.scene.Find(id)
	if n.IsGroup() {
		return false
	}
	path, ok := n.Shape.(scene.Path)
	if !ok {
		return false
	}

	anchor := 0
	for i, cmd := range path.Commands {
		if cmd.Op == scene.OpClosePath {
			continue
		}
		if anchor == index {
			local := inv.Apply(geom.Pt(wx, wy))
			cmds := make([]scene.PathCommand, len(path.Commands))
			copy(cmds, path.Commands)
			cmds[i].X, cmds[i].Y = local.X, local.Y
			e.scene.FindMut(id).Shape = scene.Path{Commands: cmds, Closed: path.Closed}
			return true
		}
		anchor++
	}
	return false
}
