// Package render flattens a scene graph into output: draw commands for a
// Canvas2D-like surface and SVG markup.
package render

import (
	"encoding/json"

	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

// Draw operations. Names match the Canvas2D context methods they map to.
const (
	OpSetTransform   = "setTransform"
	OpFillStyle      = "fillStyle"
	OpStrokeStyle    = "strokeStyle"
	OpLineWidth      = "lineWidth"
	OpBeginPath      = "beginPath"
	OpRect           = "rect"
	OpEllipse        = "ellipse"
	OpMoveTo         = "moveTo"
	OpLineTo         = "lineTo"
	OpBezierCurveTo  = "bezierCurveTo"
	OpClosePath      = "closePath"
	OpFill           = "fill"
	OpStroke         = "stroke"
	OpResetTransform = "resetTransform"
)

// DrawCommand represents a single drawing operation for the frontend to execute.
// The frontend receives a list of these and executes them on a Canvas2D context.
type DrawCommand struct {
	Op        string    `json:"op"`
	ObjectID  string    `json:"objectId,omitempty"`  // For hit correlation
	Transform []float64 `json:"transform,omitempty"` // [a, b, c, d, e, f] in Canvas2D order
	Color     string    `json:"color,omitempty"`     // fillStyle / strokeStyle
	Args      []float64 `json:"args,omitempty"`      // Numeric operands in Canvas2D argument order
}

// Commands generates a draw command buffer from a scene graph.
// Commands are in painter's order (back to front).
func Commands(g *scene.Graph) []DrawCommand {
	var commands []DrawCommand
	for leaf := range g.Leaves() {
		compileLeaf(leaf, &commands)
	}
	return commands
}

func compileLeaf(leaf scene.Leaf, commands *[]DrawCommand) {
	*commands = append(*commands, DrawCommand{
		Op:        OpSetTransform,
		ObjectID:  leaf.ID,
		Transform: leaf.World.CanvasSlice(),
	})

	style := leaf.Style
	if style.Fill != "" {
		*commands = append(*commands, DrawCommand{Op: OpFillStyle, Color: style.Fill})
	}
	if style.Stroke != "" {
		*commands = append(*commands, DrawCommand{Op: OpStrokeStyle, Color: style.Stroke})
	}
	*commands = append(*commands,
		DrawCommand{Op: OpLineWidth, Args: []float64{style.StrokeWidth}},
		DrawCommand{Op: OpBeginPath},
	)

	switch s := leaf.Shape.(type) {
	case scene.Rectangle:
		*commands = append(*commands, DrawCommand{Op: OpRect, Args: []float64{s.X, s.Y, s.Width, s.Height}})
	case scene.Ellipse:
		*commands = append(*commands, DrawCommand{Op: OpEllipse, Args: []float64{s.CX, s.CY, s.RX, s.RY}})
	case scene.Path:
		for _, c := range s.Commands {
			*commands = append(*commands, pathCommand(c))
		}
	}

	if style.Fill != "" {
		*commands = append(*commands, DrawCommand{Op: OpFill})
	}
	if style.Stroke != "" {
		*commands = append(*commands, DrawCommand{Op: OpStroke})
	}
	*commands = append(*commands, DrawCommand{Op: OpResetTransform})
}

func pathCommand(c scene.PathCommand) DrawCommand {
	switch c.Op {
	case scene.OpMoveTo:
		return DrawCommand{Op: OpMoveTo, Args: []float64{c.X, c.Y}}
	case scene.OpLineTo:
		return DrawCommand{Op: OpLineTo, Args: []float64{c.X, c.Y}}
	case scene.OpCurveTo:
		return DrawCommand{Op: OpBezierCurveTo, Args: []float64{c.X1, c.Y1, c.X2, c.Y2, c.X, c.Y}}
	default:
		return DrawCommand{Op: OpClosePath}
	}
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		commands = []DrawCommand{}
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
