// Package command defines the editor command protocol shared by the HTTP,
// websocket and wasm hosts, and applies commands to an engine.Editor.
package command

import (
	"github.com/inkframe/inkframe/backend-go/internal/document"
	"github.com/inkframe/inkframe/backend-go/internal/engine"
	"github.com/inkframe/inkframe/backend-go/internal/geom"
)

// Command is one editor operation sent by a host. Type selects the
// operation and which of the other fields apply.
type Command struct {
	ID   string `json:"id,omitempty"` // echoed in the reply
	Type string `json:"type"`

	// Pointer position, shape origin or ellipse center
	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`

	// For shape.rectangle / shape.rotated_rectangle / select.rect
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// For shape.ellipse
	RX float64 `json:"rx,omitempty"`
	RY float64 `json:"ry,omitempty"`

	// For shape.rotated_rectangle
	Degrees float64 `json:"degrees,omitempty"`

	// For shape.heart / shape.text
	Size float64 `json:"size,omitempty"`

	// For shape.text
	Text string `json:"text,omitempty"`

	// For shape.path
	Commands []document.Command `json:"commands,omitempty"`
	Closed   *bool              `json:"closed,omitempty"`

	// For nudge
	DX float64 `json:"dx,omitempty"`
	DY float64 `json:"dy,omitempty"`

	// For drag.resize: top-left, top-right, bottom-right or bottom-left
	Corner string `json:"corner,omitempty"`

	// For select.ids / select.add / path.points / path.update_point
	IDs      []string `json:"ids,omitempty"`
	ObjectID string   `json:"objectId,omitempty"`
	Index    int      `json:"index,omitempty"`

	// For style.set
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

// Result is the reply to a Command. OK is false when the operation was
// ignored or found nothing; Error is set only on failure.
type Result struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`
	OK   bool   `json:"ok"`

	ObjectID string   `json:"objectId,omitempty"`
	IDs      []string `json:"ids,omitempty"`
	Count    int      `json:"count,omitempty"`
	Closable bool     `json:"closable,omitempty"`

	Style    *document.Style           `json:"style,omitempty"`
	Overlays []engine.SelectionOverlay `json:"overlays,omitempty"`
	Handles  *[4]geom.Point            `json:"handles,omitempty"`
	Center   *geom.Point               `json:"center,omitempty"`
	Points   []engine.PathPoint        `json:"points,omitempty"`
	Preview  *PenPreview               `json:"preview,omitempty"`
	History  *HistoryState             `json:"history,omitempty"`

	Error string `json:"error,omitempty"`
}

// PenPreview is the wire form of engine.PenPreview.
type PenPreview struct {
	Commands     []document.Command `json:"commands"`
	LastAnchor   geom.Point         `json:"lastAnchor"`
	Pending      *geom.Point        `json:"pending,omitempty"`
	Handle       *geom.Point        `json:"handle,omitempty"`
	Dragging     bool               `json:"dragging"`
	PreviewCurve *document.Command  `json:"previewCurve,omitempty"`
}

type HistoryState struct {
	CanUndo   bool `json:"canUndo"`
	CanRedo   bool `json:"canRedo"`
	UndoDepth int  `json:"undoDepth"`
	RedoDepth int  `json:"redoDepth"`
}

const (
	// Shapes
	TypeAddRectangle        = "shape.rectangle"
	TypeAddEllipse          = "shape.ellipse"
	TypeAddRotatedRectangle = "shape.rotated_rectangle"
	TypeAddPath             = "shape.path"
	TypeAddHeart            = "shape.heart"
	TypeAddText             = "shape.text"

	// Scene
	TypeClear       = "scene.clear"
	TypeObjectCount = "scene.count"
	TypeHitTest     = "scene.hit"

	// Selection
	TypeSelectAt       = "select.at"
	TypeToggleAt       = "select.toggle_at"
	TypeSelectIDs      = "select.ids"
	TypeAddToSelection = "select.add"
	TypeSelectInRect   = "select.rect"
	TypeDeselectAll    = "select.none"
	TypeSelectedIDs    = "select.list"
	TypeDeleteSelected = "select.delete"

	// Style and z-order
	TypeGetStyle     = "style.get"
	TypeSetStyle     = "style.set"
	TypeBringToFront = "order.front"
	TypeSendToBack   = "order.back"

	// Drag
	TypeBeginMove    = "drag.move"
	TypeBeginResize  = "drag.resize"
	TypeBeginRotate  = "drag.rotate"
	TypeUpdateMove   = "drag.update_move"
	TypeUpdateResize = "drag.update_resize"
	TypeUpdateRotate = "drag.update_rotate"
	TypeUpdateDrag   = "drag.update"
	TypeEndDrag      = "drag.end"
	TypeNudge        = "nudge"

	// Pen
	TypePenDown    = "pen.down"
	TypePenMove    = "pen.move"
	TypePenUp      = "pen.up"
	TypePenClose   = "pen.close"
	TypePenFinish  = "pen.finish"
	TypePenCancel  = "pen.cancel"
	TypePenPreview = "pen.preview"

	// Overlay
	TypeOverlays        = "overlay.list"
	TypeHandles         = "overlay.handles"
	TypeSelectionCenter = "overlay.center"

	// Path editing
	TypeSelectedIsPath  = "path.is_selected"
	TypePathPoints      = "path.points"
	TypeUpdatePathPoint = "path.update_point"

	// History
	TypeSaveSnapshot  = "history.save"
	TypeUndo          = "history.undo"
	TypeRedo          = "history.redo"
	TypeHistoryStatus = "history.status"

	TypeError = "error"
)
