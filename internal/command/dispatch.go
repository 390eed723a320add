package command

import (
	"errors"
	"fmt"

	"github.com/inkframe/inkframe/backend-go/internal/document"
	"github.com/inkframe/inkframe/backend-go/internal/engine"
	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
	"github.com/inkframe/inkframe/backend-go/internal/text"
)

var (
	ErrUnknownCommand = errors.New("unknown command type")
	ErrInvalidCommand = errors.New("invalid command")
)

// Dispatch applies cmd to e. Errors are returned only for commands that
// cannot be understood; an operation that is merely ignored by the editor
// yields OK=false.
func Dispatch(e *engine.Editor, cmd Command) (Result, error) {
	res := Result{ID: cmd.ID, Type: cmd.Type, OK: true}

	switch cmd.Type {
	// --- Shapes ---
	case TypeAddRectangle:
		res.ObjectID = e.AddRectangle(cmd.X, cmd.Y, cmd.Width, cmd.Height)
	case TypeAddEllipse:
		res.ObjectID = e.AddEllipse(cmd.X, cmd.Y, cmd.RX, cmd.RY)
	case TypeAddRotatedRectangle:
		res.ObjectID = e.AddRotatedRectangle(cmd.X, cmd.Y, cmd.Width, cmd.Height, cmd.Degrees)
	case TypeAddPath:
		cmds, err := document.DecodeCommands(cmd.Commands)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		}
		closed := true
		if cmd.Closed != nil {
			closed = *cmd.Closed
		}
		res.ObjectID = e.AddPath(cmds, closed)
	case TypeAddHeart:
		res.ObjectID = e.AddHeartPath(cmd.X, cmd.Y, cmd.Size)
	case TypeAddText:
		id, err := e.AddText(cmd.Text, cmd.X, cmd.Y, cmd.Size)
		if errors.Is(err, engine.ErrEmptyText) || errors.Is(err, text.ErrInvalidSize) {
			return Result{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
		}
		if err != nil {
			return Result{}, err
		}
		res.ObjectID = id

	// --- Scene ---
	case TypeClear:
		e.Clear()
	case TypeObjectCount:
		res.Count = e.ObjectCount()
	case TypeHitTest:
		res.ObjectID = e.HitTest(cmd.X, cmd.Y)
		res.OK = res.ObjectID != ""

	// --- Selection ---
	case TypeSelectAt:
		res.ObjectID = e.SelectAt(cmd.X, cmd.Y)
		res.OK = res.ObjectID != ""
	case TypeToggleAt:
		res.ObjectID = e.ToggleSelectionAt(cmd.X, cmd.Y)
		res.OK = res.ObjectID != ""
	case TypeSelectIDs:
		res.Count = e.Select(cmd.IDs...)
	case TypeAddToSelection:
		res.OK = e.AddToSelection(cmd.ObjectID)
	case TypeSelectInRect:
		// A marquee dragged up or left has a negative size.
		x1, y1 := cmd.X+cmd.Width, cmd.Y+cmd.Height
		box := geom.BoundingBox{MinX: min(cmd.X, x1), MinY: min(cmd.Y, y1), MaxX: max(cmd.X, x1), MaxY: max(cmd.Y, y1)}
		res.IDs = e.SelectInRect(box)
		res.Count = len(res.IDs)
	case TypeDeselectAll:
		e.DeselectAll()
	case TypeSelectedIDs:
		res.IDs = e.SelectedIDs()
		res.Count = len(res.IDs)
	case TypeDeleteSelected:
		res.Count = e.DeleteSelected()

	// --- Style and z-order ---
	case TypeGetStyle:
		style, ok := e.SelectedStyle()
		res.OK = ok
		if ok {
			res.Style = wireStyle(style)
		}
	case TypeSetStyle:
		res.Count = e.SetStyle(cmd.Fill, cmd.Stroke, cmd.StrokeWidth)
	case TypeBringToFront:
		res.OK = e.BringToFront()
	case TypeSendToBack:
		res.OK = e.SendToBack()

	// --- Drag ---
	case TypeBeginMove:
		e.BeginMoveDrag(cmd.X, cmd.Y)
	case TypeBeginResize:
		corner, ok := engine.ParseCorner(cmd.Corner)
		if !ok {
			return Result{}, fmt.Errorf("%w: unknown corner %q", ErrInvalidCommand, cmd.Corner)
		}
		res.OK = e.BeginResizeDrag(cmd.X, cmd.Y, corner)
	case TypeBeginRotate:
		res.OK = e.BeginRotateDrag(cmd.X, cmd.Y)
	case TypeUpdateMove:
		res.OK = e.UpdateMoveDrag(cmd.X, cmd.Y)
	case TypeUpdateResize:
		res.OK = e.UpdateResizeDrag(cmd.X, cmd.Y)
	case TypeUpdateRotate:
		res.OK = e.UpdateRotateDrag(cmd.X, cmd.Y)
	case TypeUpdateDrag:
		res.OK = e.UpdateDrag(cmd.X, cmd.Y)
	case TypeEndDrag:
		e.EndDrag()
	case TypeNudge:
		e.MoveSelected(cmd.DX, cmd.DY)

	// --- Pen ---
	case TypePenDown:
		res.Closable = e.PenDown(cmd.X, cmd.Y)
	case TypePenMove:
		e.PenMove(cmd.X, cmd.Y)
	case TypePenUp:
		e.PenUp()
	case TypePenClose:
		res.ObjectID = e.PenClose()
		res.OK = res.ObjectID != ""
	case TypePenFinish:
		res.ObjectID = e.PenFinish()
		res.OK = res.ObjectID != ""
	case TypePenCancel:
		e.PenCancel()
	case TypePenPreview:
		p, ok := e.PenPreview()
		res.OK = ok
		if ok {
			res.Preview = wirePreview(p)
		}

	// --- Overlay ---
	case TypeOverlays:
		res.Overlays = e.SelectionOverlays()
		res.Count = len(res.Overlays)
	case TypeHandles:
		h, ok := e.HandlePositions()
		res.OK = ok
		if ok {
			res.Handles = &h
		}
	case TypeSelectionCenter:
		c, ok := e.SelectionCenter()
		res.OK = ok
		if ok {
			res.Center = &c
		}

	// --- Path editing ---
	case TypeSelectedIsPath:
		res.OK = e.SelectedIsPath()
	case TypePathPoints:
		res.Points = e.PathPoints(cmd.ObjectID)
		res.Count = len(res.Points)
		res.OK = res.Points != nil
	case TypeUpdatePathPoint:
		res.OK = e.UpdatePathPoint(cmd.ObjectID, cmd.Index, cmd.X, cmd.Y)

	// --- History ---
	case TypeSaveSnapshot:
		e.SaveSnapshot()
		res.History = historyState(e)
	case TypeUndo:
		res.OK = e.Undo()
		res.History = historyState(e)
	case TypeRedo:
		res.OK = e.Redo()
		res.History = historyState(e)
	case TypeHistoryStatus:
		res.History = historyState(e)

	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}
	return res, nil
}

func wireStyle(s scene.Style) *document.Style {
	return &document.Style{Fill: s.Fill, Stroke: s.Stroke, StrokeWidth: s.StrokeWidth}
}

func wirePreview(p engine.PenPreview) *PenPreview {
	out := &PenPreview{
		Commands:   document.EncodeCommands(p.Commands),
		LastAnchor: p.LastAnchor,
		Pending:    p.Pending,
		Handle:     p.Handle,
		Dragging:   p.Dragging,
	}
	if p.PreviewCurve != nil {
		c := document.EncodeCommands([]scene.PathCommand{*p.PreviewCurve})[0]
		out.PreviewCurve = &c
	}
	return out
}

func historyState(e *engine.Editor) *HistoryState {
	return &HistoryState{
		CanUndo:   e.CanUndo(),
		CanRedo:   e.CanRedo(),
		UndoDepth: e.UndoDepth(),
		RedoDepth: e.RedoDepth(),
	}
}
