package command

import (
	"errors"
	"testing"

	"github.com/inkframe/inkframe/backend-go/internal/document"
	"github.com/inkframe/inkframe/backend-go/internal/engine"
)

func run(t *testing.T, e *engine.Editor, cmd Command) Result {
	t.Helper()
	res, err := Dispatch(e, cmd)
	if err != nil {
		t.Fatalf("Dispatch(%s) error = %v", cmd.Type, err)
	}
	return res
}

func TestDispatchEditingSession(t *testing.T) {
	e := engine.NewEditor()

	run(t, e, Command{Type: TypeSaveSnapshot})
	rect := run(t, e, Command{Type: TypeAddRectangle, X: 0, Y: 0, Width: 100, Height: 50})
	if rect.ObjectID != "obj_1" {
		t.Fatalf("rectangle id = %q", rect.ObjectID)
	}

	if res := run(t, e, Command{Type: TypeSelectAt, X: 10, Y: 10}); res.ObjectID != rect.ObjectID {
		t.Errorf("select.at = %+v", res)
	}
	if res := run(t, e, Command{Type: TypeBeginResize, X: 100, Y: 50, Corner: "bottom-right"}); !res.OK {
		t.Errorf("drag.resize = %+v", res)
	}
	run(t, e, Command{Type: TypeUpdateDrag, X: 200, Y: 100})
	run(t, e, Command{Type: TypeEndDrag})

	handles := run(t, e, Command{Type: TypeHandles})
	if handles.Handles == nil || handles.Handles[2].X < 199 {
		t.Errorf("overlay.handles = %+v", handles.Handles)
	}

	res := run(t, e, Command{Type: TypeUndo})
	if !res.OK || res.History == nil || !res.History.CanRedo {
		t.Errorf("history.undo = %+v", res)
	}
	if res := run(t, e, Command{Type: TypeObjectCount}); res.Count != 0 {
		t.Errorf("scene.count after undo = %d", res.Count)
	}
}

func TestDispatchPen(t *testing.T) {
	e := engine.NewEditor()
	for _, p := range [][2]float64{{0, 0}, {100, 0}, {100, 100}} {
		run(t, e, Command{Type: TypePenDown, X: p[0], Y: p[1]})
		run(t, e, Command{Type: TypePenUp})
	}

	prev := run(t, e, Command{Type: TypePenPreview})
	if prev.Preview == nil || len(prev.Preview.Commands) != 3 {
		t.Fatalf("pen.preview = %+v", prev.Preview)
	}
	if res := run(t, e, Command{Type: TypePenDown, X: 2, Y: 2}); !res.Closable {
		t.Error("pen.down near start not closable")
	}
	closed := run(t, e, Command{Type: TypePenClose})
	if !closed.OK {
		t.Fatal("pen.close not ok")
	}

	pts := run(t, e, Command{Type: TypePathPoints, ObjectID: closed.ObjectID})
	if pts.Count != 3 {
		t.Errorf("path.points count = %d, want 3", pts.Count)
	}
}

func TestDispatchAddPath(t *testing.T) {
	e := engine.NewEditor()
	open := false
	res := run(t, e, Command{
		Type:     TypeAddPath,
		Commands: []document.Command{{Type: "MoveTo"}, {Type: "LineTo", X: 10, Y: 10}},
		Closed:   &open,
	})
	run(t, e, Command{Type: TypeSelectIDs, IDs: []string{res.ObjectID}})
	if !run(t, e, Command{Type: TypeSelectedIsPath}).OK {
		t.Error("path.is_selected not ok")
	}
}

func TestDispatchAddText(t *testing.T) {
	e := engine.NewEditor()
	res := run(t, e, Command{Type: TypeAddText, Text: "Hi", X: 100, Y: 200, Size: 48})
	if res.ObjectID == "" {
		t.Fatal("shape.text returned no id")
	}
	// The glyphs sit just above the baseline at (100, 200).
	if hit := run(t, e, Command{Type: TypeHitTest, X: 120, Y: 190}); hit.ObjectID != res.ObjectID {
		t.Errorf("hit inside the text = %q, want %q", hit.ObjectID, res.ObjectID)
	}
}

func TestDispatchRejects(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want error
	}{
		{"unknown type", Command{Type: "shape.star"}, ErrUnknownCommand},
		{"bad corner", Command{Type: TypeBeginResize, Corner: "middle"}, ErrInvalidCommand},
		{"bad path op", Command{Type: TypeAddPath, Commands: []document.Command{{Type: "ArcTo"}}}, ErrInvalidCommand},
		{"blank text", Command{Type: TypeAddText, Text: "  ", Size: 24}, ErrInvalidCommand},
		{"text without size", Command{Type: TypeAddText, Text: "ink"}, ErrInvalidCommand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := engine.NewEditor()
			if _, err := Dispatch(e, tt.cmd); !errors.Is(err, tt.want) {
				t.Errorf("Dispatch() error = %v, want %v", err, tt.want)
			}
			if e.ObjectCount() != 0 {
				t.Error("rejected command changed the scene")
			}
		})
	}
}

func TestDispatchSelectInRectNegativeSize(t *testing.T) {
	e := engine.NewEditor()
	run(t, e, Command{Type: TypeAddRectangle, X: 10, Y: 10, Width: 5, Height: 5})
	res := run(t, e, Command{Type: TypeSelectInRect, X: 50, Y: 50, Width: -45, Height: -45})
	if res.Count != 1 {
		t.Errorf("select.rect count = %d, want 1", res.Count)
	}
}
