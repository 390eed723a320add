package engine

import (
	"testing"

	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

func TestUndoRestoresEmptyScene(t *testing.T) {
	for _, n := range []int{1, 5, 50} {
		e := NewEditor()
		for range n {
			e.SaveSnapshot()
			e.AddRectangle(0, 0, 10, 10)
		}
		if e.ObjectCount() != n {
			t.Fatalf("ObjectCount() = %d, want %d", e.ObjectCount(), n)
		}
		for i := range n {
			if !e.CanUndo() {
				t.Fatalf("CanUndo() = false with %d undos left", n-i)
			}
			if !e.Undo() {
				t.Fatalf("Undo() #%d = false", i+1)
			}
		}
		if e.ObjectCount() != 0 {
			t.Errorf("n=%d: ObjectCount() after undo = %d, want 0", n, e.ObjectCount())
		}
		if e.CanUndo() {
			t.Error("CanUndo() = true with an empty stack")
		}
		if e.Undo() {
			t.Error("Undo() on empty stack = true")
		}
		if e.RedoDepth() != n {
			t.Errorf("RedoDepth() = %d, want %d", e.RedoDepth(), n)
		}

		e.SaveSnapshot()
		if e.CanRedo() {
			t.Error("SaveSnapshot did not clear the redo stack")
		}
	}
}

func TestRedo(t *testing.T) {
	e := NewEditor()
	e.SaveSnapshot()
	id := e.AddRectangle(0, 0, 10, 10)
	e.Undo()

	if e.Scene().Find(id) != nil {
		t.Fatal("rectangle survived undo")
	}
	if !e.Redo() {
		t.Fatal("Redo() = false")
	}
	if e.Scene().Find(id) == nil {
		t.Error("rectangle missing after redo")
	}
	if e.Redo() {
		t.Error("second Redo() = true")
	}
}

func TestHistoryCap(t *testing.T) {
	h := NewHistory(3)
	g := scene.New()
	for i := range 5 {
		g.Add(g.GenerateID(), scene.Rectangle{}, geom.Identity())
		want := 0
		if i >= 3 {
			want = 1
		}
		if dropped := h.Save(g); dropped != want {
			t.Errorf("Save #%d dropped %d, want %d", i+1, dropped, want)
		}
	}
	if h.UndoDepth() != 3 {
		t.Fatalf("UndoDepth() = %d, want 3", h.UndoDepth())
	}
	// The oldest two snapshots (1 and 2 objects) were dropped.
	prev, _ := h.Undo(g)
	prev, _ = h.Undo(prev)
	prev, _ = h.Undo(prev)
	if prev.ObjectCount() != 3 {
		t.Errorf("oldest kept snapshot has %d objects, want 3", prev.ObjectCount())
	}
}

func TestSnapshotsAreDeepCopies(t *testing.T) {
	e := NewEditor()
	id := e.AddRectangle(0, 0, 10, 10)
	e.SaveSnapshot()

	e.Select(id)
	e.MoveSelected(50, 0)
	e.SetStyle("#fff", "none", 3)

	e.Undo()
	n := e.Scene().Find(id)
	if !n.Transform.IsIdentity() {
		t.Errorf("transform after undo = %v, want identity", n.Transform)
	}
	if n.Style != scene.DefaultStyle() {
		t.Errorf("style after undo = %+v", n.Style)
	}
}

func TestUndoClearsSelectionAndDrag(t *testing.T) {
	e := NewEditor()
	id := e.AddRectangle(0, 0, 10, 10)
	e.SaveSnapshot()
	e.Select(id)
	e.BeginMoveDrag(5, 5)
	e.PenDown(0, 0)

	e.Undo()
	if e.HasSelection() {
		t.Error("selection survived undo")
	}
	if e.IsDragging() {
		t.Error("drag survived undo")
	}
	if !e.IsPenDrawing() {
		t.Error("undo reset the pen")
	}
}
