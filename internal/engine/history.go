package engine

import (
	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

// DefaultHistoryLimit caps each history stack.
const DefaultHistoryLimit = 50

// History keeps full copies of the scene for undo and redo. Snapshots are
// taken manually by the caller before a change it wants to be reversible.
type History struct {
	undo  []*scene.Graph
	redo  []*scene.Graph
	limit int
}

// NewHistory creates empty stacks holding at most limit entries each. A
// non-positive limit selects DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Limit returns the stack cap.
func (h *History) Limit() int { return h.limit }

// Save pushes a deep copy of g and clears the redo stack. It returns the
// number of oldest entries dropped to stay within the cap.
func (h *History) Save(g *scene.Graph) int {
	h.undo = append(h.undo, g.Clone())
	clear(h.redo)
	h.redo = h.redo[:0]
	return h.trim()
}

func (h *History) trim() int {
	over := len(h.undo) - h.limit
	if over <= 0 {
		return 0
	}
	clear(h.undo[:over])
	h.undo = h.undo[over:]
	return over
}

// Undo pops the latest snapshot and pushes current onto the redo stack. The
// history takes ownership of current; callers install the returned graph in
// its place.
func (h *History) Undo(current *scene.Graph) (*scene.Graph, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	prev := h.undo[len(h.undo)-1]
	h.undo[len(h.undo)-1] = nil
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return prev, true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current *scene.Graph) (*scene.Graph, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	next := h.redo[len(h.redo)-1]
	h.redo[len(h.redo)-1] = nil
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	h.trim()
	return next, true
}

func (h *History) CanUndo() bool  { return len(h.undo) > 0 }
func (h *History) CanRedo() bool  { return len(h.redo) > 0 }
func (h *History) UndoDepth() int { return len(h.undo) }
func (h *History) RedoDepth() int { return len(h.redo) }
