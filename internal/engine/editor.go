package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"

	"github.com/inkframe/inkframe/backend-go/internal/document"
	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/render"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
	"github.com/inkframe/inkframe/backend-go/internal/spatial"
	"github.com/inkframe/inkframe/backend-go/internal/text"
)

// ErrEmptyText is returned by AddText when the string has no visible glyphs.
var ErrEmptyText = errors.New("text has no visible glyphs")

// Editor is the editing context of one document. It owns the scene, the
// selection, the drag and pen state machines, the undo history and the
// spatial index, and processes commands from the host.
//
// An Editor is not safe for concurrent use; hosts serialize calls.
type Editor struct {
	scene     *scene.Graph
	selection selection
	drag      DragController
	pen       PenController
	history   *History

	// Spatial index over the leaves of scene, rebuilt lazily whenever the
	// graph or its version changes.
	index        spatial.Index
	indexedGraph *scene.Graph
	indexedVer   uint64
	leaves       map[string]scene.Leaf

	logger *slog.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithSpatialIndex selects the query backend. The default is a linear scan.
func WithSpatialIndex(idx spatial.Index) Option {
	return func(e *Editor) { e.index = idx }
}

// WithHistoryLimit caps the undo and redo stacks.
func WithHistoryLimit(n int) Option {
	return func(e *Editor) { e.history = NewHistory(n) }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) { e.logger = l }
}

// NewEditor creates an editor with an empty scene.
func NewEditor(opts ...Option) *Editor {
	e := &Editor{
		scene:   scene.New(),
		history: NewHistory(DefaultHistoryLimit),
		index:   spatial.NewLinear(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// --- Lifecycle ---

// Scene returns the live scene graph. Callers must treat it as read-only.
func (e *Editor) Scene() *scene.Graph {
	return e.scene
}

// Clear replaces the scene with an empty one and resets selection, drag and
// pen. History is kept so the clear itself can be undone.
func (e *Editor) Clear() {
	e.ReplaceScene(scene.New())
}

// ReplaceScene installs g as the current scene and resets interaction state.
func (e *Editor) ReplaceScene(g *scene.Graph) {
	e.scene = g
	e.selection.clear()
	e.drag.End()
	e.pen.Cancel()
}

// ImportScene decodes a JSON document and installs it. On error the current
// scene is left untouched.
func (e *Editor) ImportScene(data []byte) error {
	g, err := document.FromJSON(data)
	if err != nil {
		e.logger.Warn("scene import rejected", "error", err)
		return fmt.Errorf("import scene: %w", err)
	}
	e.ReplaceScene(g)
	return nil
}

// ExportScene encodes the current scene as JSON.
func (e *Editor) ExportScene() ([]byte, error) {
	return document.ToJSON(e.scene)
}

// --- Shapes ---

func (e *Editor) addShape(shape scene.Shape, transform geom.Matrix2D) string {
	id := e.scene.GenerateID()
	e.scene.Add(id, shape, transform)
	return id
}

// AddRectangle adds a rectangle at identity and returns its id.
func (e *Editor) AddRectangle(x, y, width, height float64) string {
	return e.addShape(scene.Rectangle{X: x, Y: y, Width: width, Height: height}, geom.Identity())
}

// AddEllipse adds an ellipse at identity and returns its id.
func (e *Editor) AddEllipse(cx, cy, rx, ry float64) string {
	return e.addShape(scene.Ellipse{CX: cx, CY: cy, RX: rx, RY: ry}, geom.Identity())
}

// AddRotatedRectangle adds a rectangle centered on its local origin, placed
// at (cx, cy) and rotated by degrees.
func (e *Editor) AddRotatedRectangle(cx, cy, width, height, degrees float64) string {
	rect := scene.Rectangle{X: -width / 2, Y: -height / 2, Width: width, Height: height}
	return e.addShape(rect, geom.Translate(cx, cy).Compose(geom.RotateDegrees(degrees)))
}

// AddPath adds a path at identity. The commands are copied.
func (e *Editor) AddPath(cmds []scene.PathCommand, closed bool) string {
	return e.addShape(scene.Path{Commands: slices.Clone(cmds), Closed: closed}, geom.Identity())
}

// AddText outlines s in the built-in font and adds it as a closed path
// whose baseline starts at (x, y).
func (e *Editor) AddText(s string, x, y, size float64) (string, error) {
	sh, err := text.Default()
	if err != nil {
		return "", err
	}
	cmds, err := sh.ToPath(s, size)
	if err != nil {
		return "", err
	}
	if len(cmds) == 0 {
		return "", ErrEmptyText
	}
	return e.addShape(scene.Path{Commands: cmds, Closed: true}, geom.Translate(x, y)), nil
}

// AddHeartPath adds a heart of the given size centered at (cx, cy).
func (e *Editor) AddHeartPath(cx, cy, size float64) string {
	return e.addShape(scene.Path{Commands: HeartCommands(size), Closed: true}, geom.Translate(cx, cy))
}

// HeartCommands returns a heart outline around the local origin. A size of
// 100 spans roughly 100 units.
func HeartCommands(size float64) []scene.PathCommand {
	s := size / 100
	return []scene.PathCommand{
		scene.MoveTo(0, 30*s),
		scene.CurveTo(-50*s, -20*s, -50*s, -70*s, 0, -50*s),
		scene.CurveTo(50*s, -70*s, 50*s, -20*s, 0, 30*s),
		scene.ClosePath(),
	}
}

// ObjectCount counts every node in the scene.
func (e *Editor) ObjectCount() int {
	return e.scene.ObjectCount()
}

// --- Hit testing ---

func (e *Editor) refreshIndex() {
	if e.indexedGraph == e.scene && e.indexedVer == e.scene.Version() && e.leaves != nil {
		return
	}
	var entries []spatial.Entry
	leaves := make(map[string]scene.Leaf)
	for leaf := range e.scene.Leaves() {
		local, ok := leaf.Shape.LocalBounds()
		// Collapsed leaves have no area to hit or enclose.
		if !ok || leaf.World.IsDegenerate() {
			continue
		}
		entries = append(entries, spatial.Entry{ID: leaf.ID, Bounds: local, World: leaf.World})
		leaves[leaf.ID] = leaf
	}
	e.index.Rebuild(entries)
	e.leaves = leaves
	e.indexedGraph = e.scene
	e.indexedVer = e.scene.Version()
}

// HitTest returns the topmost leaf under the point, or "". The spatial index
// narrows the candidates and each candidate is tested exactly.
func (e *Editor) HitTest(x, y float64) string {
	e.refreshIndex()
	// Pad the broad phase so rounding in the world boxes never hides a hit.
	pad := 1e-9 * max(1, math.Abs(x), math.Abs(y))
	candidates := e.index.QueryRect(geom.BoundingBox{MinX: x - pad, MinY: y - pad, MaxX: x + pad, MaxY: y + pad})
	for i := len(candidates) - 1; i >= 0; i-- {
		leaf, ok := e.leaves[candidates[i]]
		if ok && HitTestLeaf(leaf, x, y) {
			return leaf.ID
		}
	}
	return ""
}

// --- Selection ---

// SelectAt replaces the selection with the object under the point and
// returns its id, or "" after clearing the selection on a miss.
func (e *Editor) SelectAt(x, y float64) string {
	e.selection.clear()
	id := e.HitTest(x, y)
	e.selection.add(id)
	return id
}

// ToggleSelectionAt adds or removes the object under the point. It returns
// the id that was hit.
func (e *Editor) ToggleSelectionAt(x, y float64) string {
	id := e.HitTest(x, y)
	if id != "" {
		e.selection.toggle(id)
	}
	return id
}

// Select replaces the selection with the given ids. Unknown ids are
// ignored; it returns the number selected.
func (e *Editor) Select(ids ...string) int {
	e.selection.clear()
	for _, id := range ids {
		if e.scene.Find(id) != nil {
			e.selection.add(id)
		}
	}
	return e.selection.len()
}

// AddToSelection appends id to the selection.
func (e *Editor) AddToSelection(id string) bool {
	if e.scene.Find(id) == nil {
		return false
	}
	return e.selection.add(id)
}

// SelectInRect selects every leaf whose world box overlaps box.
func (e *Editor) SelectInRect(box geom.BoundingBox) []string {
	e.refreshIndex()
	e.selection.clear()
	for _, id := range e.index.QueryRect(box) {
		e.selection.add(id)
	}
	return e.selection.list()
}

func (e *Editor) DeselectAll() {
	e.selection.clear()
}

// SelectedIDs returns the selection in the order it was made.
func (e *Editor) SelectedIDs() []string {
	return e.selection.list()
}

func (e *Editor) HasSelection() bool {
	return e.selection.len() > 0
}

// DeleteSelected removes every selected node and returns how many were
// removed.
func (e *Editor) DeleteSelected() int {
	n := 0
	for _, id := range e.selection.list() {
		if e.scene.Remove(id) {
			n++
		}
	}
	e.selection.clear()
	e.drag.End()
	return n
}

// --- Style ---

// SelectedStyle returns the style of the first selected leaf.
func (e *Editor) SelectedStyle() (scene.Style, bool) {
	id, ok := e.selection.first()
	if !ok {
		return scene.Style{}, false
	}
	n := e.scene.Find(id)
	if n == nil || n.IsGroup() {
		return scene.Style{}, false
	}
	return n.Style, true
}

// SetStyle paints every selected leaf. "none" or "" clears a paint and a
// negative width is treated as zero. It returns the number of leaves
// updated.
func (e *Editor) SetStyle(fill, stroke string, strokeWidth float64) int {
	style := scene.Style{
		Fill:        normalizePaint(fill),
		Stroke:      normalizePaint(stroke),
		StrokeWidth: max(strokeWidth, 0),
	}
	n := 0
	for _, id := range e.selection.list() {
		node := e.scene.FindMut(id)
		if node == nil || node.IsGroup() {
			continue
		}
		node.Style = style
		n++
	}
	return n
}

func normalizePaint(p string) string {
	if p == "none" {
		return ""
	}
	return p
}

// --- Z-order ---

// BringToFront raises the first selected object to the top of the scene.
func (e *Editor) BringToFront() bool {
	id, ok := e.selection.first()
	return ok && e.scene.BringToFront(id)
}

// SendToBack lowers the first selected object to the bottom of the scene.
func (e *Editor) SendToBack() bool {
	id, ok := e.selection.first()
	return ok && e.scene.SendToBack(id)
}

// --- Overlay ---

// SelectionOverlays returns the handle quadrilaterals of the selected
// leaves in paint order.
func (e *Editor) SelectionOverlays() []SelectionOverlay {
	return SelectionOverlays(e.scene, e.selection.has)
}

// primaryOverlay is the overlay of the first selected leaf. It supplies the
// resize and rotate pivots.
func (e *Editor) primaryOverlay() (SelectionOverlay, bool) {
	id, ok := e.selection.first()
	if !ok {
		return SelectionOverlay{}, false
	}
	for leaf := range e.scene.Leaves() {
		if leaf.ID == id {
			return OverlayForLeaf(leaf)
		}
	}
	return SelectionOverlay{}, false
}

// HandlePositions returns the four handle positions of the first selected
// leaf.
func (e *Editor) HandlePositions() ([4]geom.Point, bool) {
	o, ok := e.primaryOverlay()
	return o.Corners, ok
}

// SelectionCenter returns the centroid of the first selected leaf's overlay.
func (e *Editor) SelectionCenter() (geom.Point, bool) {
	o, ok := e.primaryOverlay()
	if !ok {
		return geom.Point{}, false
	}
	return o.Centroid(), true
}

// --- History ---

// SaveSnapshot checkpoints the scene before a change that should be
// undoable. It clears the redo stack.
func (e *Editor) SaveSnapshot() {
	if dropped := e.history.Save(e.scene); dropped > 0 {
		e.logger.Debug("history trimmed", "dropped", dropped, "limit", e.history.Limit())
	}
}

// Undo restores the previous snapshot and clears selection and drag.
func (e *Editor) Undo() bool {
	prev, ok := e.history.Undo(e.scene)
	if !ok {
		return false
	}
	e.restore(prev)
	return true
}

// Redo reapplies the last undone snapshot and clears selection and drag.
func (e *Editor) Redo() bool {
	next, ok := e.history.Redo(e.scene)
	if !ok {
		return false
	}
	e.restore(next)
	return true
}

func (e *Editor) restore(g *scene.Graph) {
	e.scene = g
	e.selection.clear()
	e.drag.End()
}

func (e *Editor) CanUndo() bool  { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool  { return e.history.CanRedo() }
func (e *Editor) UndoDepth() int { return e.history.UndoDepth() }
func (e *Editor) RedoDepth() int { return e.history.RedoDepth() }

// --- Output ---

// RenderCommands flattens the scene into draw commands in painter's order.
func (e *Editor) RenderCommands() []render.DrawCommand {
	return render.Commands(e.scene)
}

// ExportSVG renders the scene as an SVG document of the given size.
func (e *Editor) ExportSVG(width, height int) string {
	return render.SVG(e.scene, width, height)
}

// ExportPNG rasterizes the scene and writes it to w as a PNG image.
func (e *Editor) ExportPNG(w io.Writer, width, height int) error {
	return render.PNG(w, e.scene, width, height)
}
