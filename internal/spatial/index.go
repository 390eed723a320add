// Package spatial answers "which objects could be near this point or box"
// queries. Results are candidates; callers run exact tests on them.
package spatial

import (
	"slices"

	"github.com/inkframe/inkframe/backend-go/internal/geom"
)

// Entry is one indexed object. Bounds is in the object's local space and
// World maps it to scene space.
type Entry struct {
	ID     string
	Bounds geom.BoundingBox
	World  geom.Matrix2D
}

// WorldBounds returns the scene-space AABB of the entry.
func (e Entry) WorldBounds() geom.BoundingBox {
	return e.World.TransformRect(e.Bounds)
}

// Index is a swappable spatial query backend.
type Index interface {
	Insert(e Entry)
	Remove(id string)
	Clear()
	// Rebuild replaces every entry. Entries are given bottom to top.
	Rebuild(entries []Entry)
	// QueryPoint returns ids whose world bounds contain the point, topmost
	// first.
	QueryPoint(x, y float64) []string
	// QueryRect returns ids whose world bounds overlap box, bottom first.
	QueryRect(box geom.BoundingBox) []string
	Len() int
}

type linearEntry struct {
	Entry
	world geom.BoundingBox
}

// Linear keeps entries in z-order and scans them on every query.
type Linear struct {
	entries []linearEntry
}

// NewLinear creates an empty linear index.
func NewLinear() *Linear {
	return &Linear{}
}

var _ Index = (*Linear)(nil)

// Insert adds e on top. An existing entry with the same id is replaced.
func (l *Linear) Insert(e Entry) {
	l.Remove(e.ID)
	l.entries = append(l.entries, linearEntry{Entry: e, world: e.WorldBounds()})
}

func (l *Linear) Remove(id string) {
	l.entries = slices.DeleteFunc(l.entries, func(e linearEntry) bool { return e.ID == id })
}

func (l *Linear) Clear() {
	l.entries = l.entries[:0]
}

func (l *Linear) Rebuild(entries []Entry) {
	l.Clear()
	for _, e := range entries {
		l.entries = append(l.entries, linearEntry{Entry: e, world: e.WorldBounds()})
	}
}

func (l *Linear) QueryPoint(x, y float64) []string {
	var ids []string
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].world.Contains(x, y) {
			ids = append(ids, l.entries[i].ID)
		}
	}
	return ids
}

func (l *Linear) QueryRect(box geom.BoundingBox) []string {
	var ids []string
	for _, e := range l.entries {
		if e.world.Intersects(box) {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func (l *Linear) Len() int {
	return len(l.entries)
}
