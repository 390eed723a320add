package spatial

import (
	"slices"
	"testing"

	"github.com/inkframe/inkframe/backend-go/internal/geom"
)

func twoBoxes() *Linear {
	l := NewLinear()
	l.Rebuild([]Entry{
		{ID: "obj_1", Bounds: geom.BoxFromRect(0, 0, 100, 100), World: geom.Identity()},
		{ID: "obj_2", Bounds: geom.BoxFromRect(0, 0, 100, 100), World: geom.Translate(50, 50)},
	})
	return l
}

func TestLinearQueryPoint(t *testing.T) {
	l := twoBoxes()
	tests := []struct {
		name string
		x, y float64
		want []string
	}{
		{"overlap is topmost first", 75, 75, []string{"obj_2", "obj_1"}},
		{"only bottom", 25, 25, []string{"obj_1"}},
		{"only top", 140, 140, []string{"obj_2"}},
		{"shared edge", 100, 100, []string{"obj_2", "obj_1"}},
		{"miss", 200, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.QueryPoint(tt.x, tt.y); !slices.Equal(got, tt.want) {
				t.Errorf("QueryPoint(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestLinearQueryRect(t *testing.T) {
	l := twoBoxes()
	tests := []struct {
		name string
		box  geom.BoundingBox
		want []string
	}{
		{"both", geom.BoxFromRect(-10, -10, 200, 200), []string{"obj_1", "obj_2"}},
		{"touching corner", geom.BoxFromRect(150, 150, 10, 10), []string{"obj_2"}},
		{"none", geom.BoxFromRect(300, 0, 10, 10), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.QueryRect(tt.box); !slices.Equal(got, tt.want) {
				t.Errorf("QueryRect(%+v) = %v, want %v", tt.box, got, tt.want)
			}
		})
	}
}

func TestLinearInsertRemove(t *testing.T) {
	l := twoBoxes()

	// Reinserting moves the entry to the top.
	l.Insert(Entry{ID: "obj_1", Bounds: geom.BoxFromRect(0, 0, 100, 100), World: geom.Identity()})
	if got := l.QueryPoint(75, 75); !slices.Equal(got, []string{"obj_1", "obj_2"}) {
		t.Errorf("after reinsert QueryPoint = %v", got)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}

	l.Remove("obj_1")
	if got := l.QueryPoint(75, 75); !slices.Equal(got, []string{"obj_2"}) {
		t.Errorf("after remove QueryPoint = %v", got)
	}

	l.Clear()
	if l.Len() != 0 {
		t.Errorf("Len() after Clear = %d", l.Len())
	}
}

func TestEntryWorldBoundsRotated(t *testing.T) {
	e := Entry{ID: "r", Bounds: geom.BoxFromRect(-50, -25, 100, 50), World: geom.Translate(100, 100).Compose(geom.RotateDegrees(90))}
	b := e.WorldBounds()
	if !b.Contains(100, 149) || b.Contains(149, 100) {
		t.Errorf("WorldBounds() = %+v does not reflect rotation", b)
	}
}
