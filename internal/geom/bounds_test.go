package geom

import "testing"

func TestBoundingBoxContains(t *testing.T) {
	b := BoxFromRect(0, 0, 100, 50)
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 25, true},
		{"top-left corner", 0, 0, true},
		{"bottom-right corner", 100, 50, true},
		{"right edge", 100, 10, true},
		{"just outside", 100.001, 10, false},
		{"above", 50, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestBoundingBoxIntersects(t *testing.T) {
	a := BoxFromRect(0, 0, 10, 10)
	tests := []struct {
		name  string
		other BoundingBox
		want  bool
	}{
		{"overlap", BoxFromRect(5, 5, 10, 10), true},
		{"touching edge", BoxFromRect(10, 0, 5, 5), true},
		{"contained", BoxFromRect(2, 2, 1, 1), true},
		{"disjoint", BoxFromRect(20, 20, 5, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects(%+v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestEmptyBoxExtend(t *testing.T) {
	b := EmptyBox()
	if !b.IsEmpty() {
		t.Fatal("EmptyBox().IsEmpty() = false")
	}
	b = b.Extend(Pt(3, -2)).Extend(Pt(-1, 4))
	want := BoundingBox{MinX: -1, MinY: -2, MaxX: 3, MaxY: 4}
	if b != want {
		t.Errorf("Extend = %+v, want %+v", b, want)
	}
	if c := b.Center(); c != Pt(1, 1) {
		t.Errorf("Center() = %v, want (1, 1)", c)
	}
	if got := EmptyBox().Union(b); got != b {
		t.Errorf("Union with empty = %+v, want %+v", got, b)
	}
}

func TestCornersOrder(t *testing.T) {
	c := BoxFromRect(10, 20, 30, 40).Corners()
	want := [4]Point{{10, 20}, {40, 20}, {40, 60}, {10, 60}}
	if c != want {
		t.Errorf("Corners() = %v, want %v", c, want)
	}
}
