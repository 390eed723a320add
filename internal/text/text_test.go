package text

import (
	"errors"
	"sync"
	"testing"

	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

func shaper(t *testing.T) *Shaper {
	t.Helper()
	s, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return s
}

func bounds(t *testing.T, cmds []scene.PathCommand) geom.BoundingBox {
	t.Helper()
	b, ok := scene.Path{Commands: cmds}.LocalBounds()
	if !ok {
		t.Fatal("empty outline")
	}
	return b
}

func TestToPathGlyphOutline(t *testing.T) {
	cmds, err := shaper(t).ToPath("A", 64)
	if err != nil {
		t.Fatalf("ToPath: %v", err)
	}
	if len(cmds) < 3 {
		t.Fatalf("got %d commands", len(cmds))
	}
	if cmds[0].Op != scene.OpMoveTo {
		t.Errorf("first command = %v, want moveTo", cmds[0].Op)
	}
	if cmds[len(cmds)-1].Op != scene.OpClosePath {
		t.Errorf("last command = %v, want closePath", cmds[len(cmds)-1].Op)
	}

	// Capitals sit on the baseline and rise above it.
	b := bounds(t, cmds)
	if b.MaxY > 0.5 || b.MinY > -30 || b.MinY < -64 {
		t.Errorf("bounds = %+v, want glyph between y=-64 and the baseline", b)
	}
}

func TestToPathAdvances(t *testing.T) {
	s := shaper(t)
	one, _ := s.ToPath("H", 32)
	two, _ := s.ToPath("HH", 32)

	w1 := bounds(t, one).Width()
	w2 := bounds(t, two).Width()
	if w2 < 1.8*w1 {
		t.Errorf("width of HH = %v, want about twice H (%v)", w2, w1)
	}
	if len(two) != 2*len(one) {
		t.Errorf("HH has %d commands, want %d", len(two), 2*len(one))
	}
}

func TestToPathEdgeCases(t *testing.T) {
	s := shaper(t)

	if cmds, err := s.ToPath("", 12); err != nil || cmds != nil {
		t.Errorf("ToPath(\"\") = %v, %v", cmds, err)
	}
	if cmds, err := s.ToPath("   ", 12); err != nil || len(cmds) != 0 {
		t.Errorf("ToPath(spaces) = %v, %v", cmds, err)
	}
	for _, size := range []float64{0, -5} {
		if _, err := s.ToPath("x", size); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("ToPath size %v error = %v, want ErrInvalidSize", size, err)
		}
	}
	if _, err := New([]byte("not a font")); err == nil {
		t.Error("New(garbage) error = nil")
	}
}

func TestToPathConcurrent(t *testing.T) {
	s := shaper(t)
	want, _ := s.ToPath("ink", 20)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.ToPath("ink", 20)
			if err != nil || len(got) != len(want) {
				t.Errorf("concurrent ToPath = %d commands, %v", len(got), err)
			}
		}()
	}
	wg.Wait()
}
