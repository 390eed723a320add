package engine

import (
	"slices"
	"testing"

	"github.com/inkframe/inkframe/backend-go/internal/geom"
	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

func TestPenClickAndDrag(t *testing.T) {
	var p PenController

	if p.Down(geom.Pt(0, 0)) {
		t.Fatal("first Down reported closable")
	}
	p.Up()

	// Click: straight segment.
	p.Down(geom.Pt(100, 0))
	p.Up()

	// Click and drag: curve with the first control point on the last anchor.
	p.Down(geom.Pt(100, 100))
	p.Move(geom.Pt(150, 80))
	p.Move(geom.Pt(160, 90))
	p.Up()

	want := []scene.PathCommand{
		scene.MoveTo(0, 0),
		scene.LineTo(100, 0),
		scene.CurveTo(100, 0, 160, 90, 100, 100),
	}
	if got := p.Commands(); !slices.Equal(got, want) {
		t.Errorf("Commands() = %v, want %v", got, want)
	}
}

func TestPenClosableScenario(t *testing.T) {
	var p PenController
	p.Down(geom.Pt(0, 0))
	p.Up()
	p.Down(geom.Pt(100, 0))
	p.Up()
	p.Down(geom.Pt(100, 100))
	p.Up()

	before := p
	if !p.Down(geom.Pt(10, 10)) {
		t.Fatal("Down within 15 of the first anchor did not report closable")
	}
	if !slices.Equal(p.commands, before.commands) || p.hasPending != before.hasPending || p.last != before.last {
		t.Error("closable Down changed state")
	}

	cmds, ok := p.Close()
	if !ok {
		t.Fatal("Close() ok = false")
	}
	if len(cmds) != 4 || cmds[3].Op != scene.OpClosePath {
		t.Errorf("Close() commands = %v", cmds)
	}
	if p.Drawing() {
		t.Error("still drawing after Close")
	}
}

func TestPenCloseThreshold(t *testing.T) {
	tests := []struct {
		name string
		at   geom.Point
		want bool
	}{
		{"inside", geom.Pt(14.9, 0), true},
		{"on threshold", geom.Pt(15, 0), false},
		{"outside", geom.Pt(0, 20), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p PenController
			p.Down(geom.Pt(0, 0))
			p.Down(geom.Pt(100, 0))
			p.Up()
			if got := p.Down(tt.at); got != tt.want {
				t.Errorf("Down(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestPenNeedsTwoCommandsToClose(t *testing.T) {
	var p PenController
	p.Down(geom.Pt(0, 0))
	if p.Down(geom.Pt(1, 1)) {
		t.Error("single MoveTo reported closable")
	}
}

func TestPenIgnoredEvents(t *testing.T) {
	var p PenController
	p.Move(geom.Pt(1, 1))
	p.Up()
	if p.Drawing() {
		t.Fatal("idle controller started drawing on Move/Up")
	}

	p.Down(geom.Pt(0, 0))
	p.Move(geom.Pt(5, 5)) // no pending anchor
	p.Up()
	if got := p.Commands(); len(got) != 1 {
		t.Errorf("commands after ignored events = %v", got)
	}
	if prev, _ := p.Preview(); prev.Dragging {
		t.Error("Move without a pending anchor set dragging")
	}
}

func TestPenFinish(t *testing.T) {
	var p PenController
	p.Down(geom.Pt(0, 0))
	if _, ok := p.Finish(); ok {
		t.Error("Finish with one command ok = true")
	}
	if p.Drawing() {
		t.Error("Finish did not return to idle")
	}

	p.Down(geom.Pt(0, 0))
	p.Down(geom.Pt(10, 0))
	p.Up()
	cmds, ok := p.Finish()
	if !ok || len(cmds) != 2 || cmds[1] != scene.LineTo(10, 0) {
		t.Errorf("Finish() = %v, %v", cmds, ok)
	}
}

func TestPenPreview(t *testing.T) {
	var p PenController
	if _, ok := p.Preview(); ok {
		t.Error("Preview while idle ok = true")
	}
	p.Down(geom.Pt(0, 0))
	p.Up()
	p.Down(geom.Pt(50, 50))
	p.Move(geom.Pt(60, 40))

	prev, ok := p.Preview()
	if !ok {
		t.Fatal("Preview ok = false")
	}
	if !prev.Dragging || prev.Pending == nil || *prev.Pending != geom.Pt(50, 50) || *prev.Handle != geom.Pt(60, 40) {
		t.Errorf("Preview = %+v", prev)
	}
	if prev.PreviewCurve == nil || *prev.PreviewCurve != scene.CurveTo(0, 0, 60, 40, 50, 50) {
		t.Errorf("PreviewCurve = %v", prev.PreviewCurve)
	}

	p.Cancel()
	if p.Drawing() {
		t.Error("Cancel did not return to idle")
	}
}
