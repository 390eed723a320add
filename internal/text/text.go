// Package text converts strings into path outlines so they can be stored
// and edited like any other path.
package text

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/inkframe/inkframe/backend-go/internal/scene"
)

var ErrInvalidSize = errors.New("font size must be positive")

// Default returns a shaper for the built-in Go Regular font. The font is
// parsed once per process.
var Default = sync.OnceValues(func() (*Shaper, error) {
	return New(goregular.TTF)
})

// Shaper lays out text with HarfBuzz shaping and reads glyph outlines from
// the same font file. It is safe for concurrent use.
type Shaper struct {
	mu      sync.Mutex
	face    *font.Face
	outline *sfnt.Font
	buf     sfnt.Buffer
	hb      shaping.HarfbuzzShaper
}

// New parses a TrueType or OpenType font.
func New(ttf []byte) (*Shaper, error) {
	face, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	f, err := sfnt.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font outlines: %w", err)
	}
	return &Shaper{face: face, outline: f}, nil
}

// ToPath returns the outline of s set at size pixels per em. The baseline
// starts at the origin and runs along +x; glyphs extend towards -y. Each
// contour is closed.
func (sh *Shaper) ToPath(s string, size float64) ([]scene.PathCommand, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return nil, nil
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()

	out := sh.hb.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      sh.face,
		Size:      toFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	})

	ppem := toFixed(size)
	var cmds []scene.PathCommand
	var penX float64
	for _, g := range out.Glyphs {
		segs, err := sh.outline.LoadGlyph(&sh.buf, sfnt.GlyphIndex(g.GlyphID), ppem, nil)
		if err != nil {
			return nil, fmt.Errorf("load glyph %d: %w", g.GlyphID, err)
		}
		// Shaping offsets are y-up; sfnt outlines are y-down.
		dx := penX + fromFixed(g.XOffset)
		dy := -fromFixed(g.YOffset)
		cmds = appendSegments(cmds, segs, dx, dy)
		penX += fromFixed(g.Advance)
	}
	return cmds, nil
}

// appendSegments converts one glyph outline, raising quadratics to cubics.
func appendSegments(cmds []scene.PathCommand, segs sfnt.Segments, dx, dy float64) []scene.PathCommand {
	pt := func(p fixed.Point26_6) (float64, float64) {
		return fromFixed(p.X) + dx, fromFixed(p.Y) + dy
	}

	open := false
	var cx, cy float64
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				cmds = append(cmds, scene.ClosePath())
			}
			cx, cy = pt(seg.Args[0])
			cmds = append(cmds, scene.MoveTo(cx, cy))
			open = true
		case sfnt.SegmentOpLineTo:
			cx, cy = pt(seg.Args[0])
			cmds = append(cmds, scene.LineTo(cx, cy))
		case sfnt.SegmentOpQuadTo:
			qx, qy := pt(seg.Args[0])
			x, y := pt(seg.Args[1])
			cmds = append(cmds, scene.CurveTo(
				cx+2.0/3.0*(qx-cx), cy+2.0/3.0*(qy-cy),
				x+2.0/3.0*(qx-x), y+2.0/3.0*(qy-y),
				x, y,
			))
			cx, cy = x, y
		case sfnt.SegmentOpCubeTo:
			x1, y1 := pt(seg.Args[0])
			x2, y2 := pt(seg.Args[1])
			cx, cy = pt(seg.Args[2])
			cmds = append(cmds, scene.CurveTo(x1, y1, x2, y2, cx, cy))
		}
	}
	if open {
		cmds = append(cmds, scene.ClosePath())
	}
	return cmds
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
