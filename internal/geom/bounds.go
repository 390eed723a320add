package geom

import "math"

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Len returns the distance from the origin.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the distance between p and q.
func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Len()
}

// Angle returns atan2(y, x).
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// BoundingBox is an axis-aligned box given by its extremes.
type BoundingBox struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// EmptyBox returns a box that contains nothing and grows on Extend.
func EmptyBox() BoundingBox {
	return BoundingBox{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
}

// BoxFromRect builds a box from an origin and size.
func BoxFromRect(x, y, width, height float64) BoundingBox {
	return BoundingBox{MinX: x, MinY: y, MaxX: x + width, MaxY: y + height}
}

// BoxFromEllipse builds the box enclosing an ellipse.
func BoxFromEllipse(cx, cy, rx, ry float64) BoundingBox {
	return BoundingBox{MinX: cx - rx, MinY: cy - ry, MaxX: cx + rx, MaxY: cy + ry}
}

// IsEmpty reports whether no point was ever added.
func (b BoundingBox) IsEmpty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Extend grows the box to include p.
func (b BoundingBox) Extend(p Point) BoundingBox {
	return BoundingBox{
		MinX: min(b.MinX, p.X),
		MinY: min(b.MinY, p.Y),
		MaxX: max(b.MaxX, p.X),
		MaxY: max(b.MaxY, p.Y),
	}
}

// Union returns the smallest box containing both boxes.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	return BoundingBox{
		MinX: min(b.MinX, other.MinX),
		MinY: min(b.MinY, other.MinY),
		MaxX: max(b.MaxX, other.MaxX),
		MaxY: max(b.MaxY, other.MaxY),
	}
}

// Contains checks if a point is inside the box, edges included.
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Intersects is the closed-interval overlap test.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return b.MinX <= other.MaxX && b.MaxX >= other.MinX &&
		b.MinY <= other.MaxY && b.MaxY >= other.MinY
}

// Width returns MaxX - MinX.
func (b BoundingBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// Center returns the center point of the box.
func (b BoundingBox) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Corners returns [top-left, top-right, bottom-right, bottom-left].
func (b BoundingBox) Corners() [4]Point {
	return [4]Point{
		{X: b.MinX, Y: b.MinY},
		{X: b.MaxX, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}
}
