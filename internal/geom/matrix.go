package geom

import "math"

// DegenerateEpsilon is the determinant magnitude at or below which a matrix
// is treated as non-invertible.
const DegenerateEpsilon = 1e-10

// Matrix2D represents a 2D affine transformation matrix.
// Layout: [a, b, c, d, tx, ty] representing:
// | a  b  tx |
// | c  d  ty |
// | 0  0  1  |
//
// so that x' = a*x + b*y + tx and y' = c*x + d*y + ty.
type Matrix2D [6]float64

// Identity returns the identity matrix.
func Identity() Matrix2D {
	return Matrix2D{1, 0, 0, 1, 0, 0}
}

// Translate returns a translation matrix.
func Translate(tx, ty float64) Matrix2D {
	return Matrix2D{1, 0, 0, 1, tx, ty}
}

// Scale returns a scale matrix.
func Scale(sx, sy float64) Matrix2D {
	return Matrix2D{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a rotation matrix (angle in radians).
// Positive angles rotate clockwise in a y-down space: (1, 0) maps to (0, -1)
// for a quarter turn.
func Rotate(radians float64) Matrix2D {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	return Matrix2D{cos, sin, -sin, cos, 0, 0}
}

// RotateDegrees returns a rotation matrix (angle in degrees).
func RotateDegrees(degrees float64) Matrix2D {
	return Rotate(degrees * math.Pi / 180.0)
}

// ScaleAround scales about pivot: Translate(pivot) * Scale * Translate(-pivot).
func ScaleAround(sx, sy float64, pivot Point) Matrix2D {
	return Translate(pivot.X, pivot.Y).
		Compose(Scale(sx, sy)).
		Compose(Translate(-pivot.X, -pivot.Y))
}

// RotateAround rotates about pivot: Translate(pivot) * Rotate * Translate(-pivot).
func RotateAround(radians float64, pivot Point) Matrix2D {
	return Translate(pivot.X, pivot.Y).
		Compose(Rotate(radians)).
		Compose(Translate(-pivot.X, -pivot.Y))
}

// Compose multiplies this matrix by another: result = m * other.
// This applies 'other' first, then 'm'.
func (m Matrix2D) Compose(other Matrix2D) Matrix2D {
	return Matrix2D{
		m[0]*other[0] + m[1]*other[2],        // a
		m[0]*other[1] + m[1]*other[3],        // b
		m[2]*other[0] + m[3]*other[2],        // c
		m[2]*other[1] + m[3]*other[3],        // d
		m[0]*other[4] + m[1]*other[5] + m[4], // tx
		m[2]*other[4] + m[3]*other[5] + m[5], // ty
	}
}

// TransformPoint applies the matrix to a point.
func (m Matrix2D) TransformPoint(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[4], m[2]*x + m[3]*y + m[5]
}

// Apply is TransformPoint for a Point value.
func (m Matrix2D) Apply(p Point) Point {
	x, y := m.TransformPoint(p.X, p.Y)
	return Point{X: x, Y: y}
}

// TransformRect transforms a box and returns its axis-aligned bounding box.
func (m Matrix2D) TransformRect(b BoundingBox) BoundingBox {
	corners := b.Corners()
	out := EmptyBox()
	for _, c := range corners {
		out = out.Extend(m.Apply(c))
	}
	return out
}

// Determinant returns the determinant of the linear part.
func (m Matrix2D) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// IsDegenerate reports whether the matrix cannot be inverted.
func (m Matrix2D) IsDegenerate() bool {
	return math.Abs(m.Determinant()) <= DegenerateEpsilon
}

// Inverse returns the inverse of the matrix. ok is false when the matrix is
// degenerate.
func (m Matrix2D) Inverse() (inv Matrix2D, ok bool) {
	det := m.Determinant()
	if math.Abs(det) <= DegenerateEpsilon {
		return Matrix2D{}, false
	}

	invDet := 1.0 / det
	return Matrix2D{
		m[3] * invDet,
		-m[1] * invDet,
		-m[2] * invDet,
		m[0] * invDet,
		(m[1]*m[5] - m[3]*m[4]) * invDet,
		(m[2]*m[4] - m[0]*m[5]) * invDet,
	}, true
}

// Translation returns the translation components.
func (m Matrix2D) Translation() (float64, float64) {
	return m[4], m[5]
}

// ToSlice returns the matrix as a float64 slice for serialization.
func (m Matrix2D) ToSlice() []float64 {
	return []float64{m[0], m[1], m[2], m[3], m[4], m[5]}
}

// CanvasSlice returns the matrix in Canvas2D setTransform / SVG matrix()
// order: [a, c, b, d, tx, ty].
func (m Matrix2D) CanvasSlice() []float64 {
	return []float64{m[0], m[2], m[1], m[3], m[4], m[5]}
}

// IsIdentity checks if this is exactly the identity matrix.
func (m Matrix2D) IsIdentity() bool {
	return m == Identity()
}

// ApproxEqual compares every coefficient within eps.
func (m Matrix2D) ApproxEqual(other Matrix2D, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}
