// Package mathx provides the 2D vectors, 4-wide color vectors, and
// fixed-point helpers shared by the rasterizer, mesh preparer, and tile
// engine.
package mathx

// Vec2 is a 2D float32 vector, used for screen-space positions and UVs.
type Vec2 struct {
	X, Y float32
}

// Add returns v+other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v-other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Min returns the component-wise minimum of v and other.
func (v Vec2) Min(other Vec2) Vec2 {
	return Vec2{minF32(v.X, other.X), minF32(v.Y, other.Y)}
}

// Max returns the component-wise maximum of v and other.
func (v Vec2) Max(other Vec2) Vec2 {
	return Vec2{maxF32(v.X, other.X), maxF32(v.Y, other.Y)}
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Rect is an axis-aligned rectangle in logical (float32) units, used for
// egui clip rects before they are scaled by pixels-per-point.
type Rect struct {
	Min, Max Vec2
}

// Intersect returns the intersection of r and other. The result may be
// empty (Min >= Max on an axis) if the rects do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	return Rect{
		Min: r.Min.Max(other.Min),
		Max: r.Max.Min(other.Max),
	}
}

// Orient2D returns twice the signed area of triangle abc. Positive for
// counter-clockwise winding.
func Orient2D(a, b, c Vec2) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
