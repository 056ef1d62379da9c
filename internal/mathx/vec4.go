package mathx

// Vec4 is a 4-wide normalized color vector (RGBA in [0,1]), used by the
// rasterizer's barycentric color stepper. Kept as a plain float32 struct
// rather than a wide.* lane type: only one vertex color is stepped at a
// time here, the 16-wide batching lives in the blend package's pixel
// kernels.
type Vec4 struct {
	R, G, B, A float32
}

// Add returns v+other.
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v.R + other.R, v.G + other.G, v.B + other.B, v.A + other.A}
}

// Scale returns v scaled by s.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v.R * s, v.G * s, v.B * s, v.A * s}
}

// Mul returns the component-wise product of v and other.
func (v Vec4) Mul(other Vec4) Vec4 {
	return Vec4{v.R * other.R, v.G * other.G, v.B * other.B, v.A * other.A}
}

// One is the identity color vector (opaque white).
var One = Vec4{1, 1, 1, 1}

// U8x4ToVec4 converts a premultiplied byte color to a normalized Vec4.
func U8x4ToVec4(c [4]uint8) Vec4 {
	const inv255 = 1.0 / 255.0
	return Vec4{
		R: float32(c[0]) * inv255,
		G: float32(c[1]) * inv255,
		B: float32(c[2]) * inv255,
		A: float32(c[3]) * inv255,
	}
}

// Vec4ToU8x4 converts a normalized Vec4 back to a premultiplied byte color,
// rounding to nearest.
func Vec4ToU8x4(v Vec4) [4]uint8 {
	return [4]uint8{
		roundClamp255(v.R),
		roundClamp255(v.G),
		roundClamp255(v.B),
		roundClamp255(v.A),
	}
}

func roundClamp255(x float32) uint8 {
	v := x*255 + 0.5
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
