package blend

// Pixel is a single premultiplied RGBA sample in the renderer's configured
// field order (RGBA or BGRA — the field order itself is applied upstream by
// the texture/mesh swizzle, blend never interprets channel identity).
type Pixel = [4]uint8

// Kernel is the capability set every blend implementation (scalar
// reference, or a SIMD-lane batch) must provide. A Dispatcher selects one
// concrete Kernel at renderer construction and the rasterizer calls it
// directly for the lifetime of the renderer — never re-selected per frame,
// never called through a second layer of indirection on the per-pixel hot
// path beyond this one interface value.
type Kernel interface {
	// BlendSlice blends src[i] over dst[i] in place for every pixel.
	BlendSlice(src []Pixel, dst []Pixel)

	// BlendSliceOneSrc blends the same src color over every pixel of dst.
	BlendSliceOneSrc(src Pixel, dst []Pixel)

	// BlendSliceTinted multiplies every src[i] by tint (unorm), then blends
	// the result over dst[i].
	BlendSliceTinted(src []Pixel, tint Pixel, dst []Pixel)

	// BlendSliceOneSrcTintedFn blends a constant texel (constTex) tinted by
	// a per-pixel vertex color supplied by nextVertColor, over dst.
	BlendSliceOneSrcTintedFn(constTex Pixel, nextVertColor func() Pixel, dst []Pixel)

	// UnormMul4 returns the per-channel unorm product of a and b.
	UnormMul4(a, b Pixel) Pixel

	// BlendU8 blends a single src pixel over a single dst pixel.
	BlendU8(src, dst Pixel) Pixel
}
