package blend

// scalarKernel is the reference implementation: every other Kernel must
// produce bit-identical output to this one for all inputs (spec's blend
// reference equivalence property).
type scalarKernel struct{}

func (scalarKernel) BlendSlice(src []Pixel, dst []Pixel) {
	n := len(dst)
	for i := 0; i < n; i++ {
		dst[i] = blendU8(src[i], dst[i])
	}
}

func (scalarKernel) BlendSliceOneSrc(src Pixel, dst []Pixel) {
	for i := range dst {
		dst[i] = blendU8(src, dst[i])
	}
}

func (scalarKernel) BlendSliceTinted(src []Pixel, tint Pixel, dst []Pixel) {
	n := len(dst)
	for i := 0; i < n; i++ {
		dst[i] = blendU8(unormMul4(src[i], tint), dst[i])
	}
}

func (scalarKernel) BlendSliceOneSrcTintedFn(constTex Pixel, nextVertColor func() Pixel, dst []Pixel) {
	for i := range dst {
		vertColor := nextVertColor()
		dst[i] = blendU8(unormMul4(constTex, vertColor), dst[i])
	}
}

func (scalarKernel) UnormMul4(a, b Pixel) Pixel {
	return unormMul4(a, b)
}

func (scalarKernel) BlendU8(src, dst Pixel) Pixel {
	return blendU8(src, dst)
}

// Scalar is the portable reference Kernel. Always correct, used as the
// fallback when no wider lane kernel applies and as the oracle tests check
// every other Kernel against.
var Scalar Kernel = scalarKernel{}
