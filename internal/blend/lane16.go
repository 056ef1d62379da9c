package blend

import "github.com/Speedy37/egui-software-backend/internal/wide"

// lane16Kernel's BlendSlice and BlendSliceOneSrc process pixels sixteen at
// a time using the teacher's wide.U16x16 fixed-size-array lane type
// (internal/wide), structured as four parallel channel lanes (R,G,B,A) —
// a Structure-of-Arrays layout the Go compiler can auto-vectorize on
// AVX2/NEON targets without hand-written assembly. The tinted and
// single-pixel methods work one pixel at a time, as Scalar does.
//
// The arithmetic here is NOT wide.U16x16.MulDiv255/Div255 (those use a
// different rounding bias, see math.go) — only the fixed-array lane type
// and its channel-parallel loop shape are reused; the rounding formula is
// this package's div255Round to stay bit-identical with Scalar.
type lane16Kernel struct{}

func loadLane16(px []Pixel, channel int) wide.U16x16 {
	var l wide.U16x16
	for i := 0; i < 16; i++ {
		l[i] = uint16(px[i][channel])
	}
	return l
}

func storeLane16(l wide.U16x16, px []Pixel, channel int) {
	for i := 0; i < 16; i++ {
		px[i][channel] = uint8(l[i])
	}
}

// blendLanes blends 16 src pixels over 16 dst pixels in place, operating
// channel-by-channel across four U16x16 lanes.
func blendLanes(srcR, srcG, srcB, srcA wide.U16x16, dst []Pixel) {
	var invA wide.U16x16
	for i := 0; i < 16; i++ {
		invA[i] = 255 - srcA[i]
	}

	for ch, srcLane := range [4]wide.U16x16{srcR, srcG, srcB, srcA} {
		dstLane := loadLane16(dst, ch)
		var out wide.U16x16
		for i := 0; i < 16; i++ {
			t := uint32(dstLane[i])*uint32(invA[i]) + 128
			out[i] = uint16(addSat(uint8(srcLane[i]), div255Round(t)))
		}
		storeLane16(out, dst, ch)
	}
}

func (lane16Kernel) BlendSlice(src []Pixel, dst []Pixel) {
	n := len(dst)
	i := 0
	for ; i+16 <= n; i += 16 {
		blendLanes(
			loadLane16(src[i:], 0), loadLane16(src[i:], 1),
			loadLane16(src[i:], 2), loadLane16(src[i:], 3),
			dst[i:i+16],
		)
	}
	for ; i < n; i++ {
		dst[i] = blendU8(src[i], dst[i])
	}
}

func (lane16Kernel) BlendSliceOneSrc(src Pixel, dst []Pixel) {
	var srcR, srcG, srcB, srcA wide.U16x16
	for i := 0; i < 16; i++ {
		srcR[i], srcG[i], srcB[i], srcA[i] = uint16(src[0]), uint16(src[1]), uint16(src[2]), uint16(src[3])
	}

	n := len(dst)
	i := 0
	for ; i+16 <= n; i += 16 {
		blendLanes(srcR, srcG, srcB, srcA, dst[i:i+16])
	}
	for ; i < n; i++ {
		dst[i] = blendU8(src, dst[i])
	}
}

func (lane16Kernel) BlendSliceTinted(src []Pixel, tint Pixel, dst []Pixel) {
	n := len(dst)
	for i := 0; i < n; i++ {
		dst[i] = blendU8(unormMul4(src[i], tint), dst[i])
	}
}

func (lane16Kernel) BlendSliceOneSrcTintedFn(constTex Pixel, nextVertColor func() Pixel, dst []Pixel) {
	for i := range dst {
		dst[i] = blendU8(unormMul4(constTex, nextVertColor()), dst[i])
	}
}

func (lane16Kernel) UnormMul4(a, b Pixel) Pixel {
	return unormMul4(a, b)
}

func (lane16Kernel) BlendU8(src, dst Pixel) Pixel {
	return blendU8(src, dst)
}

// Lane16 is the 16-wide batch Kernel, selected by NewDispatcher on platforms
// where the compiler is expected to auto-vectorize the channel loops
// (amd64 with AVX2, arm64 with ASIMD).
var Lane16 Kernel = lane16Kernel{}
