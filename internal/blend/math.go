// Package blend implements the premultiplied-alpha pixel kernels: the
// canonical blend, its broadcast/tinted variants, and the unorm multiply
// used to modulate a sampled texel by a vertex color.
//
// All arithmetic here uses the exact rounding trick from the original
// AVX512 kernel (color_avx512bw.rs): bias the product by 128 before the
// "+ (x>>8), >> 8" approximate divide-by-255, which is what
// `_mm512_mulhi_epu16` against the 0x0101 multiplier computes. This is a
// different bias than the generic div255 helpers elsewhere in the corpus
// (which bias by 1) and the two are NOT interchangeable — every kernel,
// scalar or lane-batched, must use this exact formula to stay bit-identical
// with the scalar reference.
package blend

// div255Round divides a biased product by 255 using the "+x>>8, >>8"
// approximation. t must already include the +128 rounding bias.
func div255Round(t uint32) uint8 {
	return uint8((t + (t >> 8)) >> 8)
}

// mulDiv255 computes round(a*b/255) using the blend kernel's exact rounding
// formula (bias 128).
func mulDiv255(a, b uint8) uint8 {
	return div255Round(uint32(a)*uint32(b) + 128)
}

// addSat adds two bytes, saturating at 255.
func addSat(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// unormMul4 implements spec's `unorm_mul4`: per-channel (a*b+128+((a*b)>>8))>>8.
func unormMul4(a, b [4]uint8) [4]uint8 {
	return [4]uint8{
		mulDiv255(a[0], b[0]),
		mulDiv255(a[1], b[1]),
		mulDiv255(a[2], b[2]),
		mulDiv255(a[3], b[3]),
	}
}

// blendU8 is the scalar reference blend: dst <- src + dst*(255-src.a).
func blendU8(src, dst [4]uint8) [4]uint8 {
	invA := 255 - src[3]
	var out [4]uint8
	for i := 0; i < 4; i++ {
		t := uint32(dst[i])*uint32(invA) + 128
		out[i] = addSat(src[i], div255Round(t))
	}
	return out
}
