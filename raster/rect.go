package raster

import (
	"github.com/Speedy37/egui-software-backend/internal/blend"
	"github.com/Speedy37/egui-software-backend/internal/mathx"
	"github.com/Speedy37/egui-software-backend/internal/surface"
	"github.com/Speedy37/egui-software-backend/texture"
)

const nearestSamplingEps = 0.01

// FillRect draws an axis-aligned rectangle primitive — two triangles that
// DrawMesh's triVertsMatchCorners and area checks proved form a rect —
// using one of three fast paths
// (spec §4.2):
//  1. constant color, no UV variation: fill or blend_slice_one_src.
//  2. constant UV region aligned to texel centers with unit stepping:
//     nearest-sampled tinted blend straight from the texture row.
//  3. otherwise: full per-pixel bilinear sample + modulate + blend.
//
// vertColVary is expected false (rectangles do not support varying vertex
// color, spec §4.5); it is accepted for symmetry with FillTriangle's
// signature and ignored beyond selecting path 1.
func FillRect(buf *surface.Buffer, tex *texture.Texture, draw *DrawInfo, vertColVary, vertUVsVary, alphaBlend bool, kernel blend.Kernel) {
	minX := mathx.MaxI64(mathx.PixelCenterRound(draw.TriMin.X), draw.ClipBounds[0].X)
	minY := mathx.MaxI64(mathx.PixelCenterRound(draw.TriMin.Y), draw.ClipBounds[0].Y)
	maxX := mathx.MinI64(mathx.PixelCenterRound(draw.TriMax.X), draw.ClipBounds[1].X)
	maxY := mathx.MinI64(mathx.PixelCenterRound(draw.TriMax.Y), draw.ClipBounds[1].Y)
	maxX = mathx.MinI64(maxX, int64(buf.Width))
	maxY = mathx.MinI64(maxY, int64(buf.Height))

	if maxX <= minX || maxY <= minY {
		return
	}

	if !vertUVsVary && !vertColVary {
		fillConstColor(buf, draw.ConstTriColorU8, alphaBlend, minX, minY, maxX, maxY, kernel)
		return
	}

	minUV := mathx.Vec2{
		X: minF32(draw.UV[0].X, draw.UV[1].X, draw.UV[2].X),
		Y: minF32(draw.UV[0].Y, draw.UV[1].Y, draw.UV[2].Y),
	}
	maxUV := mathx.Vec2{
		X: maxF32(draw.UV[0].X, draw.UV[1].X, draw.UV[2].X),
		Y: maxF32(draw.UV[0].Y, draw.UV[1].Y, draw.UV[2].Y),
	}

	triSize := draw.TriMax.Sub(draw.TriMin)
	uvStep := mathx.Vec2{X: (maxUV.X - minUV.X) / triSize.X, Y: (maxUV.Y - minUV.Y) / triSize.Y}

	offset := mathx.Vec2{X: float32(minX), Y: float32(minY)}.Sub(draw.TriMin)
	if offset.X < 0 {
		offset.X = 0
	}
	if offset.Y < 0 {
		offset.Y = 0
	}
	minUV = minUV.Add(mathx.Vec2{X: uvStep.X * offset.X, Y: uvStep.Y * offset.Y})
	minUV = minUV.Add(mathx.Vec2{X: uvStep.X * 0.5, Y: uvStep.Y * 0.5})

	texW := float32(tex.Width)
	texH := float32(tex.Height)
	tsMin := mathx.Vec2{X: minUV.X * texW, Y: minUV.Y * texH}
	tsMax := mathx.Vec2{X: maxUV.X * texW, Y: maxUV.Y * texH}

	ssStep := mathx.Vec2{X: uvStep.X * texW, Y: uvStep.Y * texH}
	distFromCenterX := absF32(tsMin.X - floorF32(tsMin.X) - 0.5)
	distFromCenterY := absF32(tsMin.Y - floorF32(tsMin.Y) - 0.5)
	stepsOffX := absF32(ssStep.X - 1)
	stepsOffY := absF32(ssStep.Y - 1)

	useNearest := stepsOffX < nearestSamplingEps && stepsOffY < nearestSamplingEps &&
		distFromCenterX < nearestSamplingEps && distFromCenterY < nearestSamplingEps
	noWrapOrOverflow := int32(tsMax.X) < int32(tex.Width) && int32(tsMax.Y) < int32(tex.Height)

	if useNearest && noWrapOrOverflow {
		fillNearestTinted(buf, tex, draw.ConstVertColorU8, int32(tsMin.X), int32(tsMin.Y), minX, minY, maxX, maxY, kernel)
		return
	}

	fillBilinearModulated(buf, tex, draw.ConstVertColorU8, minUV, uvStep, minX, minY, maxX, maxY, kernel)
}

func fillConstColor(buf *surface.Buffer, color blend.Pixel, alphaBlend bool, minX, minY, maxX, maxY int64, kernel blend.Kernel) {
	for y := minY; y < maxY; y++ {
		row := buf.Row(int32(y))[minX:maxX]
		if alphaBlend {
			kernel.BlendSliceOneSrc(color, row)
		} else {
			for i := range row {
				row[i] = color
			}
		}
	}
}

func fillNearestTinted(buf *surface.Buffer, tex *texture.Texture, tint blend.Pixel, texMinX, texMinY int32, minX, minY, maxX, maxY int64, kernel blend.Kernel) {
	texRow := texMinY
	for y := minY; y < maxY; y++ {
		rowStart := texRow * int32(tex.Width)
		texStart := rowStart + texMinX
		texEnd := texStart + int32(maxX-minX)
		src := tex.Pixels[texStart:texEnd]
		dst := buf.Row(int32(y))[minX:maxX]
		kernel.BlendSliceTinted(src, tint, dst)
		texRow++
	}
}

func fillBilinearModulated(buf *surface.Buffer, tex *texture.Texture, tint blend.Pixel, minUV, uvStep mathx.Vec2, minX, minY, maxX, maxY int64, kernel blend.Kernel) {
	uv := minUV
	for y := minY; y < maxY; y++ {
		uv.X = minUV.X
		row := buf.Row(int32(y))
		for x := minX; x < maxX; x++ {
			texel := tex.SampleBilinear(uv.X*float32(tex.Width), uv.Y*float32(tex.Height))
			src := kernel.UnormMul4(tint, texel)
			row[x] = kernel.BlendU8(src, row[x])
			uv.X += uvStep.X
		}
		uv.Y += uvStep.Y
	}
}

func minF32(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxF32(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func absF32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func floorF32(f float32) float32 {
	i := float32(int32(f))
	if f < i {
		return i - 1
	}
	return i
}
