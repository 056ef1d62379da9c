package raster

import (
	"github.com/Speedy37/egui-software-backend/internal/blend"
	"github.com/Speedy37/egui-software-backend/internal/mathx"
	"github.com/Speedy37/egui-software-backend/internal/surface"
	"github.com/Speedy37/egui-software-backend/texture"
)

// edge is a fixed-point edge function A*x + B*y + C, scaled by
// subPixBits fractional bits (spec §4.2).
type edge struct {
	a, b, c int64
}

func (e edge) at(x, y int64) int64 {
	return e.a*x + e.b*y + e.c
}

func makeEdge(ax, ay, bx, by int64) edge {
	a := ay - by
	b := bx - ax
	c := -(a*ax + b*ay)
	return edge{a, b, c}
}

// FillTriangle rasterizes a single triangle described by draw into buf,
// sampling tex when UVs vary or a constant texel has been precomputed by
// the mesh walker. subPixBits selects the fixed-point precision (2 or 8,
// spec §4.2); vertColVary/vertUVsVary/alphaBlend select which of the
// eight specialized inner-loop behaviors runs.
//
// The Rust original monomorphizes these three flags and SUBPIX_BITS at
// compile time (eight generated variants per precision). Go has no const
// generics over booleans, so this implementation branches on them at
// runtime for every covered pixel instead; the flags select the same
// per-pixel computation either way.
func FillTriangle(buf *surface.Buffer, tex *texture.Texture, draw *DrawInfo, subPixBits int32, vertColVary, vertUVsVary, alphaBlend bool, kernel blend.Kernel) {
	area2 := mathx.Orient2D(draw.Pos[0], draw.Pos[1], draw.Pos[2])
	if area2 <= 0 {
		return // back-face culled; meshes are pre-oriented CCW (spec §4.2/§4.6)
	}

	minX := int64(draw.TriMin.X)
	minY := int64(draw.TriMin.Y)
	maxX := int64(draw.TriMax.X) + 1
	maxY := int64(draw.TriMax.Y) + 1

	minX = mathx.MaxI64(minX, draw.ClipBounds[0].X)
	minY = mathx.MaxI64(minY, draw.ClipBounds[0].Y)
	maxX = mathx.MinI64(maxX, draw.ClipBounds[1].X)
	maxY = mathx.MinI64(maxY, draw.ClipBounds[1].Y)
	maxX = mathx.MinI64(maxX, int64(buf.Width))
	maxY = mathx.MinI64(maxY, int64(buf.Height))
	if maxX <= minX || maxY <= minY {
		return
	}

	fx := [3]int64{
		mathx.ToFixed(draw.Pos[0].X, subPixBits),
		mathx.ToFixed(draw.Pos[1].X, subPixBits),
		mathx.ToFixed(draw.Pos[2].X, subPixBits),
	}
	fy := [3]int64{
		mathx.ToFixed(draw.Pos[0].Y, subPixBits),
		mathx.ToFixed(draw.Pos[1].Y, subPixBits),
		mathx.ToFixed(draw.Pos[2].Y, subPixBits),
	}

	e12 := makeEdge(fx[1], fy[1], fx[2], fy[2]) // weight for vertex 0
	e20 := makeEdge(fx[2], fy[2], fx[0], fy[0]) // weight for vertex 1
	e01 := makeEdge(fx[0], fy[0], fx[1], fy[1]) // weight for vertex 2

	areaFixed := e01.at(fx[2], fy[2])
	if areaFixed <= 0 {
		return
	}
	invArea := 1.0 / float32(areaFixed)

	half := int64(1) << uint(subPixBits-1)
	scale := int64(1) << uint(subPixBits)

	constTex := draw.ConstTexColorU8
	constVert := draw.ConstVertColorU8
	constTri := draw.ConstTriColorU8

	for y := minY; y < maxY; y++ {
		py := y*scale + half
		row := buf.Row(int32(y))

		rowE12 := e12.at(minX*scale+half, py)
		rowE20 := e20.at(minX*scale+half, py)
		rowE01 := e01.at(minX*scale+half, py)

		for x := minX; x < maxX; x++ {
			if rowE12 >= 0 && rowE20 >= 0 && rowE01 >= 0 {
				var out blend.Pixel
				switch {
				case !vertColVary && !vertUVsVary:
					out = constTri
				case !vertColVary && vertUVsVary:
					w0 := float32(rowE12) * invArea
					w1 := float32(rowE20) * invArea
					w2 := float32(rowE01) * invArea
					u := draw.UV[0].X*w0 + draw.UV[1].X*w1 + draw.UV[2].X*w2
					v := draw.UV[0].Y*w0 + draw.UV[1].Y*w1 + draw.UV[2].Y*w2
					texel := sampleTexture(tex, u, v)
					out = kernel.UnormMul4(texel, constVert)
				case vertColVary && !vertUVsVary:
					w0 := float32(rowE12) * invArea
					w1 := float32(rowE20) * invArea
					w2 := float32(rowE01) * invArea
					c := lerpVec4(draw.Colors, w0, w1, w2)
					out = kernel.UnormMul4(mathx.Vec4ToU8x4(c), constTex)
				default:
					w0 := float32(rowE12) * invArea
					w1 := float32(rowE20) * invArea
					w2 := float32(rowE01) * invArea
					u := draw.UV[0].X*w0 + draw.UV[1].X*w1 + draw.UV[2].X*w2
					v := draw.UV[0].Y*w0 + draw.UV[1].Y*w1 + draw.UV[2].Y*w2
					texel := sampleTexture(tex, u, v)
					c := lerpVec4(draw.Colors, w0, w1, w2)
					out = kernel.UnormMul4(texel, mathx.Vec4ToU8x4(c))
				}

				if alphaBlend {
					row[x] = kernel.BlendU8(out, row[x])
				} else {
					row[x] = out
				}
			}

			rowE12 += e12.a * scale
			rowE20 += e20.a * scale
			rowE01 += e01.a * scale
		}
	}
}

func lerpVec4(colors [3]mathx.Vec4, w0, w1, w2 float32) mathx.Vec4 {
	return colors[0].Scale(w0).Add(colors[1].Scale(w1)).Add(colors[2].Scale(w2))
}

func sampleTexture(tex *texture.Texture, u, v float32) blend.Pixel {
	if tex == nil {
		return blend.Pixel{255, 255, 255, 255}
	}
	return tex.SampleBilinear(u*float32(tex.Width), v*float32(tex.Height))
}
