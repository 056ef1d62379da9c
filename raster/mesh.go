package raster

import (
	"github.com/Speedy37/egui-software-backend/internal/mathx"
	"github.com/Speedy37/egui-software-backend/internal/surface"
	"github.com/Speedy37/egui-software-backend/prepare"
	"github.com/Speedy37/egui-software-backend/internal/blend"
	"github.com/Speedy37/egui-software-backend/texture"
)

// DrawMesh walks mesh's triangles three indices at a time, builds each
// triangle's DrawInfo, decides the vert_col_vary/vert_uvs_vary/alpha_blend
// flags, optionally detects a rectangle pair, and fills it — mirroring the
// original's draw_egui_mesh_impl. clipRect and vertOffset let the same
// prepared mesh be re-rasterized against different dirty bboxes (cache
// modes) or a private canvas with a translated origin (tiled bitmap cache
// entries).
func DrawMesh(
	buf *surface.Buffer,
	tex *texture.Texture,
	clipRect mathx.Rect,
	mesh *prepare.Mesh,
	vertOffset mathx.Vec2,
	subPixBits int32,
	allowRasterOpt bool,
	convertTrisToRects bool,
	kernel blend.Kernel,
) {
	clipBounds := [2]mathx.I64Vec2{
		{
			X: mathx.ClampI64(mathx.PixelCenterRound(clipRect.Min.X), 0, int64(buf.Width)),
			Y: mathx.ClampI64(mathx.PixelCenterRound(clipRect.Min.Y), 0, int64(buf.Height)),
		},
		{
			X: mathx.ClampI64(mathx.PixelCenterRound(clipRect.Max.X), 0, int64(buf.Width)),
			Y: mathx.ClampI64(mathx.PixelCenterRound(clipRect.Max.Y), 0, int64(buf.Height)),
		},
	}
	if clipBounds[1].X-clipBounds[0].X <= 0 || clipBounds[1].Y-clipBounds[0].Y <= 0 {
		return
	}

	indices := mesh.Indices
	vertices := mesh.Vertices

	i := 0
	for i < len(indices) {
		tri := [3]prepare.Vertex{
			vertices[indices[i]],
			vertices[indices[i+1]],
			vertices[indices[i+2]],
		}
		tri[0].Pos = tri[0].Pos.Add(vertOffset)
		tri[1].Pos = tri[1].Pos.Add(vertOffset)
		tri[2].Pos = tri[2].Pos.Add(vertOffset)

		triMin := mathx.Vec2{
			X: minF32(tri[0].Pos.X, tri[1].Pos.X, tri[2].Pos.X),
			Y: minF32(tri[0].Pos.Y, tri[1].Pos.Y, tri[2].Pos.Y),
		}
		triMax := mathx.Vec2{
			X: maxF32(tri[0].Pos.X, tri[1].Pos.X, tri[2].Pos.X),
			Y: maxF32(tri[0].Pos.Y, tri[1].Pos.Y, tri[2].Pos.Y),
		}
		size := triMax.Sub(triMin)
		if size.X <= 0 || size.Y <= 0 {
			i += 3
			continue
		}

		colorsU8 := [3]blend.Pixel{tri[0].Color, tri[1].Color, tri[2].Color}
		draw := NewDrawInfo(
			clipBounds,
			[3]mathx.Vec4{mathx.U8x4ToVec4(colorsU8[0]), mathx.U8x4ToVec4(colorsU8[1]), mathx.U8x4ToVec4(colorsU8[2])},
			[3]mathx.Vec2{tri[0].Pos, tri[1].Pos, tri[2].Pos},
			[3]mathx.Vec2{tri[0].UV, tri[1].UV, tri[2].UV},
			triMin, triMax,
		)

		if !allowRasterOpt {
			FillTriangle(buf, tex, draw, subPixBits, true, true, true, kernel)
			i += 3
			continue
		}

		vertUVsVary := !(draw.UV[0] == draw.UV[1] && draw.UV[0] == draw.UV[2])
		vertColVary := !(colorsU8[0] == colorsU8[1] && colorsU8[0] == colorsU8[2])
		alphaBlend := true

		if !vertUVsVary {
			draw.ConstTexColorU8 = sampleTextureU8(tex, draw.UV[0])
			draw.ConstTexColor = mathx.U8x4ToVec4(draw.ConstTexColorU8)
		}
		if !vertColVary {
			draw.ConstVertColor = draw.Colors[0]
			draw.ConstVertColorU8 = colorsU8[0]
		}
		if !vertUVsVary && !vertColVary {
			constTri := draw.ConstVertColor.Mul(draw.ConstTexColor)
			draw.ConstTriColorU8 = mathx.Vec4ToU8x4(constTri)
			if draw.ConstTriColorU8[3] == 255 {
				alphaBlend = false
			}
		}
		if !vertUVsVary && vertColVary && draw.ConstTexColorU8[3] == 255 &&
			colorsU8[0][3] == 255 && colorsU8[1][3] == 255 && colorsU8[2][3] == 255 {
			alphaBlend = false
		}

		findRects := convertTrisToRects && !vertColVary && i+6 < len(indices)
		foundRect := false

		if findRects {
			tri2 := [3]prepare.Vertex{
				vertices[indices[i+3]],
				vertices[indices[i+4]],
				vertices[indices[i+5]],
			}
			tri2[0].Pos = tri2[0].Pos.Add(vertOffset)
			tri2[1].Pos = tri2[1].Pos.Add(vertOffset)
			tri2[2].Pos = tri2[2].Pos.Add(vertOffset)

			foundRect = triVertsMatchCorners(triMin, triMax, tri, tri2)

			if foundRect {
				triArea := absF32(mathx.Orient2D(tri[0].Pos, tri[1].Pos, tri[2].Pos))
				rectArea := (triMax.X - triMin.X) * (triMax.Y - triMin.Y)
				areasMatch := absF32(triArea-rectArea) < 0.5

				if areasMatch {
					if absF32(rectArea) < 0.25 {
						i += 6
						continue
					}
					if !vertUVsVary {
						tri2UVsMatch := tri[0].UV == tri2[0].UV && tri[0].UV == tri2[1].UV && tri[0].UV == tri2[2].UV
						vertUVsVary = vertUVsVary && tri2UVsMatch // always false here; matches upstream verbatim
					}
					if !vertColVary {
						tri2ColorsMatch := tri[0].Color == tri2[0].Color && tri[0].Color == tri2[1].Color && tri[0].Color == tri2[2].Color
						vertColVary = vertColVary && tri2ColorsMatch // always false here; matches upstream verbatim
					}
				} else {
					foundRect = false
				}
			}
		}

		rect := foundRect && !vertColVary // rectangle fast path does not support varying vertex color

		if rect {
			FillRect(buf, tex, draw, vertColVary, vertUVsVary, alphaBlend, kernel)
			i += 6
		} else {
			FillTriangle(buf, tex, draw, subPixBits, vertColVary, vertUVsVary, alphaBlend, kernel)
			i += 3
		}
	}
}

func sampleTextureU8(tex *texture.Texture, uv mathx.Vec2) blend.Pixel {
	if tex == nil {
		return blend.Pixel{255, 255, 255, 255}
	}
	return tex.SampleBilinear(uv.X*float32(tex.Width), uv.Y*float32(tex.Height))
}

// triVertsMatchCorners checks all 6 vertices of a candidate triangle pair
// lie exactly on the pair's combined bounding box corners — ported from
// imgui_software_renderer's rectangle-detection heuristic (exact float
// equality, not an epsilon compare, per the upstream comment).
func triVertsMatchCorners(triMin, triMax mathx.Vec2, tri, tri2 [3]prepare.Vertex) bool {
	close := func(a, b float32) bool { return a == b }
	onCorner := func(p mathx.Vec2) bool {
		return (close(p.X, triMin.X) || close(p.X, triMax.X)) && (close(p.Y, triMin.Y) || close(p.Y, triMax.Y))
	}
	return onCorner(tri[0].Pos) && onCorner(tri[1].Pos) && onCorner(tri[2].Pos) &&
		onCorner(tri2[0].Pos) && onCorner(tri2[1].Pos) && onCorner(tri2[2].Pos)
}
