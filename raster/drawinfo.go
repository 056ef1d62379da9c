// Package raster fills triangles and axis-aligned rectangles into a
// surface.Buffer: fixed-point edge functions for triangles, three
// fast-path strategies for rectangles, and affine barycentric attribute
// interpolation for both.
package raster

import (
	"github.com/Speedy37/egui-software-backend/internal/blend"
	"github.com/Speedy37/egui-software-backend/internal/mathx"
)

// DrawInfo carries one triangle's (or rectangle pair's) per-primitive
// constants: clip bounds already clamped to the buffer, the three screen
// positions, UVs and colors, and — once computed by the mesh walker — the
// constant-path colors used when a triangle has no vertex color or UV
// variation.
type DrawInfo struct {
	ClipBounds [2]mathx.I64Vec2
	Colors     [3]mathx.Vec4
	Pos        [3]mathx.Vec2
	UV         [3]mathx.Vec2
	TriMin     mathx.Vec2
	TriMax     mathx.Vec2

	ConstTexColor     mathx.Vec4
	ConstTexColorU8   blend.Pixel
	ConstVertColor    mathx.Vec4
	ConstVertColorU8  blend.Pixel
	ConstTriColorU8   blend.Pixel
}

// NewDrawInfo builds a DrawInfo with the constant-path fields defaulted to
// opaque white, matching the original's DrawInfo::new.
func NewDrawInfo(clipBounds [2]mathx.I64Vec2, colors [3]mathx.Vec4, pos [3]mathx.Vec2, uv [3]mathx.Vec2, triMin, triMax mathx.Vec2) *DrawInfo {
	return &DrawInfo{
		ClipBounds:       clipBounds,
		Colors:           colors,
		Pos:              pos,
		UV:               uv,
		TriMin:           triMin,
		TriMax:           triMax,
		ConstTexColor:    mathx.One,
		ConstTexColorU8:  blend.Pixel{255, 255, 255, 255},
		ConstVertColor:   mathx.One,
		ConstVertColorU8: blend.Pixel{255, 255, 255, 255},
		ConstTriColorU8:  blend.Pixel{255, 255, 255, 255},
	}
}
