// Package prepare scales and orients a toolkit mesh into the renderer's
// pixel space: applying pixels-per-point, swizzling vertex colors to the
// configured field order, normalizing triangle winding, and accumulating
// the mesh's pixel-space bounds.
package prepare

import (
	"log/slog"

	"github.com/Speedy37/egui-software-backend/internal/blend"
	"github.com/Speedy37/egui-software-backend/internal/mathx"
	"github.com/Speedy37/egui-software-backend/texture"
)

// Vertex is a single mesh vertex in the toolkit's logical units, with color
// already in the toolkit's own (straight RGBA) field order.
type Vertex struct {
	Pos   mathx.Vec2
	UV    mathx.Vec2
	Color blend.Pixel
}

// Mesh is a toolkit-supplied triangle mesh: indices consumed three at a
// time, referencing one shared texture.
type Mesh struct {
	TextureID texture.ID
	Indices   []uint32
	Vertices  []Vertex
}

// Primitive is either a Mesh or an unsupported callback (spec §6/§7:
// callbacks are logged and dropped).
type Primitive struct {
	ClipRect mathx.Rect
	Mesh     *Mesh
	Callback bool
}

// Prepared is a mesh after pixel-space scaling, color swizzle, and CCW
// normalization — the unit the cache stores for the Mesh/MeshTiled caching
// modes and the input the rasterizer's per-triangle loop walks.
type Prepared struct {
	ClipRect mathx.Rect // pixel-space, already splat-padded
	MeshMin  mathx.Vec2
	MeshMax  mathx.Vec2
	Mesh     Mesh
}

// PixelMesh scales prim into pixel space by pixelsPerPoint, applying splat
// padding to the clip rect (1.5 in direct-draw mode, 0.5 in cache modes,
// per spec §4.5 and the empirical `splat` constants preserved verbatim).
// Returns false if the primitive is empty or a callback (logged and
// dropped).
func PixelMesh(logger *slog.Logger, order texture.FieldOrder, splat, pixelsPerPoint float32, prim Primitive) (Prepared, bool) {
	if prim.Callback {
		logger.Warn("paint callback primitives are not supported")
		return Prepared{}, false
	}
	if prim.Mesh == nil || len(prim.Mesh.Vertices) == 0 || len(prim.Mesh.Indices) == 0 {
		return Prepared{}, false
	}

	clipRect := mathx.Rect{
		Min: prim.ClipRect.Min.Scale(pixelsPerPoint),
		Max: prim.ClipRect.Max.Scale(pixelsPerPoint).Add(mathx.Vec2{X: splat, Y: splat}),
	}

	vertices := make([]Vertex, len(prim.Mesh.Vertices))
	meshMin := mathx.Vec2{X: float32MaxValue, Y: float32MaxValue}
	meshMax := mathx.Vec2{X: -float32MaxValue, Y: -float32MaxValue}

	for i, v := range prim.Mesh.Vertices {
		pos := v.Pos.Scale(pixelsPerPoint)
		color := v.Color
		if order == texture.BGRA {
			color = blend.Pixel{color[2], color[1], color[0], color[3]}
		}
		vertices[i] = Vertex{Pos: pos, UV: v.UV, Color: color}
		meshMin = meshMin.Min(pos)
		meshMax = meshMax.Max(pos)
	}

	indices := make([]uint32, len(prim.Mesh.Indices))
	copy(indices, prim.Mesh.Indices)

	for i := 0; i+2 < len(indices); i += 3 {
		v0 := vertices[indices[i]]
		v1 := vertices[indices[i+1]]
		v2 := vertices[indices[i+2]]
		if mathx.Orient2D(v0.Pos, v1.Pos, v2.Pos) < 0 {
			indices[i+1], indices[i+2] = indices[i+2], indices[i+1]
		}
	}

	return Prepared{
		ClipRect: clipRect,
		MeshMin:  meshMin,
		MeshMax:  meshMax,
		Mesh:     Mesh{TextureID: prim.Mesh.TextureID, Indices: indices, Vertices: vertices},
	}, true
}

const float32MaxValue = 3.40282346638528859811704183484516925440e+38

// SubpixBitsFor chooses the triangle rasterizer's fixed-point precision:
// 2 fractional bits once the mesh bounding box exceeds 4096 on either axis
// (to avoid overflow), 8 otherwise (spec §4.2/§4.5).
func SubpixBitsFor(meshMin, meshMax mathx.Vec2) int32 {
	size := meshMax.Sub(meshMin)
	if size.X > 4096 || size.Y > 4096 {
		return 2
	}
	return 8
}

// Oversize reports whether the mesh's pixel-space bounds exceed the 8192
// guard (spec §4.5/§9: preserved verbatim as a "transient startup anomaly"
// guard, logged and skipped rather than allocating a giant buffer).
func Oversize(meshMin, meshMax mathx.Vec2) bool {
	size := meshMax.Sub(meshMin)
	return size.X > 8192 || size.Y > 8192
}
