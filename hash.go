package swrender

import (
	"math"

	"github.com/Speedy37/egui-software-backend/internal/fnvhash"
	"github.com/Speedy37/egui-software-backend/internal/mathx"
	"github.com/Speedy37/egui-software-backend/prepare"
	"github.com/Speedy37/egui-software-backend/texture"
	"github.com/Speedy37/egui-software-backend/tile"
)

// hashPrimitive computes the cache key for a prepared primitive: the
// cropped rect size, the texture ID, then every vertex's position/uv/color,
// then the index count (spec §4.4). Order-sensitive by construction, so a
// changed vertex order produces a different hash even with identical
// vertex data.
func hashPrimitive(croppedRect tile.Rect, texID texture.ID, mesh *prepare.Mesh) uint32 {
	h := fnvhash.NewHash32()

	h.Hash(math.Float32bits(float32(croppedRect.Width())))
	h.Hash(math.Float32bits(float32(croppedRect.Height())))
	h.FNVWrap()

	h.Hash(texID.Encoded())
	h.FNVWrap()

	vertices := mesh.Vertices
	for _, i := range mesh.Indices {
		v := vertices[i]
		h.Hash(math.Float32bits(v.Pos.X))
		h.Hash(math.Float32bits(v.Pos.Y))
		h.Hash(math.Float32bits(v.UV.X))
		h.Hash(math.Float32bits(v.UV.Y))
		h.Hash(colorBits(v.Color))
		h.FNVWrap()
	}

	h.Hash(uint32(len(mesh.Indices)))
	h.FNVWrap()

	return h.Finalize()
}

func colorBits(c [4]uint8) uint32 {
	return uint32(c[0]) | uint32(c[1])<<8 | uint32(c[2])<<16 | uint32(c[3])<<24
}

// croppedRect intersects a prepared primitive's tight mesh bbox with its
// clip rect (cropped_min = mesh_min.max(clip_rect.min), cropped_max =
// mesh_max.min(clip_rect.max)), then clamps to the output buffer, rounding
// with the same pixel-center rule the rasterizer clips against (spec §4.6
// "cropped_min/cropped_max"). Cropping to the mesh bbox, not just the clip
// rect, matters because egui typically clips to a widget's enclosing rect,
// usually larger than the primitive's own geometry.
func croppedRect(clipRect mathx.Rect, meshMin, meshMax mathx.Vec2, bufW, bufH int32) tile.Rect {
	croppedMin := meshMin.Max(clipRect.Min)
	croppedMax := meshMax.Min(clipRect.Max)

	minX := mathx.ClampI64(mathx.PixelCenterRound(croppedMin.X), 0, int64(bufW))
	minY := mathx.ClampI64(mathx.PixelCenterRound(croppedMin.Y), 0, int64(bufH))
	maxX := mathx.ClampI64(mathx.PixelCenterRound(croppedMax.X), 0, int64(bufW))
	maxY := mathx.ClampI64(mathx.PixelCenterRound(croppedMax.Y), 0, int64(bufH))
	if maxX < minX {
		maxX = minX
	}
	if maxY < minY {
		maxY = minY
	}
	return tile.Rect{MinX: uint32(minX), MinY: uint32(minY), MaxX: uint32(maxX), MaxY: uint32(maxY)}
}
