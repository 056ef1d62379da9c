package swrender

import (
	"github.com/Speedy37/egui-software-backend/prepare"
	"github.com/Speedy37/egui-software-backend/texture"
	"github.com/Speedy37/egui-software-backend/tile"
)

// TextureID identifies a texture, either toolkit-managed or user-tagged.
type TextureID = texture.ID

// ManagedTextureID builds a toolkit-managed texture ID.
func ManagedTextureID(id uint64) TextureID { return texture.Managed(id) }

// UserTextureID builds a user-tagged texture ID.
func UserTextureID(id uint64) TextureID { return texture.User(id) }

// ImagePatch describes a texture creation or sub-rectangle patch.
type ImagePatch = texture.ImagePatch

// Filter is a texture sampling mode.
type Filter = texture.Filter

const (
	FilterNearest = texture.FilterNearest
	FilterLinear  = texture.FilterLinear
)

// FilterOptions carries a texture's requested magnification/minification
// filters.
type FilterOptions = texture.FilterOptions

// FieldOrder selects the output buffer's channel order.
type FieldOrder = texture.FieldOrder

const (
	RGBA = texture.RGBA
	BGRA = texture.BGRA
)

// Vertex is a single mesh vertex, in the toolkit's logical units.
type Vertex = prepare.Vertex

// MeshData is a toolkit-supplied triangle mesh. (The name Mesh belongs to
// the CachingMode constant.)
type MeshData = prepare.Mesh

// Primitive is a clipped mesh, or an unsupported callback (spec §6/§7).
type Primitive = prepare.Primitive

// DirtyRect is the smallest integer rect containing all changed pixels.
type DirtyRect = tile.Rect

// TextureSet pairs a texture ID with the creation/patch it should receive.
type TextureSet struct {
	ID    TextureID
	Patch ImagePatch
}

// TexturesDelta describes the textures created, patched, or freed this
// frame (spec §6).
type TexturesDelta struct {
	Set  []TextureSet
	Free []TextureID
}
