package swrender

import (
	"github.com/Speedy37/egui-software-backend/internal/surface"
	"github.com/Speedy37/egui-software-backend/prepare"
	"github.com/Speedy37/egui-software-backend/tile"
)

// meshCacheEntry is a Mesh/MeshTiled cache record: the prepared mesh plus
// its screen rect and frame bookkeeping (spec §3 "CacheEntry (mesh
// variant)").
type meshCacheEntry struct {
	rect              tile.Rect
	zOrder            int
	seenThisFrame     bool
	renderedThisFrame bool
	prepared          prepare.Prepared
}

// tiledCacheEntry is a BlendTiled cache record: a rasterized bitmap sized
// exactly to the cropped rect, plus the tiles it occupies (spec §3
// "CacheEntry (tiled bitmap variant)").
type tiledCacheEntry struct {
	rect              tile.Rect
	zOrder            int
	seenThisFrame     bool
	renderedThisFrame bool
	bitmap            *surface.Buffer
	occupiedTiles     []tile.Coord
}
