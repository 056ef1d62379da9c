package tile

import "github.com/Speedy37/egui-software-backend/internal/blend"

const (
	// DirtyMask marks a tile as having at least one occupying primitive
	// appear, change, or disappear this frame.
	DirtyMask byte = 0b1
	// OccupiedMask marks a tile as touched by some primitive's non-zero
	// pixel.
	OccupiedMask byte = 0b10
)

// Coord addresses one cell of the tile grid.
type Coord struct {
	X, Y uint16
}

// Grid is the per-tile two-flag occupancy/dirty bitmap covering a buffer
// of TilesX*Size by TilesY*Size pixels (spec §3 "Tile grid").
type Grid struct {
	TilesX, TilesY uint32
	Flags          []byte
}

// NewGrid builds a grid sized to cover a width x height buffer.
func NewGrid(width, height uint32) *Grid {
	tilesX := ceilDiv(width, Size)
	tilesY := ceilDiv(height, Size)
	return &Grid{TilesX: tilesX, TilesY: tilesY, Flags: make([]byte, tilesX*tilesY)}
}

func (g *Grid) index(x, y uint32) uint32 { return y*g.TilesX + x }

// ClearDirty drops the DirtyMask bit from every tile without touching
// OccupiedMask.
func (g *Grid) ClearDirty() {
	for i := range g.Flags {
		g.Flags[i] &^= DirtyMask
	}
}

// ClearAll zeroes every tile's flags (used on resize/full clear).
func (g *Grid) ClearAll() {
	for i := range g.Flags {
		g.Flags[i] = 0
	}
}

// MarkDirty sets DirtyMask on tile (x,y).
func (g *Grid) MarkDirty(x, y uint32) {
	if x < g.TilesX && y < g.TilesY {
		g.Flags[g.index(x, y)] |= DirtyMask
	}
}

// SetOccupied sets OccupiedMask on tile (x,y).
func (g *Grid) SetOccupied(x, y uint32) {
	if x < g.TilesX && y < g.TilesY {
		g.Flags[g.index(x, y)] |= OccupiedMask
	}
}

// IsDirty reports whether tile (x,y) carries DirtyMask.
func (g *Grid) IsDirty(x, y uint32) bool {
	return g.Flags[g.index(x, y)]&DirtyMask != 0
}

// ComputeOccupiedTiles walks the tiles intersecting rect and, for each,
// scans the bitmap slab it covers for any non-zero 32-bit pixel — both
// color and alpha participate (spec §4.6 "Occupancy tiles"). bitmap is the
// entry's own cropped-to-rect pixel buffer, sized rect.Width() x
// rect.Height().
func ComputeOccupiedTiles(bitmap []blend.Pixel, rect Rect) []Coord {
	width := rect.Width()
	var coords []Coord

	tileMinX := rect.MinX / Size
	tileMinY := rect.MinY / Size
	tileMaxX := ceilDiv(rect.MaxX, Size)
	tileMaxY := ceilDiv(rect.MaxY, Size)

	for ty := tileMinY; ty < tileMaxY; ty++ {
		tileY0 := maxU32(ty*Size, rect.MinY)
		tileY1 := minU32((ty+1)*Size, rect.MaxY)
		for tx := tileMinX; tx < tileMaxX; tx++ {
			tileX0 := maxU32(tx*Size, rect.MinX)
			tileX1 := minU32((tx+1)*Size, rect.MaxX)

			if tileHasNonZeroPixel(bitmap, width, rect.MinX, rect.MinY, tileX0, tileY0, tileX1, tileY1) {
				coords = append(coords, Coord{X: uint16(tx), Y: uint16(ty)})
			}
		}
	}
	return coords
}

func tileHasNonZeroPixel(bitmap []blend.Pixel, bitmapWidth, originX, originY, x0, y0, x1, y1 uint32) bool {
	for y := y0; y < y1; y++ {
		rowStart := (y - originY) * bitmapWidth
		for x := x0; x < x1; x++ {
			if bitmap[rowStart+(x-originX)] != (blend.Pixel{}) {
				return true
			}
		}
	}
	return false
}
