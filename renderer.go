// Package swrender rasterizes an immediate-mode UI's tessellated draw list
// into a 32-bit-per-pixel color buffer: triangle/rectangle fills with
// bilinear sampling and premultiplied blending, a per-primitive content-hash
// cache, and tiled dirty-rect tracking so repeated frames recomposite only
// what changed.
package swrender

import (
	"log/slog"
	"sort"

	"github.com/Speedy37/egui-software-backend/internal/blend"
	"github.com/Speedy37/egui-software-backend/internal/mathx"
	"github.com/Speedy37/egui-software-backend/internal/parallel"
	"github.com/Speedy37/egui-software-backend/internal/surface"
	"github.com/Speedy37/egui-software-backend/prepare"
	"github.com/Speedy37/egui-software-backend/raster"
	"github.com/Speedy37/egui-software-backend/texture"
	"github.com/Speedy37/egui-software-backend/tile"
)

// directSplat and cachedSplat are the empirical clip-rect padding constants
// (spec §4.5/§9), added to the clip rect's max corner after it is scaled
// by pixels-per-point: 1.5 pixels when rasterizing straight into the
// output buffer, 0.5 when a cache entry's own cropped bitmap absorbs the
// rounding.
const (
	directSplat = 1.5
	cachedSplat = 0.5
)

// Renderer rasterizes clipped primitives into a caller-owned frame buffer,
// optionally caching per-primitive work across frames (spec §6).
type Renderer struct {
	opts     rendererOptions
	textures *texture.Store
	pool     *parallel.WorkerPool
	kernel   blend.Kernel

	cachedWidth, cachedHeight int32

	meshCache  map[uint32]*meshCacheEntry
	tiledCache map[uint32]*tiledCacheEntry

	canvas *surface.Buffer
	grid   *tile.Grid
	decomp *tile.Decomposer
}

// New constructs a Renderer. The default caching mode is Direct; pass
// WithCaching to select Mesh, MeshTiled, or BlendTiled.
func New(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := Logger()
	return &Renderer{
		opts:       o,
		textures:   texture.NewStore(o.fieldOrder, logger),
		pool:       parallel.NewWorkerPool(o.workers),
		kernel:     blend.NewDispatcher().Kernel(),
		meshCache:  make(map[uint32]*meshCacheEntry),
		tiledCache: make(map[uint32]*tiledCacheEntry),
	}
}

// CachedSize returns the last rendered buffer size, or (0,0) before the
// first frame.
func (r *Renderer) CachedSize() (width, height int32) {
	return r.cachedWidth, r.cachedHeight
}

// Caching returns the renderer's current caching mode.
func (r *Renderer) Caching() CachingMode {
	return r.opts.caching
}

// SetCaching changes the caching mode, clearing the cache if it differs
// from the current mode.
func (r *Renderer) SetCaching(mode CachingMode) {
	if mode == r.opts.caching {
		return
	}
	r.opts.caching = mode
	r.ClearCache()
}

// ClearCache drops every cached entry and the persistent canvas/tile grid.
func (r *Renderer) ClearCache() {
	r.meshCache = make(map[uint32]*meshCacheEntry)
	r.tiledCache = make(map[uint32]*tiledCacheEntry)
	r.canvas = nil
	r.grid = nil
}

// Close stops the renderer's worker pool. The Renderer must not be used
// afterward.
func (r *Renderer) Close() {
	r.pool.Close()
}

// Texture exposes the renderer's texture store so callers can query a
// texture outside of Render (e.g. for diagnostics).
func (r *Renderer) Texture(id TextureID) *texture.Texture {
	return r.textures.Get(id)
}

// Render rasterizes primitives into buf and returns the dirty rect (spec
// §6). buf's dimensions and pixelsPerPoint must be positive; buf's size
// must equal the renderer's cached size unless fullRedraw is set. The
// cached size is (0,0) before the first frame, so the first call needs
// fullRedraw.
func (r *Renderer) Render(buf *surface.Buffer, fullRedraw bool, primitives []Primitive, delta TexturesDelta, pixelsPerPoint float32) DirtyRect {
	logger := Logger()
	if buf.Width <= 0 || buf.Height <= 0 {
		logger.Error("render: buffer dimensions must be positive", "width", buf.Width, "height", buf.Height)
		panic("swrender: buffer dimensions must be positive")
	}
	if pixelsPerPoint <= 0 {
		logger.Error("render: pixelsPerPoint must be positive", "pixelsPerPoint", pixelsPerPoint)
		panic("swrender: pixelsPerPoint must be positive")
	}
	resized := buf.Width != r.cachedWidth || buf.Height != r.cachedHeight
	if resized && !fullRedraw {
		logger.Error("render: buffer size changed without full_redraw", "width", buf.Width, "height", buf.Height)
		panic("swrender: buffer size changed without full_redraw")
	}

	forceFullRedraw := fullRedraw || resized
	if forceFullRedraw {
		r.ClearCache()
		r.cachedWidth, r.cachedHeight = buf.Width, buf.Height
	}

	switch r.opts.caching {
	case Mesh, MeshTiled:
		return r.renderMesh(logger, buf, forceFullRedraw, primitives, delta, pixelsPerPoint)
	case BlendTiled:
		return r.renderBlendTiled(logger, buf, forceFullRedraw, primitives, delta, pixelsPerPoint)
	default:
		return r.renderDirect(logger, buf, primitives, delta, pixelsPerPoint)
	}
}

// RenderToCanvas is the canvas-owning convenience variant (spec §6): it
// allocates/reuses its own output buffer sized width x height, detects
// size changes itself, and returns the refreshed buffer alongside the
// dirty rect.
func (r *Renderer) RenderToCanvas(buf *surface.Buffer, width, height int32, primitives []Primitive, delta TexturesDelta, pixelsPerPoint float32) (*surface.Buffer, DirtyRect) {
	fullRedraw := buf == nil || buf.Width != width || buf.Height != height
	if buf == nil {
		buf = surface.NewBuffer(width, height)
	} else if fullRedraw {
		buf.Resize(width, height)
	}
	dirty := r.Render(buf, fullRedraw, primitives, delta, pixelsPerPoint)
	return buf, dirty
}

func (r *Renderer) applyTextureSet(logger *slog.Logger, delta TexturesDelta) {
	for _, set := range delta.Set {
		r.textures.Set(set.ID, set.Patch)
	}
}

func (r *Renderer) applyTextureFree(delta TexturesDelta) {
	for _, id := range delta.Free {
		r.textures.Free(id)
	}
}

// renderDirect rasterizes every primitive straight into buf with no
// cross-frame caching (spec §4.6 Direct). The dirty rect is always the
// full buffer.
func (r *Renderer) renderDirect(logger *slog.Logger, buf *surface.Buffer, primitives []Primitive, delta TexturesDelta, ppp float32) DirtyRect {
	r.applyTextureSet(logger, delta)
	buf.Clear()

	for _, prim := range primitives {
		prepared, ok := prepare.PixelMesh(logger, r.opts.fieldOrder, directSplat, ppp, prim)
		if !ok {
			continue
		}
		if prepare.Oversize(prepared.MeshMin, prepared.MeshMax) {
			logger.Warn("mesh exceeds oversize guard, skipping primitive")
			continue
		}
		tex := r.textures.Get(prepared.Mesh.TextureID)
		if tex == nil {
			logger.Warn("primitive references unknown texture, skipping", "texture", prepared.Mesh.TextureID)
			continue
		}
		subPixBits := prepare.SubpixBitsFor(prepared.MeshMin, prepared.MeshMax)
		raster.DrawMesh(buf, tex, prepared.ClipRect, &prepared.Mesh, mathx.Vec2{}, subPixBits,
			r.opts.allowRasterOpt, r.opts.convertTrisToRects, r.kernel)
	}

	r.applyTextureFree(delta)
	return DirtyRect{MinX: 0, MinY: 0, MaxX: uint32(buf.Width), MaxY: uint32(buf.Height)}
}

type meshPrepResult struct {
	hash     uint32
	prepared prepare.Prepared
	rect     tile.Rect
	ok       bool
}

// prepareAndHash runs mesh preparation and hashing for every primitive in
// parallel across the renderer's worker pool (spec §5: per-primitive units
// read only the shared texture store and write only their own result cell).
func (r *Renderer) prepareAndHash(logger *slog.Logger, primitives []Primitive, bufW, bufH int32, ppp float32) []meshPrepResult {
	results := make([]meshPrepResult, len(primitives))
	work := make([]func(), len(primitives))
	for idx := range primitives {
		idx := idx
		prim := primitives[idx]
		work[idx] = func() {
			prepared, ok := prepare.PixelMesh(logger, r.opts.fieldOrder, cachedSplat, ppp, prim)
			if !ok {
				return
			}
			if prepare.Oversize(prepared.MeshMin, prepared.MeshMax) {
				logger.Warn("mesh exceeds oversize guard, skipping primitive")
				return
			}
			rect := croppedRect(prepared.ClipRect, prepared.MeshMin, prepared.MeshMax, bufW, bufH)
			if rect.IsEmpty() {
				return
			}
			hash := hashPrimitive(rect, prepared.Mesh.TextureID, &prepared.Mesh)
			results[idx] = meshPrepResult{hash: hash, prepared: prepared, rect: rect, ok: true}
		}
	}
	r.pool.ExecuteAll(work)
	return results
}

// renderMesh implements the Mesh and MeshTiled caching modes (spec §4.6):
// cache prepared meshes by hash, recompute the changed-region bboxes, and
// re-rasterize only cached meshes intersecting those bboxes.
func (r *Renderer) renderMesh(logger *slog.Logger, buf *surface.Buffer, forceFullRedraw bool, primitives []Primitive, delta TexturesDelta, ppp float32) DirtyRect {
	for _, e := range r.meshCache {
		e.seenThisFrame = false
	}
	r.applyTextureSet(logger, delta)

	results := r.prepareAndHash(logger, primitives, buf.Width, buf.Height, ppp)

	var changed []tile.Rect
	for idx, res := range results {
		if !res.ok {
			continue
		}
		entry, hit := r.meshCache[res.hash]
		if hit {
			entry.rect = res.rect
			entry.zOrder = idx
			entry.seenThisFrame = true
			entry.renderedThisFrame = false
			continue
		}
		r.meshCache[res.hash] = &meshCacheEntry{
			rect: res.rect, zOrder: idx, seenThisFrame: true, renderedThisFrame: true, prepared: res.prepared,
		}
		changed = append(changed, res.rect)
	}

	for h, e := range r.meshCache {
		if !e.seenThisFrame {
			changed = append(changed, e.rect)
			delete(r.meshCache, h)
		}
	}

	r.applyTextureFree(delta)

	if forceFullRedraw {
		buf.Clear()
		full := tile.Rect{MinX: 0, MinY: 0, MaxX: uint32(buf.Width), MaxY: uint32(buf.Height)}
		changed = []tile.Rect{full}
	}

	if len(changed) == 0 {
		return DirtyRect{}
	}

	var dirtyBBoxes []tile.Rect
	if r.opts.caching == MeshTiled {
		if r.decomp == nil {
			r.decomp = tile.NewDecomposer()
		}
		tiled := make([]tile.Rect, len(changed))
		for i, rc := range changed {
			tiled[i] = rc.Tiled()
		}
		r.decomp.SetBoxes(tiled)
		dirtyBBoxes = r.decomp.Result()
	} else {
		union := changed[0]
		for _, rc := range changed[1:] {
			union = union.Union(rc)
		}
		dirtyBBoxes = []tile.Rect{union}
	}

	entries := make([]*meshCacheEntry, 0, len(r.meshCache))
	for _, e := range r.meshCache {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].zOrder < entries[j].zOrder })

	result := DirtyRect{}
	for i, bbox := range dirtyBBoxes {
		bbox.MaxX = minU32(bbox.MaxX, uint32(buf.Width))
		bbox.MaxY = minU32(bbox.MaxY, uint32(buf.Height))
		buf.ClearRect(int32(bbox.MinX), int32(bbox.MinY), int32(bbox.MaxX), int32(bbox.MaxY))
		for _, e := range entries {
			if !rectsOverlap2D(e.rect, bbox) {
				continue
			}
			tex := r.textures.Get(e.prepared.Mesh.TextureID)
			if tex == nil {
				continue
			}
			clip := clampRectF(e.prepared.ClipRect, bbox)
			subPixBits := prepare.SubpixBitsFor(e.prepared.MeshMin, e.prepared.MeshMax)
			raster.DrawMesh(buf, tex, clip, &e.prepared.Mesh, mathx.Vec2{}, subPixBits,
				r.opts.allowRasterOpt, r.opts.convertTrisToRects, r.kernel)
		}
		if i == 0 {
			result = bbox
		} else {
			result = result.Union(bbox)
		}
	}
	return result
}

// renderBlendTiled implements the BlendTiled caching mode (spec §4.6):
// cache per-primitive bitmaps, composite changed tiles into a persistent
// canvas, then copy the canvas into buf over every dirty or currently
// occupied tile. The copy overwrites buf's pixels in those tiles; the
// canvas is not blended over buf's previous content.
func (r *Renderer) renderBlendTiled(logger *slog.Logger, buf *surface.Buffer, forceFullRedraw bool, primitives []Primitive, delta TexturesDelta, ppp float32) DirtyRect {
	if r.canvas == nil {
		r.canvas = surface.NewBuffer(buf.Width, buf.Height)
		r.grid = tile.NewGrid(uint32(buf.Width), uint32(buf.Height))
		forceFullRedraw = true
	}

	for _, e := range r.tiledCache {
		e.seenThisFrame = false
	}
	r.applyTextureSet(logger, delta)

	results := r.prepareAndHash(logger, primitives, buf.Width, buf.Height, ppp)

	for idx, res := range results {
		if !res.ok {
			continue
		}
		if entry, hit := r.tiledCache[res.hash]; hit {
			entry.rect = res.rect
			entry.zOrder = idx
			entry.seenThisFrame = true
			entry.renderedThisFrame = false
			continue
		}
		tex := r.textures.Get(res.prepared.Mesh.TextureID)
		if tex == nil {
			continue
		}
		bmp := surface.NewBuffer(int32(res.rect.Width()), int32(res.rect.Height()))
		offset := mathx.Vec2{X: -float32(res.rect.MinX), Y: -float32(res.rect.MinY)}
		clip := mathx.Rect{Min: mathx.Vec2{}, Max: mathx.Vec2{X: float32(res.rect.Width()), Y: float32(res.rect.Height())}}
		subPixBits := prepare.SubpixBitsFor(res.prepared.MeshMin, res.prepared.MeshMax)
		raster.DrawMesh(bmp, tex, clip, &res.prepared.Mesh, offset, subPixBits,
			r.opts.allowRasterOpt, r.opts.convertTrisToRects, r.kernel)
		occ := tile.ComputeOccupiedTiles(bmp.Data, res.rect)
		r.tiledCache[res.hash] = &tiledCacheEntry{
			rect: res.rect, zOrder: idx, seenThisFrame: true, renderedThisFrame: true, bitmap: bmp, occupiedTiles: occ,
		}
	}

	r.grid.ClearDirty()
	for h, e := range r.tiledCache {
		if !e.seenThisFrame {
			markTilesDirty(r.grid, e.occupiedTiles)
			delete(r.tiledCache, h)
		} else if e.renderedThisFrame {
			markTilesDirty(r.grid, e.occupiedTiles)
		}
	}

	r.applyTextureFree(delta)

	if forceFullRedraw {
		r.canvas.Clear()
		for y := uint32(0); y < r.grid.TilesY; y++ {
			for x := uint32(0); x < r.grid.TilesX; x++ {
				r.grid.MarkDirty(x, y)
			}
		}
	}

	entries := make([]*tiledCacheEntry, 0, len(r.tiledCache))
	for _, e := range r.tiledCache {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].zOrder < entries[j].zOrder })

	occupiedBy := make(map[tile.Coord][]*tiledCacheEntry)
	for _, e := range entries {
		for _, c := range e.occupiedTiles {
			occupiedBy[c] = append(occupiedBy[c], e)
			r.grid.SetOccupied(uint32(c.X), uint32(c.Y))
		}
	}

	result := DirtyRect{}
	dirtyAny := false
	for y := uint32(0); y < r.grid.TilesY; y++ {
		for x := uint32(0); x < r.grid.TilesX; x++ {
			if !r.grid.IsDirty(x, y) {
				continue
			}
			tileRect := tile.Rect{
				MinX: x * tile.Size, MinY: y * tile.Size,
				MaxX: minU32((x+1)*tile.Size, uint32(r.canvas.Width)),
				MaxY: minU32((y+1)*tile.Size, uint32(r.canvas.Height)),
			}
			r.canvas.ClearRect(int32(tileRect.MinX), int32(tileRect.MinY), int32(tileRect.MaxX), int32(tileRect.MaxY))
			for _, e := range occupiedBy[tile.Coord{X: uint16(x), Y: uint16(y)}] {
				blitEntryIntoTile(r.canvas, e, tileRect, r.kernel)
			}
			buf.CopyRect(r.canvas, int32(tileRect.MinX), int32(tileRect.MinY), int32(tileRect.MaxX), int32(tileRect.MaxY))
			if !dirtyAny {
				result = tileRect
				dirtyAny = true
			} else {
				result = result.Union(tileRect)
			}
		}
	}

	// Tiles an entry occupies but that were not repainted this frame (no
	// append/change/eviction touched them) still need their steady-state
	// canvas content mirrored into buf, since buf may be a fresh or
	// caller-cleared allocation.
	for c := range occupiedBy {
		x, y := uint32(c.X), uint32(c.Y)
		if r.grid.IsDirty(x, y) {
			continue
		}
		tileRect := tile.Rect{
			MinX: x * tile.Size, MinY: y * tile.Size,
			MaxX: minU32((x+1)*tile.Size, uint32(buf.Width)),
			MaxY: minU32((y+1)*tile.Size, uint32(buf.Height)),
		}
		buf.CopyRect(r.canvas, int32(tileRect.MinX), int32(tileRect.MinY), int32(tileRect.MaxX), int32(tileRect.MaxY))
	}

	return result
}

func markTilesDirty(g *tile.Grid, coords []tile.Coord) {
	for _, c := range coords {
		g.MarkDirty(uint32(c.X), uint32(c.Y))
	}
}

func blitEntryIntoTile(canvas *surface.Buffer, e *tiledCacheEntry, tileRect tile.Rect, kernel blend.Kernel) {
	minX := maxU32(tileRect.MinX, e.rect.MinX)
	minY := maxU32(tileRect.MinY, e.rect.MinY)
	maxX := minU32(tileRect.MaxX, e.rect.MaxX)
	maxY := minU32(tileRect.MaxY, e.rect.MaxY)
	if minX >= maxX || minY >= maxY {
		return
	}
	bmpW := e.rect.Width()
	for y := minY; y < maxY; y++ {
		rowOff := (y - e.rect.MinY) * bmpW
		src := e.bitmap.Data[rowOff+(minX-e.rect.MinX) : rowOff+(maxX-e.rect.MinX)]
		dst := canvas.Row(int32(y))[minX:maxX]
		kernel.BlendSlice(src, dst)
	}
}

// rectsOverlap2D is a full two-axis overlap test, unlike tile.Rect.Intersects
// (which only checks the X axis).
func rectsOverlap2D(a, b tile.Rect) bool {
	return a.MinX < b.MaxX && a.MaxX > b.MinX && a.MinY < b.MaxY && a.MaxY > b.MinY
}

// clampRectF clips a pixel-space float clip rect to an integer tile bbox.
func clampRectF(clip mathx.Rect, bbox tile.Rect) mathx.Rect {
	return mathx.Rect{
		Min: mathx.Vec2{X: maxF32(clip.Min.X, float32(bbox.MinX)), Y: maxF32(clip.Min.Y, float32(bbox.MinY))},
		Max: mathx.Vec2{X: minF32(clip.Max.X, float32(bbox.MaxX)), Y: minF32(clip.Max.Y, float32(bbox.MaxY))},
	}
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
