package swrender

import (
	"testing"

	"github.com/Speedy37/egui-software-backend/internal/blend"
	"github.com/Speedy37/egui-software-backend/internal/mathx"
	"github.com/Speedy37/egui-software-backend/prepare"
	"github.com/Speedy37/egui-software-backend/texture"
	"github.com/Speedy37/egui-software-backend/tile"
)

var whiteTextureID = ManagedTextureID(0)

func whiteTextureDelta() TexturesDelta {
	return TexturesDelta{
		Set: []TextureSet{{
			ID: whiteTextureID,
			Patch: texture.ImagePatch{
				Size:   [2]uint32{1, 1},
				Pixels: []blend.Pixel{{255, 255, 255, 255}},
			},
		}},
	}
}

// quadPrimitive builds a 2-triangle axis-aligned quad covering
// [minX,maxX)x[minY,maxY) in logical units, with a single solid vertex
// color, sampling the 1x1 white texture.
func quadPrimitive(minX, minY, maxX, maxY float32, color blend.Pixel) Primitive {
	verts := []Vertex{
		{Pos: mathx.Vec2{X: minX, Y: minY}, UV: mathx.Vec2{X: 0.5, Y: 0.5}, Color: color},
		{Pos: mathx.Vec2{X: maxX, Y: minY}, UV: mathx.Vec2{X: 0.5, Y: 0.5}, Color: color},
		{Pos: mathx.Vec2{X: maxX, Y: maxY}, UV: mathx.Vec2{X: 0.5, Y: 0.5}, Color: color},
		{Pos: mathx.Vec2{X: minX, Y: maxY}, UV: mathx.Vec2{X: 0.5, Y: 0.5}, Color: color},
	}
	return Primitive{
		ClipRect: mathx.Rect{Min: mathx.Vec2{X: minX, Y: minY}, Max: mathx.Vec2{X: maxX, Y: maxY}},
		Mesh: &prepare.Mesh{
			TextureID: whiteTextureID,
			Indices:   []uint32{0, 1, 2, 0, 2, 3},
			Vertices:  verts,
		},
	}
}

func allPixels(buf *FrameBuffer) []blend.Pixel {
	return buf.Data
}

// S1: a 4x4 frame fully covered by an opaque red quad renders solid red
// with a full-frame dirty rect.
func TestScenarioS1FullCoverOpaqueQuad(t *testing.T) {
	r := New()
	buf := NewFrameBuffer(4, 4)

	dirty := r.Render(buf, true, []Primitive{quadPrimitive(0, 0, 4, 4, blend.Pixel{255, 0, 0, 255})}, whiteTextureDelta(), 1.0)

	want := DirtyRect{MinX: 0, MinY: 0, MaxX: 4, MaxY: 4}
	if dirty != want {
		t.Errorf("dirty rect = %v, want %v", dirty, want)
	}
	for i, p := range allPixels(buf) {
		if p != (blend.Pixel{255, 0, 0, 255}) {
			t.Fatalf("pixel %d = %v, want opaque red", i, p)
		}
	}
}

// S2: rendering the same frame twice under MeshTiled reports an empty
// dirty rect on the second frame and leaves the buffer unchanged.
func TestScenarioS2RepeatedFrameIsDirtyRectEmpty(t *testing.T) {
	r := New(WithCaching(MeshTiled))
	buf := NewFrameBuffer(8, 8)
	prim := quadPrimitive(0, 0, 4, 8, blend.Pixel{255, 0, 0, 255})

	r.Render(buf, true, []Primitive{prim}, whiteTextureDelta(), 1.0)
	before := append([]blend.Pixel(nil), allPixels(buf)...)

	dirty := r.Render(buf, false, []Primitive{prim}, TexturesDelta{}, 1.0)

	if !dirty.IsEmpty() {
		t.Errorf("second identical frame dirty rect = %v, want empty", dirty)
	}
	for i, p := range allPixels(buf) {
		if p != before[i] {
			t.Fatalf("pixel %d changed from %v to %v on an unchanged frame", i, before[i], p)
		}
	}
}

// S3: a quad with differing vertex colors at its left/right edges produces
// a left-to-right color gradient once premultiplied-blended over a cleared
// (transparent) canvas.
func TestScenarioS3VertexColorGradient(t *testing.T) {
	r := New()
	buf := NewFrameBuffer(16, 16)

	left := blend.Pixel{255, 0, 0, 128}
	right := blend.Pixel{0, 255, 0, 128}
	verts := []Vertex{
		{Pos: mathx.Vec2{X: 0, Y: 0}, UV: mathx.Vec2{X: 0.5, Y: 0.5}, Color: left},
		{Pos: mathx.Vec2{X: 16, Y: 0}, UV: mathx.Vec2{X: 0.5, Y: 0.5}, Color: right},
		{Pos: mathx.Vec2{X: 16, Y: 16}, UV: mathx.Vec2{X: 0.5, Y: 0.5}, Color: right},
		{Pos: mathx.Vec2{X: 0, Y: 16}, UV: mathx.Vec2{X: 0.5, Y: 0.5}, Color: left},
	}
	prim := Primitive{
		ClipRect: mathx.Rect{Min: mathx.Vec2{}, Max: mathx.Vec2{X: 16, Y: 16}},
		Mesh: &prepare.Mesh{
			TextureID: whiteTextureID,
			Indices:   []uint32{0, 1, 2, 0, 2, 3},
			Vertices:  verts,
		},
	}

	r.Render(buf, true, []Primitive{prim}, whiteTextureDelta(), 1.0)

	row := buf.Row(8)
	leftPixel := row[0]
	rightPixel := row[15]
	if leftPixel[0] <= rightPixel[0] {
		t.Errorf("expected red channel to decrease left-to-right: left=%v right=%v", leftPixel, rightPixel)
	}
	if leftPixel[1] >= rightPixel[1] {
		t.Errorf("expected green channel to increase left-to-right: left=%v right=%v", leftPixel, rightPixel)
	}
}

// S5: a callback primitive is logged and dropped without panicking or
// altering the buffer.
func TestScenarioS5CallbackPrimitiveDropped(t *testing.T) {
	r := New()
	buf := NewFrameBuffer(8, 8)

	dirty := r.Render(buf, true, []Primitive{{Callback: true}}, TexturesDelta{}, 1.0)

	if dirty.MaxX != 8 || dirty.MaxY != 8 {
		t.Errorf("dirty rect = %v, want full 8x8 frame (direct mode always redraws)", dirty)
	}
	for i, p := range allPixels(buf) {
		if p != (blend.Pixel{}) {
			t.Fatalf("pixel %d = %v, want transparent (callback dropped, nothing drawn)", i, p)
		}
	}
}

// Property 4 (cache correctness): rendering [A,B,A] under BlendTiled
// produces the same final buffer as rendering the same sequence under
// Direct.
func TestCacheCorrectnessBlendTiledMatchesDirect(t *testing.T) {
	a := quadPrimitive(0, 0, 32, 32, blend.Pixel{255, 0, 0, 255})
	b := quadPrimitive(32, 32, 96, 96, blend.Pixel{0, 255, 0, 255})

	direct := New(WithCaching(Direct))
	directBuf := NewFrameBuffer(128, 128)
	for _, prims := range [][]Primitive{{a}, {b}, {a}} {
		direct.Render(directBuf, true, prims, whiteTextureDelta(), 1.0)
	}

	tiled := New(WithCaching(BlendTiled))
	tiledBuf := NewFrameBuffer(128, 128)
	for i, prims := range [][]Primitive{{a}, {b}, {a}} {
		full := i == 0
		tiled.Render(tiledBuf, full, prims, whiteTextureDelta(), 1.0)
	}

	for i := range directBuf.Data {
		if directBuf.Data[i] != tiledBuf.Data[i] {
			t.Fatalf("pixel %d differs: direct=%v blend-tiled=%v", i, directBuf.Data[i], tiledBuf.Data[i])
		}
	}
}

func TestRenderPanicsOnNonPositiveDimensions(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for zero-size buffer")
		}
	}()
	r := New()
	buf := &FrameBuffer{Width: 0, Height: 4}
	r.Render(buf, true, nil, TexturesDelta{}, 1.0)
}

func TestRenderPanicsOnNonPositivePixelsPerPoint(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive pixels-per-point")
		}
	}()
	r := New()
	buf := NewFrameBuffer(4, 4)
	r.Render(buf, true, nil, TexturesDelta{}, 0)
}

func TestSetCachingClearsCache(t *testing.T) {
	r := New(WithCaching(Mesh))
	buf := NewFrameBuffer(8, 8)
	r.Render(buf, true, []Primitive{quadPrimitive(0, 0, 4, 4, blend.Pixel{255, 0, 0, 255})}, whiteTextureDelta(), 1.0)
	if len(r.meshCache) == 0 {
		t.Fatal("expected a populated mesh cache after first render")
	}

	r.SetCaching(MeshTiled)
	if len(r.meshCache) != 0 {
		t.Error("SetCaching should clear the existing cache")
	}
	if r.Caching() != MeshTiled {
		t.Errorf("Caching() = %v, want MeshTiled", r.Caching())
	}
}

// A clip rect wider than the primitive's own geometry (the common egui
// case: clipped to a widget's enclosing rect, not to the mesh's exact
// bbox) must crop the cache entry and dirty rect to the mesh bbox, not the
// clip rect.
func TestCroppedRectUsesMeshBoundsNotJustClipRect(t *testing.T) {
	color := blend.Pixel{255, 0, 0, 255}
	verts := []Vertex{
		{Pos: mathx.Vec2{X: 8, Y: 8}, UV: mathx.Vec2{X: 0.5, Y: 0.5}, Color: color},
		{Pos: mathx.Vec2{X: 16, Y: 8}, UV: mathx.Vec2{X: 0.5, Y: 0.5}, Color: color},
		{Pos: mathx.Vec2{X: 16, Y: 16}, UV: mathx.Vec2{X: 0.5, Y: 0.5}, Color: color},
		{Pos: mathx.Vec2{X: 8, Y: 16}, UV: mathx.Vec2{X: 0.5, Y: 0.5}, Color: color},
	}
	prim := Primitive{
		// Clip rect spans the whole 64x64 buffer, far larger than the quad.
		ClipRect: mathx.Rect{Min: mathx.Vec2{X: 0, Y: 0}, Max: mathx.Vec2{X: 64, Y: 64}},
		Mesh: &prepare.Mesh{
			TextureID: whiteTextureID,
			Indices:   []uint32{0, 1, 2, 0, 2, 3},
			Vertices:  verts,
		},
	}

	r := New(WithCaching(BlendTiled))
	buf := NewFrameBuffer(64, 64)
	r.Render(buf, true, []Primitive{prim}, whiteTextureDelta(), 1.0)

	if len(r.tiledCache) != 1 {
		t.Fatalf("len(tiledCache) = %d, want 1", len(r.tiledCache))
	}
	for _, e := range r.tiledCache {
		want := tile.Rect{MinX: 8, MinY: 8, MaxX: 16, MaxY: 16}
		if e.rect != want {
			t.Errorf("cache entry rect = %+v, want %+v (mesh bbox, not clip rect)", e.rect, want)
		}
	}
}

func TestCachedSizeTracksLastRender(t *testing.T) {
	r := New()
	if w, h := r.CachedSize(); w != 0 || h != 0 {
		t.Errorf("CachedSize() before any render = (%d,%d), want (0,0)", w, h)
	}
	buf := NewFrameBuffer(10, 20)
	r.Render(buf, true, nil, TexturesDelta{}, 1.0)
	if w, h := r.CachedSize(); w != 10 || h != 20 {
		t.Errorf("CachedSize() = (%d,%d), want (10,20)", w, h)
	}
}
