package prepare

import (
	"log/slog"
	"testing"

	"github.com/Speedy37/egui-software-backend/internal/blend"
	"github.com/Speedy37/egui-software-backend/internal/mathx"
	"github.com/Speedy37/egui-software-backend/texture"
)

func quadPrimitive() Primitive {
	white := blend.Pixel{255, 255, 255, 255}
	return Primitive{
		ClipRect: mathx.Rect{Min: mathx.Vec2{}, Max: mathx.Vec2{X: 10, Y: 10}},
		Mesh: &Mesh{
			TextureID: texture.Managed(0),
			Indices:   []uint32{0, 1, 2, 0, 2, 3},
			Vertices: []Vertex{
				{Pos: mathx.Vec2{X: 0, Y: 0}, Color: white},
				{Pos: mathx.Vec2{X: 4, Y: 0}, Color: white},
				{Pos: mathx.Vec2{X: 4, Y: 4}, Color: white},
				{Pos: mathx.Vec2{X: 0, Y: 4}, Color: white},
			},
		},
	}
}

func TestPixelMeshScalesByPixelsPerPoint(t *testing.T) {
	p, ok := PixelMesh(slog.Default(), texture.RGBA, 0.5, 2.0, quadPrimitive())
	if !ok {
		t.Fatal("PixelMesh rejected a well-formed quad")
	}
	if p.Mesh.Vertices[1].Pos.X != 8 {
		t.Fatalf("expected position scaled by ppp, got %v", p.Mesh.Vertices[1].Pos)
	}
	wantMax := mathx.Vec2{X: 20.5, Y: 20.5}
	if p.ClipRect.Max != wantMax {
		t.Fatalf("clip rect max = %v, want %v", p.ClipRect.Max, wantMax)
	}
}

func TestPixelMeshDropsCallback(t *testing.T) {
	_, ok := PixelMesh(slog.Default(), texture.RGBA, 0.5, 1.0, Primitive{Callback: true})
	if ok {
		t.Fatal("callback primitive was not dropped")
	}
}

func TestPixelMeshDropsEmpty(t *testing.T) {
	_, ok := PixelMesh(slog.Default(), texture.RGBA, 0.5, 1.0, Primitive{Mesh: &Mesh{}})
	if ok {
		t.Fatal("empty mesh was not dropped")
	}
}

func TestPixelMeshSwizzlesToBGRA(t *testing.T) {
	prim := quadPrimitive()
	prim.Mesh.Vertices[0].Color = blend.Pixel{10, 20, 30, 40}
	p, ok := PixelMesh(slog.Default(), texture.BGRA, 0.5, 1.0, prim)
	if !ok {
		t.Fatal("PixelMesh rejected quad")
	}
	want := blend.Pixel{30, 20, 10, 40}
	if p.Mesh.Vertices[0].Color != want {
		t.Fatalf("swizzled color = %v, want %v", p.Mesh.Vertices[0].Color, want)
	}
}

func TestPixelMeshOrientsTrianglesCCW(t *testing.T) {
	white := blend.Pixel{255, 255, 255, 255}
	// Deliberately CW-wound triangle: (0,0),(0,4),(4,0).
	prim := Primitive{
		ClipRect: mathx.Rect{Max: mathx.Vec2{X: 10, Y: 10}},
		Mesh: &Mesh{
			TextureID: texture.Managed(0),
			Indices:   []uint32{0, 1, 2},
			Vertices: []Vertex{
				{Pos: mathx.Vec2{X: 0, Y: 0}, Color: white},
				{Pos: mathx.Vec2{X: 0, Y: 4}, Color: white},
				{Pos: mathx.Vec2{X: 4, Y: 0}, Color: white},
			},
		},
	}
	p, ok := PixelMesh(slog.Default(), texture.RGBA, 0, 1.0, prim)
	if !ok {
		t.Fatal("PixelMesh rejected triangle")
	}
	v0 := p.Mesh.Vertices[p.Mesh.Indices[0]]
	v1 := p.Mesh.Vertices[p.Mesh.Indices[1]]
	v2 := p.Mesh.Vertices[p.Mesh.Indices[2]]
	if mathx.Orient2D(v0.Pos, v1.Pos, v2.Pos) < 0 {
		t.Fatal("triangle was not normalized to CCW winding")
	}
}

func TestSubpixBitsFor(t *testing.T) {
	if got := SubpixBitsFor(mathx.Vec2{}, mathx.Vec2{X: 100, Y: 100}); got != 8 {
		t.Fatalf("small mesh got SUBPIX_BITS=%d, want 8", got)
	}
	if got := SubpixBitsFor(mathx.Vec2{}, mathx.Vec2{X: 5000, Y: 100}); got != 2 {
		t.Fatalf("wide mesh got SUBPIX_BITS=%d, want 2", got)
	}
}

func TestOversize(t *testing.T) {
	if Oversize(mathx.Vec2{}, mathx.Vec2{X: 100, Y: 100}) {
		t.Fatal("small mesh flagged oversize")
	}
	if !Oversize(mathx.Vec2{}, mathx.Vec2{X: 9000, Y: 100}) {
		t.Fatal("9000-wide mesh not flagged oversize")
	}
}
