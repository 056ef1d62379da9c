package tile

import (
	"testing"

	"github.com/Speedy37/egui-software-backend/internal/blend"
)

func TestRectTiled(t *testing.T) {
	r := Rect{MinX: 10, MinY: 70, MaxX: 130, MaxY: 131}
	got := r.Tiled()
	want := Rect{MinX: 0, MinY: 64, MaxX: 192, MaxY: 192}
	if got != want {
		t.Fatalf("Tiled() = %v, want %v", got, want)
	}
}

func TestDecomposerNonOverlappingCoversUnion(t *testing.T) {
	d := NewDecomposer()
	boxes := []Rect{
		{MinX: 0, MinY: 0, MaxX: 64, MaxY: 64},
		{MinX: 64, MinY: 0, MaxX: 128, MaxY: 64},
		{MinX: 32, MinY: 64, MaxX: 96, MaxY: 128},
	}
	d.SetBoxes(boxes)
	result := d.Result()
	if len(result) == 0 {
		t.Fatal("decomposer produced no rects")
	}

	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			a, b := result[i], result[j]
			if a.MinX < b.MaxX && a.MaxX > b.MinX && a.MinY < b.MaxY && a.MaxY > b.MinY {
				t.Fatalf("rects %v and %v overlap", a, b)
			}
		}
	}

	wantUnion := Rect{}
	for _, b := range boxes {
		wantUnion = wantUnion.Union(b.Tiled())
	}
	gotUnion := Rect{MinX: ^uint32(0), MinY: ^uint32(0)}
	for _, r := range result {
		gotUnion = gotUnion.Union(r)
	}
	if gotUnion != wantUnion {
		t.Fatalf("union of decomposed rects = %v, want %v", gotUnion, wantUnion)
	}
}

func TestDecomposerMergesAdjacentSameRow(t *testing.T) {
	d := NewDecomposer()
	d.SetBoxes([]Rect{
		{MinX: 0, MinY: 0, MaxX: 64, MaxY: 64},
		{MinX: 64, MinY: 0, MaxX: 128, MaxY: 64},
	})
	result := d.Result()
	if len(result) != 1 {
		t.Fatalf("expected adjacent same-row rects to merge into one, got %d: %v", len(result), result)
	}
	want := Rect{MinX: 0, MinY: 0, MaxX: 128, MaxY: 64}
	if result[0] != want {
		t.Fatalf("merged rect = %v, want %v", result[0], want)
	}
}

func TestGridOccupancyDirtyFlags(t *testing.T) {
	g := NewGrid(200, 200)
	g.MarkDirty(1, 1)
	g.SetOccupied(1, 1)
	if !g.IsDirty(1, 1) {
		t.Fatal("tile (1,1) not dirty after MarkDirty")
	}
	g.ClearDirty()
	if g.IsDirty(1, 1) {
		t.Fatal("tile (1,1) still dirty after ClearDirty")
	}
	if g.Flags[g.index(1, 1)]&OccupiedMask == 0 {
		t.Fatal("ClearDirty must not clear OccupiedMask")
	}
}

func TestComputeOccupiedTilesFindsNonZeroPixel(t *testing.T) {
	rect := Rect{MinX: 0, MinY: 0, MaxX: 128, MaxY: 64}
	bitmap := make([]blend.Pixel, rect.Width()*rect.Height())

	// Place a single opaque pixel in the tile at (1,0) (x in [64,128)).
	bitmap[10*rect.Width()+70] = blend.Pixel{255, 0, 0, 255}

	coords := ComputeOccupiedTiles(bitmap, rect)
	found := false
	for _, c := range coords {
		if c.X == 1 && c.Y == 0 {
			found = true
		}
		if c.X == 0 && c.Y == 0 {
			t.Fatalf("tile (0,0) reported occupied but has no non-zero pixels")
		}
	}
	if !found {
		t.Fatalf("expected tile (1,0) occupied, got %v", coords)
	}
}
