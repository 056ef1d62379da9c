package mathx

import "testing"

func TestOrient2DSign(t *testing.T) {
	ccw := Orient2D(Vec2{0, 0}, Vec2{1, 0}, Vec2{0, 1})
	if ccw <= 0 {
		t.Fatalf("expected positive area for CCW triangle, got %v", ccw)
	}
	cw := Orient2D(Vec2{0, 0}, Vec2{0, 1}, Vec2{1, 0})
	if cw >= 0 {
		t.Fatalf("expected negative area for CW triangle, got %v", cw)
	}
}

func TestVec4RoundTrip(t *testing.T) {
	in := [4]uint8{0, 128, 255, 64}
	v := U8x4ToVec4(in)
	out := Vec4ToU8x4(v)
	if out != in {
		t.Fatalf("round trip mismatch: got %v, want %v", out, in)
	}
}

func TestPixelCenterRound(t *testing.T) {
	cases := []struct {
		in   float32
		want int64
	}{
		{0.0, 0},
		{0.49, 0},
		{0.5, 1},
		{3.2, 3},
	}
	for _, c := range cases {
		if got := PixelCenterRound(c.in); got != c.want {
			t.Errorf("PixelCenterRound(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRectIntersectEmpty(t *testing.T) {
	a := Rect{Min: Vec2{0, 0}, Max: Vec2{4, 4}}
	b := Rect{Min: Vec2{10, 10}, Max: Vec2{20, 20}}
	got := a.Intersect(b)
	if got.Max.X > got.Min.X && got.Max.Y > got.Min.Y {
		t.Fatalf("expected empty intersection, got %v", got)
	}
}
