package blend

import "testing"

// TestMulDiv255ExactRounding checks the formula against round(a*b/255),
// which is the reference the blend-equivalence property is judged against.
func TestMulDiv255ExactRounding(t *testing.T) {
	for a := 0; a <= 255; a += 17 {
		for b := 0; b <= 255; b++ {
			got := mulDiv255(uint8(a), uint8(b))
			want := (a*b + 127) / 255
			if int(got) != want {
				t.Fatalf("mulDiv255(%d,%d) = %d, reference round = %d", a, b, got, want)
			}
		}
	}
}

func TestMulDiv255Identities(t *testing.T) {
	if got := mulDiv255(0, 255); got != 0 {
		t.Errorf("mulDiv255(0,255) = %d, want 0", got)
	}
	if got := mulDiv255(255, 255); got != 255 {
		t.Errorf("mulDiv255(255,255) = %d, want 255", got)
	}
	if got := mulDiv255(255, 0); got != 0 {
		t.Errorf("mulDiv255(255,0) = %d, want 0", got)
	}
}

func TestUnormMul4(t *testing.T) {
	white := [4]uint8{255, 255, 255, 255}
	c := [4]uint8{10, 20, 30, 40}
	if got := unormMul4(c, white); got != c {
		t.Errorf("unormMul4(c, white) = %v, want %v", got, c)
	}

	black := [4]uint8{0, 0, 0, 0}
	if got := unormMul4(c, black); got != black {
		t.Errorf("unormMul4(c, black) = %v, want %v", got, black)
	}
}

func TestBlendU8Identity(t *testing.T) {
	dst := [4]uint8{10, 20, 30, 255}
	transparent := [4]uint8{0, 0, 0, 0}
	if got := blendU8(transparent, dst); got != dst {
		t.Errorf("blending transparent src leaves dst unchanged: got %v, want %v", got, dst)
	}

	opaqueSrc := [4]uint8{200, 150, 100, 255}
	if got := blendU8(opaqueSrc, dst); got != opaqueSrc {
		t.Errorf("blending opaque src yields src: got %v, want %v", got, opaqueSrc)
	}
}

func TestAddSatClamps(t *testing.T) {
	if got := addSat(200, 100); got != 255 {
		t.Errorf("addSat(200,100) = %d, want 255", got)
	}
	if got := addSat(10, 20); got != 30 {
		t.Errorf("addSat(10,20) = %d, want 30", got)
	}
}
