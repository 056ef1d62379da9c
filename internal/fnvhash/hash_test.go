package fnvhash

import "testing"

func TestDeterministic(t *testing.T) {
	h1 := NewHash32()
	h1.HashWrap(1)
	h1.Hash(2)
	h1.FNVWrap()

	h2 := NewHash32()
	h2.HashWrap(1)
	h2.Hash(2)
	h2.FNVWrap()

	if h1.Finalize() != h2.Finalize() {
		t.Fatalf("same input sequence produced different hashes: %d != %d", h1.Finalize(), h2.Finalize())
	}
}

func TestOrderSensitive(t *testing.T) {
	a := NewHash32()
	a.Hash(1)
	a.Hash(2)

	b := NewHash32()
	b.Hash(2)
	b.Hash(1)

	if a.Finalize() == b.Finalize() {
		t.Fatalf("hash should be order-sensitive, got same result for reordered inputs")
	}
}

func TestWrapChangesAccumulatorPosition(t *testing.T) {
	a := NewHash32()
	a.Hash(42)

	b := NewHash32()
	b.HashWrap(42)

	if a.Finalize() == b.Finalize() {
		t.Fatalf("HashWrap should rotate the accumulator differently than plain Hash")
	}
}

func TestFinalizeNonZeroForZeroInput(t *testing.T) {
	h := NewHash32()
	h.Hash(0)
	if h.Finalize() == 0 {
		t.Fatalf("hashing zero should not collapse the FNV offset basis to zero")
	}
}
