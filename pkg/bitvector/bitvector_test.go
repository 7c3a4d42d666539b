package bitvector

import (
	"bytes"
	"errors"
	"testing"
)

func TestNewRejectsZeroCapacity(t *testing.T) {
	if _, err := New(0); !errors.Is(err, ErrZeroCapacity) {
		t.Fatalf("expected ErrZeroCapacity, got %v", err)
	}
}

func TestSetAndGet(t *testing.T) {
	bv, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	if err := bv.Set(3, 1); err != nil {
		t.Fatal(err)
	}
	if err := bv.Set(9, 1); err != nil {
		t.Fatal(err)
	}

	for _, i := range []uint32{3, 9} {
		v, err := bv.Get(i)
		if err != nil {
			t.Fatal(err)
		}
		if v != 1 {
			t.Fatalf("expected bit %d set", i)
		}
	}

	if v, _ := bv.Get(4); v != 0 {
		t.Fatalf("expected bit 4 clear, got %d", v)
	}

	if bv.Popcount() != 2 {
		t.Fatalf("expected popcount 2, got %d", bv.Popcount())
	}
}

// TestSetIdempotent covers P1: popcount exactness is preserved across
// repeated identical sets.
func TestSetIdempotent(t *testing.T) {
	bv, _ := New(8)
	for i := 0; i < 3; i++ {
		if err := bv.Set(2, 1); err != nil {
			t.Fatal(err)
		}
	}
	if bv.Popcount() != 1 {
		t.Fatalf("expected popcount 1, got %d", bv.Popcount())
	}

	if err := bv.Set(2, 0); err != nil {
		t.Fatal(err)
	}
	if bv.Popcount() != 0 {
		t.Fatalf("expected popcount 0, got %d", bv.Popcount())
	}
}

func TestOutOfRange(t *testing.T) {
	bv, _ := New(8)

	if _, err := bv.Get(8); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if err := bv.Set(100, 1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestClone(t *testing.T) {
	bv, _ := New(8)
	_ = bv.Set(1, 1)

	clone := bv.Clone()
	_ = clone.Set(2, 1)

	if bv.Popcount() != 1 {
		t.Fatalf("original mutated by clone mutation")
	}
	if clone.Popcount() != 2 {
		t.Fatalf("expected clone popcount 2, got %d", clone.Popcount())
	}
}

func TestOrIntoAndAndInPlace(t *testing.T) {
	a, _ := New(8)
	_ = a.Set(0, 1)
	_ = a.Set(1, 1)

	b, _ := New(8)
	_ = b.Set(1, 1)
	_ = b.Set(2, 1)

	dst, _ := New(8)
	if err := OrInto(dst, a, b); err != nil {
		t.Fatal(err)
	}
	if dst.Popcount() != 3 {
		t.Fatalf("expected popcount 3 after OR, got %d", dst.Popcount())
	}

	if err := AndInPlace(dst, a); err != nil {
		t.Fatal(err)
	}
	if dst.Popcount() != 2 {
		t.Fatalf("expected popcount 2 after AND, got %d", dst.Popcount())
	}
}

func TestCapacityMismatch(t *testing.T) {
	a, _ := New(8)
	b, _ := New(16)

	if err := OrInto(a, a, b); !errors.Is(err, ErrCapacityMismatch) {
		t.Fatalf("expected ErrCapacityMismatch, got %v", err)
	}
	if err := AndInPlace(a, b); !errors.Is(err, ErrCapacityMismatch) {
		t.Fatalf("expected ErrCapacityMismatch, got %v", err)
	}
}

// TestSerialiseRoundTrip covers P6.
func TestSerialiseRoundTrip(t *testing.T) {
	bv, _ := New(20)
	_ = bv.Set(0, 1)
	_ = bv.Set(19, 1)
	_ = bv.Set(7, 1)

	var buf bytes.Buffer
	if err := bv.Serialise(&buf); err != nil {
		t.Fatal(err)
	}

	got, err := Deserialise(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if got.Capacity() != bv.Capacity() {
		t.Fatalf("capacity mismatch: %d vs %d", got.Capacity(), bv.Capacity())
	}
	if got.Popcount() != bv.Popcount() {
		t.Fatalf("popcount mismatch: %d vs %d", got.Popcount(), bv.Popcount())
	}
	if !bytes.Equal(got.buf, bv.buf) {
		t.Fatalf("buffer mismatch: %v vs %v", got.buf, bv.buf)
	}
}

func TestDeserialiseNeverTrustsStoredPopcount(t *testing.T) {
	// Serialise a vector whose byte pattern implies popcount 2 (the
	// wire format carries no popcount) and confirm the decoder
	// recomputes it rather than relying on any side channel.
	bv, _ := New(8)
	_ = bv.Set(0, 1)
	_ = bv.Set(5, 1)

	var buf bytes.Buffer
	_ = bv.Serialise(&buf)

	got, err := Deserialise(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Popcount() != 2 {
		t.Fatalf("expected recomputed popcount 2, got %d", got.Popcount())
	}
}
