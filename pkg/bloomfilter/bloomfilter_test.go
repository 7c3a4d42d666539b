package bloomfilter

import (
	"errors"
	"testing"
)

func TestNewRejectsZeroHashes(t *testing.T) {
	if _, err := New(16, 0); !errors.Is(err, ErrZeroHashes) {
		t.Fatalf("expected ErrZeroHashes, got %v", err)
	}
}

func TestSetBitAndClone(t *testing.T) {
	f, err := New(16, 2)
	if err != nil {
		t.Fatal(err)
	}

	if err := f.SetBit(3); err != nil {
		t.Fatal(err)
	}
	if err := f.SetBit(9); err != nil {
		t.Fatal(err)
	}

	if f.Popcount() != 2 {
		t.Fatalf("expected popcount 2, got %d", f.Popcount())
	}
	if f.NumBits() != 16 {
		t.Fatalf("expected 16 bits, got %d", f.NumBits())
	}
	if f.NumHashes() != 2 {
		t.Fatalf("expected 2 hashes, got %d", f.NumHashes())
	}

	clone := f.CloneBits()
	if clone.Popcount() != 2 {
		t.Fatalf("clone lost bits")
	}

	// Mutating the original filter must not affect the clone.
	if err := f.SetBit(0); err != nil {
		t.Fatal(err)
	}
	if clone.Popcount() != 2 {
		t.Fatalf("clone affected by later mutation of source filter")
	}
}
