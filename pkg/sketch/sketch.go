// Package sketch turns a sequence record into a Bloom filter: the
// "Bloom-filter construction and k-mer hashing" that pkg/bigsi treats
// as an opaque external producer.
package sketch

import (
	"errors"
	"fmt"

	"github.com/spaolacci/murmur3"
	"github.com/will-rowe/antman/pkg/bloomfilter"
)

// ErrSequenceTooShort is returned by Sketch when the record is shorter
// than the requested k-mer length.
var ErrSequenceTooShort = errors.New("sketch: sequence shorter than k")

// ErrInvalidK is returned by Sketch when k is not positive.
var ErrInvalidK = errors.New("sketch: k must be greater than zero")

// Record is a named sequence to sketch.
type Record struct {
	ID       string
	Sequence []byte
}

// Sketch slides a k-mer window of length k across rec.Sequence,
// double-hashes each k-mer via murmur3 into numHashes positions
// (Kirsch-Mitzenmacher: h1 + i*h2 mod numBits), and sets the
// corresponding bits of a fresh numBits-wide Bloom filter.
func Sketch(rec Record, k, numBits, numHashes int) (*bloomfilter.Filter, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if len(rec.Sequence) < k {
		return nil, fmt.Errorf("%w: %s has length %d, k=%d", ErrSequenceTooShort, rec.ID, len(rec.Sequence), k)
	}

	f, err := bloomfilter.New(uint32(numBits), numHashes)
	if err != nil {
		return nil, err
	}

	for i := 0; i+k <= len(rec.Sequence); i++ {
		kmer := rec.Sequence[i : i+k]
		h1, h2 := murmur3.Sum128(kmer)

		for j := 0; j < numHashes; j++ {
			pos := uint32((h1 + uint64(j)*h2) % uint64(numBits))
			if err := f.SetBit(pos); err != nil {
				return nil, fmt.Errorf("sketch: set bit for kmer at offset %d: %w", i, err)
			}
		}
	}

	return f, nil
}
