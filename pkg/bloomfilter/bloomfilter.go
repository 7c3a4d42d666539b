// Package bloomfilter is a thin wrapper around bitvector.BitVector that
// adds the hash count a Bloom filter needs. It is deliberately opaque:
// the only things consumed by the index are NumHashes, the bit
// vector's capacity, its popcount, and a clone of the bit vector
// itself.
package bloomfilter

import (
	"errors"
	"fmt"

	"github.com/will-rowe/antman/pkg/bitvector"
)

// ErrZeroHashes is returned by New when numHashes is not positive.
var ErrZeroHashes = errors.New("bloomfilter: numHashes must be greater than zero")

// Filter is a Bloom filter: a bit vector plus a hash count.
type Filter struct {
	bits      *bitvector.BitVector
	numHashes int
}

// New allocates an empty Filter of the given width and hash count.
func New(numBits uint32, numHashes int) (*Filter, error) {
	if numHashes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrZeroHashes, numHashes)
	}
	bits, err := bitvector.New(numBits)
	if err != nil {
		return nil, err
	}
	return &Filter{bits: bits, numHashes: numHashes}, nil
}

// NumHashes returns the filter's configured hash count.
func (f *Filter) NumHashes() int { return f.numHashes }

// NumBits returns the width of the filter's bit vector.
func (f *Filter) NumBits() uint32 { return f.bits.Capacity() }

// Popcount returns the number of set bits in the filter.
func (f *Filter) Popcount() uint32 { return f.bits.Popcount() }

// SetBit sets bit i of the underlying bit vector. It exists so sketch
// producers (which compute k-mer hashes externally) can fold hits into
// the filter without the index package reaching into its internals.
func (f *Filter) SetBit(i uint32) error {
	return f.bits.Set(i, 1)
}

// CloneBits returns an independent copy of the filter's bit vector, for
// the index to take ownership of at Insert time.
func (f *Filter) CloneBits() *bitvector.BitVector {
	return f.bits.Clone()
}
