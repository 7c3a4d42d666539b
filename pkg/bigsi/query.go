package bigsi

import (
	"fmt"
	"strings"

	"github.com/will-rowe/antman/pkg/bitvector"
)

// Query AND-folds the rows addressed by hashes (one per configured
// hash function) into result, which the caller must provide as an
// empty bit vector of capacity NumColours(). On success, bit c of
// result is set iff every hashed row has bit c set — the set of
// colours whose Bloom filter may contain the queried k-mer, with zero
// false negatives (P3, P4).
//
// The fold returns as soon as any row is missing (an implicit all-zero
// row) or the running result becomes empty, without reading any
// further rows.
func (idx *Index) Query(hashes []uint64, result *bitvector.BitVector) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if hashes == nil || result == nil {
		return ErrNullArgument
	}
	if idx.state != stateIndexed {
		return ErrUnindexed
	}
	if len(hashes) != idx.numHashes {
		return fmt.Errorf("%w: got %d, want %d", ErrHashMismatch, len(hashes), idx.numHashes)
	}
	if result.Capacity() != idx.numColours {
		return fmt.Errorf("%w: got %d, want %d", ErrResultMismatch, result.Capacity(), idx.numColours)
	}

	for i, h := range hashes {
		r := uint32(h % uint64(idx.numBits))

		blob, ok, err := idx.rowStore.Get(r)
		if err != nil {
			return fmt.Errorf("bigsi: read row %d: %w", r, err)
		}
		if !ok {
			// Missing row == an implicit all-zero row: nothing can
			// survive the AND fold, so the result is cleared and we
			// can stop without reading further rows.
			empty, err := bitvector.New(idx.numColours)
			if err != nil {
				return fmt.Errorf("bigsi: fold row %d: %w", r, err)
			}
			if err := bitvector.AndInPlace(result, empty); err != nil {
				return fmt.Errorf("bigsi: fold row %d: %w", r, err)
			}
			return nil
		}

		row, err := decodeBitVector(blob)
		if err != nil {
			return fmt.Errorf("bigsi: decode row %d: %w", r, err)
		}

		if i == 0 {
			if err := bitvector.OrInto(result, result, row); err != nil {
				return fmt.Errorf("bigsi: fold row %d: %w", r, err)
			}
		} else {
			if err := bitvector.AndInPlace(result, row); err != nil {
				return fmt.Errorf("bigsi: fold row %d: %w", r, err)
			}
		}

		if result.Popcount() == 0 {
			return nil
		}
	}

	return nil
}

// LookupColour returns the sequence id assigned to colour c.
func (idx *Index) LookupColour(c uint32) (string, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.state != stateIndexed {
		return "", ErrUnindexed
	}
	if c >= idx.numColours {
		return "", fmt.Errorf("%w: colour %d, numColours %d", ErrOutOfRange, c, idx.numColours)
	}

	blob, ok, err := idx.colStore.Get(c)
	if err != nil {
		return "", fmt.Errorf("bigsi: read colour %d: %w", c, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: colour %d", ErrNotFound, c)
	}

	return strings.TrimRight(string(blob), "\x00"), nil
}
