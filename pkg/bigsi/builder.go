package bigsi

import (
	"fmt"
	"path/filepath"

	"github.com/will-rowe/antman/pkg/bitvector"
	"github.com/will-rowe/antman/pkg/bloomfilter"
	"github.com/will-rowe/antman/pkg/kv"
)

// Insert assigns colours to the sequence ids in batch and stages their
// Bloom filters for the next Finalise. Iteration order over batch is
// unspecified; colour assignment is only deterministic per the
// caller's own ordering of a single call.
//
// Insert is not atomic across a batch: an entry that fails leaves every
// entry processed before it already applied. Callers needing atomicity
// must wrap their own transaction around Insert.
func (idx *Index) Insert(batch map[string]*bloomfilter.Filter) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.state != stateBuilding {
		return ErrAlreadyIndexed
	}

	for id, bf := range batch {
		if bf == nil {
			return ErrNullArgument
		}
		if _, ok := idx.id2colour.Get(id); ok {
			return fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		if bf.NumHashes() != idx.numHashes || bf.NumBits() != idx.numBits {
			return fmt.Errorf("%w: sequence %s", ErrIncompatibleFilter, id)
		}
		if bf.Popcount() == 0 {
			return fmt.Errorf("%w: sequence %s", ErrEmptyFilter, id)
		}
		if idx.numColours >= MaxColours {
			return fmt.Errorf("%w: sequence %s", ErrColourOverflow, id)
		}

		colour := idx.numColours
		idx.staged = append(idx.staged, bf.CloneBits())
		idx.ids = append(idx.ids, id)
		idx.id2colour.Put(id, colour)
		idx.numColours++
	}

	return nil
}

// Finalise transposes the staged Bloom-filter bit vectors into the
// on-disk row matrix, writes the colour→id table, flushes metadata, and
// transitions the index to Indexed. Once both stores are open, the
// transient build-time arrays and duplicate-detection map are released
// whether or not the transpose succeeds; an error before that point
// leaves them in place.
func (idx *Index) Finalise() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.state != stateBuilding {
		return ErrAlreadyIndexed
	}
	if idx.numColours == 0 {
		return fmt.Errorf("%w", ErrNoColours)
	}

	rowStore, err := idx.openStore(idx.rowStorePath())
	if err != nil {
		return fmt.Errorf("bigsi: open row store: %w", err)
	}
	colStore, err := idx.openStore(idx.colStorePath())
	if err != nil {
		_ = rowStore.Close()
		return fmt.Errorf("bigsi: open colour store: %w", err)
	}

	return idx.finaliseInto(rowStore, colStore)
}

// finaliseInto does the actual transpose, colour-table write, and
// metadata flush against an already-open pair of stores, then
// transitions the index to Indexed. Split out from Finalise so a test
// can hand it kv.Memory-backed stores directly, proving kv.Store's two
// implementations are interchangeable beneath Index without opening
// either store file (see memory_store_test.go). The metadata file is
// still written to the index directory.
func (idx *Index) finaliseInto(rowStore, colStore kv.Store) error {
	defer func() {
		idx.staged = nil
		idx.ids = nil
		idx.id2colour = nil
	}()

	for r := uint32(0); r < idx.numBits; r++ {
		row, err := bitvector.New(idx.numColours)
		if err != nil {
			_ = rowStore.Close()
			_ = colStore.Close()
			return fmt.Errorf("bigsi: allocate row %d: %w", r, err)
		}

		for c := uint32(0); c < idx.numColours; c++ {
			bit, err := idx.staged[c].Get(r)
			if err != nil {
				_ = rowStore.Close()
				_ = colStore.Close()
				return fmt.Errorf("bigsi: read bit %d of colour %d: %w", r, c, err)
			}
			if bit == 0 {
				continue
			}
			if err := row.Set(c, 1); err != nil {
				_ = rowStore.Close()
				_ = colStore.Close()
				return fmt.Errorf("bigsi: set bit %d of row %d: %w", c, r, err)
			}
		}

		blob, err := encodeBitVector(row)
		if err != nil {
			_ = rowStore.Close()
			_ = colStore.Close()
			return fmt.Errorf("bigsi: serialise row %d: %w", r, err)
		}
		if err := rowStore.Put(r, blob); err != nil {
			_ = rowStore.Close()
			_ = colStore.Close()
			return fmt.Errorf("bigsi: write row %d: %w", r, err)
		}
	}

	for c := uint32(0); c < idx.numColours; c++ {
		value := append([]byte(idx.ids[c]), 0)
		if err := colStore.Put(c, value); err != nil {
			_ = rowStore.Close()
			_ = colStore.Close()
			return fmt.Errorf("bigsi: write colour %d: %w", c, err)
		}
	}

	if err := writeMetadata(idx.metaPath, metadata{
		DBDirectory:    idx.dir,
		Metadata:       metaFileName,
		Bitvectors:     rowFileName,
		Colours:        colFileName,
		NumBits:        idx.numBits,
		NumHashes:      idx.numHashes,
		ColourIterator: idx.numColours,
	}); err != nil {
		_ = rowStore.Close()
		_ = colStore.Close()
		return err
	}

	idx.rowStore = rowStore
	idx.colStore = colStore
	idx.state = stateIndexed
	return nil
}

func (idx *Index) rowStorePath() string { return filepath.Join(idx.dir, rowFileName) }
func (idx *Index) colStorePath() string { return filepath.Join(idx.dir, colFileName) }
