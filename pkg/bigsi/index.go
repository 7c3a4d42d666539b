// Package bigsi implements a Bitsliced Genomic Signature Index: a
// bit-matrix that records, for every Bloom-filter bit position, which
// inserted sequences ("colours") have that bit set. It is built
// incrementally from (id, Bloom filter) pairs, transposed to disk on
// Finalise, and queried by AND-folding the rows addressed by a query's
// hash values.
package bigsi

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/will-rowe/antman/memtable"
	"github.com/will-rowe/antman/pkg/bitvector"
	"github.com/will-rowe/antman/pkg/kv"
)

// MaxColours is the compile-time upper bound on numColours. Insert
// fails with ErrColourOverflow past this point.
const MaxColours = 1 << 24

type state int

const (
	stateBuilding state = iota
	stateIndexed
	stateClosed
)

// Index is a BIGSI. The zero value is not valid; use OpenNew or
// OpenExisting.
type Index struct {
	mu sync.Mutex

	dir        string
	numBits    uint32
	numHashes  int
	numColours uint32
	state      state

	rowStore kv.Store
	colStore kv.Store
	metaPath string

	// openStore creates the two stores Finalise writes into. OpenNew
	// and OpenExisting wire it to kv.OpenDisk. Tests that want
	// kv.Memory-backed stores call finaliseInto directly instead of
	// Finalise (see memory_store_test.go).
	openStore func(path string) (kv.Store, error)

	// Transient build-time state. Dropped at Finalise.
	staged    []*bitvector.BitVector
	ids       []string
	id2colour *memtable.SkipList[string, uint32]
}

func diskStoreOpener(path string) (kv.Store, error) { return kv.OpenDisk(path) }

// NumBits returns the width of every Bloom filter in the index — also
// the row count of the matrix.
func (idx *Index) NumBits() uint32 { return idx.numBits }

// NumHashes returns the per-Bloom-filter hash count.
func (idx *Index) NumHashes() int { return idx.numHashes }

// NumColours returns the number of sequences inserted so far.
func (idx *Index) NumColours() uint32 {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.numColours
}

// Indexed reports whether Finalise has transitioned the index into the
// queryable state.
func (idx *Index) Indexed() bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.state == stateIndexed
}

// OpenNew creates a fresh Index in the Building state under dir. The
// directory must already exist and must not contain an existing index.
func OpenNew(dir string, numBits uint32, numHashes int) (*Index, error) {
	if numBits == 0 {
		return nil, fmt.Errorf("bigsi: numBits must be greater than zero")
	}
	if numHashes <= 0 {
		return nil, fmt.Errorf("bigsi: numHashes must be greater than zero")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("bigsi: stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("bigsi: %s is not a directory", dir)
	}

	metaPath := filepath.Join(dir, metaFileName)
	if _, err := os.Stat(metaPath); err == nil {
		return nil, ErrDirectoryNotEmpty
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("bigsi: stat metadata file: %w", err)
	}

	return &Index{
		dir:       dir,
		numBits:   numBits,
		numHashes: numHashes,
		metaPath:  metaPath,
		state:     stateBuilding,
		openStore: diskStoreOpener,
		id2colour: memtable.NewSkipListMemtable[string, uint32](),
	}, nil
}

// OpenExisting loads a finalised Index from dir, validating its
// metadata and opening both stores read-write. It performs a self-check
// read of the last row to confirm the stores are actually readable
// before returning.
func OpenExisting(dir string) (*Index, error) {
	metaPath := filepath.Join(dir, metaFileName)
	meta, err := readMetadata(metaPath)
	if err != nil {
		return nil, err
	}

	rowStore, err := kv.OpenDisk(filepath.Join(dir, meta.Bitvectors))
	if err != nil {
		return nil, fmt.Errorf("bigsi: open row store: %w", err)
	}
	colStore, err := kv.OpenDisk(filepath.Join(dir, meta.Colours))
	if err != nil {
		_ = rowStore.Close()
		return nil, fmt.Errorf("bigsi: open colour store: %w", err)
	}

	idx := &Index{
		dir:        dir,
		numBits:    meta.NumBits,
		numHashes:  meta.NumHashes,
		numColours: meta.ColourIterator,
		metaPath:   metaPath,
		state:      stateIndexed,
		openStore:  diskStoreOpener,
		rowStore:   rowStore,
		colStore:   colStore,
	}

	if _, _, err := rowStore.Get(meta.NumBits - 1); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("bigsi: self-check read failed: %w", err)
	}

	return idx, nil
}

// Close flushes and releases both stores. Idempotent (P5).
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.state == stateClosed {
		return nil
	}
	idx.state = stateClosed

	var firstErr error
	if idx.rowStore != nil {
		if err := idx.rowStore.Close(); err != nil {
			firstErr = err
		}
	}
	if idx.colStore != nil {
		if err := idx.colStore.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
