package bigsi

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Canonical on-disk basenames for an index directory (spec §6.1).
const (
	metaFileName = "bigsi.meta"
	rowFileName  = "bigsi.bv.db"
	colFileName  = "bigsi.col.db"
)

// metadata is the structured descriptor written once at Finalise and
// never mutated thereafter. Field names match spec §6.2 verbatim so the
// TOML file is self-describing.
type metadata struct {
	DBDirectory    string `toml:"db_directory"`
	Metadata       string `toml:"metadata"`
	Bitvectors     string `toml:"bitvectors"`
	Colours        string `toml:"colours"`
	NumBits        uint32 `toml:"numBits"`
	NumHashes      int    `toml:"numHashes"`
	ColourIterator uint32 `toml:"colourIterator"`
}

func writeMetadata(path string, m metadata) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bigsi: create metadata file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("bigsi: encode metadata: %w", err)
	}
	return nil
}

// Summary is the read-only view of an index's metadata file, for
// callers that want to report on an index without opening its stores.
type Summary struct {
	NumBits    uint32
	NumHashes  int
	NumColours uint32
}

// ReadSummary reads and validates the metadata file under dir without
// opening the row or colour stores.
func ReadSummary(dir string) (Summary, error) {
	m, err := readMetadata(filepath.Join(dir, metaFileName))
	if err != nil {
		return Summary{}, err
	}
	return Summary{NumBits: m.NumBits, NumHashes: m.NumHashes, NumColours: m.ColourIterator}, nil
}

func readMetadata(path string) (metadata, error) {
	var m metadata
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return metadata{}, fmt.Errorf("bigsi: decode metadata: %w", err)
	}

	if m.DBDirectory == "" || m.Metadata == "" || m.Bitvectors == "" || m.Colours == "" {
		return metadata{}, fmt.Errorf("bigsi: metadata missing required field")
	}
	if m.NumBits == 0 {
		return metadata{}, fmt.Errorf("bigsi: metadata has non-positive numBits")
	}
	if m.NumHashes <= 0 {
		return metadata{}, fmt.Errorf("bigsi: metadata has non-positive numHashes")
	}
	if m.ColourIterator == 0 {
		return metadata{}, fmt.Errorf("bigsi: metadata has non-positive colourIterator")
	}

	return m, nil
}
