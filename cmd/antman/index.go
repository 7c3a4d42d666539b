package main

import (
	"fmt"
	"os"

	"github.com/will-rowe/antman/internal/config"
	"github.com/will-rowe/antman/pkg/bigsi"
	"github.com/will-rowe/antman/pkg/sketch"
)

// openIndexForBuilding opens a fresh Building-state index under cfg's
// working directory, sized from cfg's sketch parameters. It fails if an
// index already exists there: this CLI never resumes a Building-state
// index across process invocations (that state only survives within
// one continuous process — see `antman daemon`).
func openIndexForBuilding(cfg *config.Config) (*bigsi.Index, error) {
	if err := os.MkdirAll(cfg.WorkingDir, 0o755); err != nil {
		return nil, fmt.Errorf("create working directory %s: %w", cfg.WorkingDir, err)
	}
	if _, err := bigsi.ReadSummary(cfg.WorkingDir); err == nil {
		return nil, fmt.Errorf("index at %s is already finalised", cfg.WorkingDir)
	}

	numBits, numHashes := sketch.EstimateParameters(cfg.BloomMaxElements, cfg.BloomFPRate)
	if cfg.SketchSize > 0 {
		numBits = cfg.SketchSize
	}

	return bigsi.OpenNew(cfg.WorkingDir, uint32(numBits), numHashes)
}
