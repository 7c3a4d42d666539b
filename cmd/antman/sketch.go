package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/will-rowe/antman/internal/config"
	"github.com/will-rowe/antman/pkg/bloomfilter"
	"github.com/will-rowe/antman/pkg/sketch"
)

func newSketchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sketch <file>",
		Short: "sketch a sequence file and insert it into a fresh index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSketch(args[0])
		},
	}
}

// runSketch is a one-shot convenience: a standalone CLI invocation
// cannot resume another process's Building-state index (see
// openIndexForBuilding), so it builds, inserts, and finalises in a
// single step. Accumulating many sequences over time is `antman
// daemon`'s job, via internal/ingest.
func runSketch(path string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("sketch: %w", err)
	}

	idx, err := openIndexForBuilding(cfg)
	if err != nil {
		return fmt.Errorf("sketch: %w", err)
	}
	defer idx.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("sketch: read %s: %w", path, err)
	}

	filter, err := sketch.Sketch(sketch.Record{ID: path, Sequence: data}, cfg.KSize, int(idx.NumBits()), idx.NumHashes())
	if err != nil {
		return fmt.Errorf("sketch: %w", err)
	}

	if err := idx.Insert(map[string]*bloomfilter.Filter{path: filter}); err != nil {
		return fmt.Errorf("sketch: %w", err)
	}

	return idx.Finalise()
}
