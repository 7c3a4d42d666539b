package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/will-rowe/antman/internal/config"
)

func newShrinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shrink",
		Short: "finalise a Building-state index, transposing the matrix and releasing build-time memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShrink()
		},
	}
}

// runShrink is the manual escape hatch for a Building-state index left
// behind by a daemon that did not shut down cleanly (the daemon's own
// clean-shutdown path already calls Finalise itself — see cmd/antman's
// daemon command).
func runShrink() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("shrink: %w", err)
	}

	idx, err := openIndexForBuilding(cfg)
	if err != nil {
		return fmt.Errorf("shrink: %w", err)
	}

	if err := idx.Finalise(); err != nil {
		_ = idx.Close()
		return fmt.Errorf("shrink: %w", err)
	}
	return idx.Close()
}
