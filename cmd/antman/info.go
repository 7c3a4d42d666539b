package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/will-rowe/antman/internal/config"
	"github.com/will-rowe/antman/pkg/bigsi"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "print index metadata without opening the stores for writing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
}

func runInfo() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	summary, err := bigsi.ReadSummary(cfg.WorkingDir)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	fmt.Printf("numBits:    %d\n", summary.NumBits)
	fmt.Printf("numHashes:  %d\n", summary.NumHashes)
	fmt.Printf("numColours: %d\n", summary.NumColours)
	fmt.Printf("indexed:    true\n")
	return nil
}
