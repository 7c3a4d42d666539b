package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/will-rowe/antman/internal/config"
	"github.com/will-rowe/antman/internal/daemonctl"
)

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "send SIGTERM to the running antman daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStop()
		},
	}
}

func runStop() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	if err := daemonctl.Stop(cfg.PIDFile); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	return nil
}
