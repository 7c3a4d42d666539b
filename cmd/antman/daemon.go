package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/will-rowe/antman/internal/config"
	"github.com/will-rowe/antman/internal/daemonctl"
	"github.com/will-rowe/antman/internal/ingest"
)

func newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "watch a directory and continuously insert new sequences into the index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon()
		},
	}
}

// runDaemon is the Go-native replacement for the original's
// startDaemon: fork/setsid is gone (no daemonizing a foreground
// process is left to the caller's process supervisor of choice), but
// the PID file, signal-driven shutdown, worker pool, and directory
// watcher all carry over. Finalise runs here, at clean shutdown,
// because this is the one process that actually held the Building
// state the whole time.
func runDaemon() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("daemon: %w", err)
	}

	log, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("daemon: create logger: %w", err)
	}
	defer log.Sync()

	if err := daemonctl.WritePIDFile(cfg.PIDFile); err != nil {
		return fmt.Errorf("daemon: %w", err)
	}
	defer daemonctl.RemovePIDFile(cfg.PIDFile)

	idx, err := openIndexForBuilding(cfg)
	if err != nil {
		return fmt.Errorf("daemon: %w", err)
	}

	pipeline, err := ingest.New(ingest.Config{
		WatchDir:  cfg.WatchDir,
		Workers:   4,
		K:         cfg.KSize,
		NumBits:   int(idx.NumBits()),
		NumHashes: idx.NumHashes(),
	}, idx, log)
	if err != nil {
		_ = idx.Close()
		return fmt.Errorf("daemon: %w", err)
	}

	log.Info("started the antman daemon", zap.String("watch_directory", cfg.WatchDir))

	ctx, cancel := daemonctl.WaitForShutdown(context.Background())
	defer cancel()

	if err := pipeline.Run(ctx); err != nil {
		_ = idx.Close()
		return fmt.Errorf("daemon: %w", err)
	}

	log.Info("sigterm received, shutting down the antman daemon")

	if err := idx.Finalise(); err != nil {
		_ = idx.Close()
		return fmt.Errorf("daemon: finalise: %w", err)
	}
	return idx.Close()
}
