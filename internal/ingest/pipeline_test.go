package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/will-rowe/antman/pkg/bigsi"
)

func TestPipelineIngestsNewFile(t *testing.T) {
	watchDir := t.TempDir()
	indexDir := t.TempDir()

	idx, err := bigsi.OpenNew(indexDir, 64, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	p, err := New(Config{
		WatchDir:  watchDir,
		Workers:   2,
		K:         4,
		NumBits:   64,
		NumHashes: 2,
	}, idx, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	runDone := make(chan error, 1)
	go func() { runDone <- p.Run(ctx) }()

	if err := os.WriteFile(filepath.Join(watchDir, "seqA.fasta"), []byte("ACGTACGTACGT"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(time.Second)
	for {
		if idx.NumColours() > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for the pipeline to insert the new file")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	<-runDone
}
