// Package ingest watches a directory for new sequence files and feeds
// them into a BIGSI index through a bounded worker pool. It is the
// external collaborator the core treats as out of scope: nothing in
// pkg/bigsi depends on it, it only gives the core a realistic caller.
package ingest

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/will-rowe/antman/pkg/bigsi"
	"github.com/will-rowe/antman/pkg/bloomfilter"
	"github.com/will-rowe/antman/pkg/sketch"
)

// Pipeline watches a directory and inserts every new file into a
// shared Index, serialising calls to it behind a mutex (the Index's
// own lock — see pkg/bigsi).
type Pipeline struct {
	log     *zap.Logger
	watcher *fsnotify.Watcher
	index   *bigsi.Index

	workers   int
	k         int
	numBits   int
	numHashes int
	paths     chan string
}

// Config configures a Pipeline.
type Config struct {
	WatchDir  string
	Workers   int
	K         int
	NumBits   int
	NumHashes int
}

// New creates a Pipeline watching cfg.WatchDir and inserting sketched
// files into index. The caller retains ownership of index and logger.
func New(cfg Config, index *bigsi.Index, log *zap.Logger) (*Pipeline, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("ingest: create watcher: %w", err)
	}
	if err := watcher.Add(cfg.WatchDir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("ingest: watch %s: %w", cfg.WatchDir, err)
	}

	return &Pipeline{
		log:       log,
		watcher:   watcher,
		index:     index,
		workers:   cfg.Workers,
		k:         cfg.K,
		numBits:   cfg.NumBits,
		numHashes: cfg.NumHashes,
		paths:     make(chan string, cfg.Workers*4),
	}, nil
}

// Run starts the worker pool and the fsnotify event loop, blocking
// until ctx is cancelled. It always closes the underlying watcher
// before returning.
func (p *Pipeline) Run(ctx context.Context) error {
	defer p.watcher.Close()

	done := make(chan struct{})
	for i := 0; i < p.workers; i++ {
		go p.worker(done)
	}
	defer func() {
		close(p.paths)
		for i := 0; i < p.workers; i++ {
			<-done
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-p.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			select {
			case p.paths <- event.Name:
			case <-ctx.Done():
				return nil
			}
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return nil
			}
			p.log.Error("watcher error", zap.Error(err))
		}
	}
}

func (p *Pipeline) worker(done chan<- struct{}) {
	defer func() { done <- struct{}{} }()

	for path := range p.paths {
		if err := p.ingestOne(path); err != nil {
			p.log.Error("ingest failed", zap.String("path", path), zap.Error(err))
		}
	}
}

func (p *Pipeline) ingestOne(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ingest: read %s: %w", path, err)
	}

	rec := sketch.Record{ID: path, Sequence: data}
	filter, err := sketch.Sketch(rec, p.k, p.numBits, p.numHashes)
	if err != nil {
		return fmt.Errorf("ingest: sketch %s: %w", path, err)
	}

	return p.index.Insert(map[string]*bloomfilter.Filter{path: filter})
}
