// Package jobs contains the daemon's background reindex worker.
package jobs

import (
	"context"
	"log"
	"time"
)

// IndexBuilder rebuilds the knowledge index from its document source.
type IndexBuilder interface {
	BuildIndex(ctx context.Context) error
}

// ReindexWorker periodically rebuilds the knowledge index so a running
// daemon picks up corpus changes. The vector index serializes rebuilds
// against searches internally, so reviews keep working mid-rebuild.
type ReindexWorker struct {
	builder      IndexBuilder
	pollInterval time.Duration
	buildTimeout time.Duration
	stopChan     chan struct{}
	doneChan     chan struct{}
}

// NewReindexWorker creates a new ReindexWorker instance. Each rebuild
// runs under buildTimeout so a stalled embedding call cannot hang the
// worker past its next tick indefinitely.
func NewReindexWorker(builder IndexBuilder, pollInterval, buildTimeout time.Duration) *ReindexWorker {
	return &ReindexWorker{
		builder:      builder,
		pollInterval: pollInterval,
		buildTimeout: buildTimeout,
		stopChan:     make(chan struct{}),
		doneChan:     make(chan struct{}),
	}
}

// Start begins the worker's polling loop
func (w *ReindexWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	defer close(w.doneChan)

	log.Printf("reindex worker started with interval: %v", w.pollInterval)

	for {
		select {
		case <-ctx.Done():
			log.Println("reindex worker stopped: context cancelled")
			return
		case <-w.stopChan:
			log.Println("reindex worker stopped: stop signal received")
			return
		case <-ticker.C:
			// An indexing failure leaves the previous index in place; the
			// next tick retries.
			w.rebuild(ctx)
		}
	}
}

func (w *ReindexWorker) rebuild(ctx context.Context) {
	buildCtx, cancel := context.WithTimeout(ctx, w.buildTimeout)
	defer cancel()

	if err := w.builder.BuildIndex(buildCtx); err != nil {
		log.Printf("error rebuilding knowledge index: %v", err)
	}
}

// Stop gracefully stops the worker
func (w *ReindexWorker) Stop() {
	close(w.stopChan)
	<-w.doneChan
	log.Println("reindex worker shutdown complete")
}
