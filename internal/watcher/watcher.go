package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kdipaolo/handover-flow/internal/logger"
)

// settleDelay gives the writer (network share sync, drag and drop) time to
// finish before the transcript is read.
const settleDelay = 500 * time.Millisecond

type implWatcher struct {
	inboxDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// Start begins monitoring the inbox directory for new transcript files
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inboxDir)
	w.logger.Info(ctx, "Supported formats: .txt, .docx")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing analyses to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if event.Op&fsnotify.Create == fsnotify.Create {
				if !isTranscriptFile(event.Name) {
					w.logger.Debug(ctx, "Ignoring non-transcript file: %s", event.Name)
					continue
				}

				w.logger.Info(ctx, "New transcript detected: %s", event.Name)

				// Acquire semaphore slot (blocks if max concurrent reached)
				select {
				case w.semaphore <- struct{}{}:
					w.wg.Add(1)
					go func(filePath string) {
						defer w.wg.Done()
						defer func() { <-w.semaphore }()

						// Settle off the event loop so other events and
						// cancellation are not stalled behind the delay.
						select {
						case <-time.After(settleDelay):
						case <-ctx.Done():
							return
						}

						if err := w.handler(ctx, filePath); err != nil {
							w.logger.Error(ctx, "Failed to analyze %s: %v", filePath, err)
						}
					}(event.Name)
				case <-ctx.Done():
					w.wg.Wait()
					return ctx.Err()
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// isTranscriptFile checks for a supported transcript extension. Hidden
// files (Word lock files like ~$foo.docx, .DS_Store) are skipped.
func isTranscriptFile(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~$") {
		return false
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".docx":
		return true
	}
	return false
}
