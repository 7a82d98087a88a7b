package importers

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mrlokans/hikam/internal/search"
	"github.com/mrlokans/hikam/internal/services"
)

const DefaultWatchDelay = 2 * time.Second

// WatcherConfig configures a directory Watcher.
type WatcherConfig struct {
	Dir    string
	UserID uint
	Delay  time.Duration // Quiet period before changed files are imported
	// ImportExisting imports the files already in Dir when Run starts.
	ImportExisting bool
	// OnImport is called after each file import, if set.
	OnImport func(path string, result services.ImportResult, err error)
}

// Watcher imports quote files written to a directory. Bursts of changes
// are collected and imported together once the directory is quiet.
type Watcher struct {
	cfg       WatcherConfig
	pipeline  *Pipeline
	debouncer *search.Debouncer

	mu      sync.Mutex
	pending map[string]struct{}
}

func NewWatcher(pipeline *Pipeline, cfg WatcherConfig) *Watcher {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultWatchDelay
	}
	return &Watcher{
		cfg:       cfg,
		pipeline:  pipeline,
		debouncer: search.NewDebouncer(cfg.Delay),
		pending:   make(map[string]struct{}),
	}
}

// Run watches the directory until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.cfg.Dir, err)
	}
	log.Printf("[IMPORT] Watching %s for quote files (user %d)", w.cfg.Dir, w.cfg.UserID)

	if w.cfg.ImportExisting {
		w.queueExisting(ctx)
	}

	defer w.debouncer.Cancel()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !Supported(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.queue(ctx, event.Name)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("[IMPORT] Watch error: %v", err)
		}
	}
}

func (w *Watcher) queueExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		log.Printf("[IMPORT] Failed to list %s: %v", w.cfg.Dir, err)
		return
	}
	for _, e := range entries {
		if !e.IsDir() && Supported(e.Name()) {
			w.queue(ctx, filepath.Join(w.cfg.Dir, e.Name()))
		}
	}
}

func (w *Watcher) queue(ctx context.Context, path string) {
	w.mu.Lock()
	w.pending[path] = struct{}{}
	w.mu.Unlock()
	w.debouncer.Trigger(func() { w.flush(ctx) })
}

// flush imports every pending file in name order.
func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	sort.Strings(paths)
	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			continue
		}
		result, err := w.pipeline.ImportFile(ctx, w.cfg.UserID, path)
		if err != nil {
			log.Printf("[IMPORT] %s: %v", filepath.Base(path), err)
		} else {
			log.Printf("[IMPORT] %s: imported %d, skipped %d, failed %d",
				filepath.Base(path), result.Imported, result.Skipped, result.Failed)
		}
		if w.cfg.OnImport != nil {
			w.cfg.OnImport(path, result, err)
		}
	}
}
