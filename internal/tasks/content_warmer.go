package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/aved-sa/aved-web/internal/content"
	"github.com/aved-sa/aved-web/internal/logging"
)

// Refresher reloads one static content type into the cache.
// *content.Service implements it.
type Refresher interface {
	Refresh(ctx context.Context, t content.Type) error
}

// ContentWarmer periodically refreshes the cached static pages so visitors
// are not the ones waiting on the backend.
type ContentWarmer struct {
	refresher Refresher
	interval  time.Duration
	timeout   time.Duration
	logger    *logging.Logger
	done      chan struct{}
	wg        sync.WaitGroup
	once      sync.Once
}

// NewContentWarmer creates a warmer. A zero interval disables it.
func NewContentWarmer(refresher Refresher, interval time.Duration) *ContentWarmer {
	return &ContentWarmer{
		refresher: refresher,
		interval:  interval,
		timeout:   30 * time.Second,
		logger:    logging.GetLogger(),
		done:      make(chan struct{}),
	}
}

// Start begins warming in the background
func (w *ContentWarmer) Start() {
	if w.interval <= 0 {
		w.logger.Info("Content warmer disabled")
		return
	}
	w.wg.Add(1)
	go w.runPeriodically()
}

// Stop gracefully stops the warmer. It is safe to call more than once.
func (w *ContentWarmer) Stop() {
	w.once.Do(func() { close(w.done) })
	w.wg.Wait()
}

func (w *ContentWarmer) runPeriodically() {
	defer w.wg.Done()

	// Run immediately on startup
	w.warm()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.warm()
		case <-w.done:
			w.logger.Info("Content warmer stopped")
			return
		}
	}
}

// warm refreshes every content type; one failure does not stop the others
func (w *ContentWarmer) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	failed := 0
	for _, t := range content.Types {
		if err := w.refresher.Refresh(ctx, t); err != nil {
			failed++
			w.logger.Warn("Content warmer: %v", err)
		}
	}
	w.logger.Debug("Content warmer refreshed %d/%d documents", len(content.Types)-failed, len(content.Types))
}
