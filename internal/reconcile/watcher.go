package reconcile

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

// DefaultInterval is the pause between reconciliation passes.
const DefaultInterval = 60 * time.Second

// ConnectFunc opens a metadata store for one reconciliation pass.
type ConnectFunc func(ctx context.Context) (VideoStore, error)

// Closer is implemented by stores that hold a connection pool.
type Closer interface {
	Close()
}

// Watcher runs reconciliation passes on a fixed interval until the process
// is terminated. Each pass opens a fresh store connection and closes it
// afterwards.
type Watcher struct {
	interval time.Duration
	connect  ConnectFunc
	client   StatusClient
	logger   *slog.Logger
}

// NewWatcher builds a watcher. A non-positive interval falls back to
// DefaultInterval.
func NewWatcher(interval time.Duration, connect ConnectFunc, client StatusClient, logger *slog.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		interval: interval,
		connect:  connect,
		client:   client,
		logger:   logger,
	}
}

// Run loops forever. It returns only when a pass cannot obtain or query the
// store; per-record service failures are handled inside CheckPending.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		if err := w.pass(ctx); err != nil {
			return err
		}
		time.Sleep(w.interval)
	}
}

func (w *Watcher) pass(ctx context.Context) error {
	videos, err := w.connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to open metadata store: %w", err)
	}
	if closer, ok := videos.(Closer); ok {
		defer closer.Close()
	}

	updated, err := CheckPending(ctx, videos, w.client, w.logger)
	if err != nil {
		return err
	}
	w.logger.Info("reconciliation pass complete", slog.Int("updated", updated))

	return nil
}
