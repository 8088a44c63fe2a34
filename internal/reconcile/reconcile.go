// Package reconcile converges locally stored video status with the
// authoritative status reported by the video service.
package reconcile

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/jonathan/proverb-studio/internal/store"
	"github.com/jonathan/proverb-studio/internal/synthesia"
)

// VideoStore is the slice of the metadata store the reconciler needs.
type VideoStore interface {
	FindByStatus(ctx context.Context, status string) ([]store.VideoRecord, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// StatusClient fetches the authoritative status for one video job.
type StatusClient interface {
	GetVideoStatus(ctx context.Context, videoID string) (*synthesia.VideoStatus, error)
}

// CheckPending queries the service for every record still in progress and
// persists any status change. It returns the number of records updated.
// A failure on one record is logged and skipped; it never aborts the pass.
func CheckPending(ctx context.Context, videos VideoStore, client StatusClient, logger *slog.Logger) (int, error) {
	records, err := videos.FindByStatus(ctx, store.StatusInProgress)
	if err != nil {
		return 0, fmt.Errorf("failed to list in-progress videos: %w", err)
	}

	updated := 0
	for _, rec := range records {
		current, err := client.GetVideoStatus(ctx, rec.ID)
		if err != nil {
			logger.Error("failed to fetch video status", err, slog.String("id", rec.ID))
			continue
		}
		if current.Status == "" || current.Status == rec.Status {
			continue
		}
		if err := videos.UpdateStatus(ctx, rec.ID, current.Status); err != nil {
			logger.Error("failed to update video status", err, slog.String("id", rec.ID))
			continue
		}
		updated++
		logger.Info("updated video status",
			slog.String("id", rec.ID),
			slog.String("status", current.Status))
	}

	return updated, nil
}
