package store

import (
	"time"

	"github.com/jonathan/proverb-studio/internal/synthesia"
)

// Lifecycle status values recognized by the reconciler. The status column
// is open-ended text; the service may report values outside this set.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusComplete   = "complete"
	StatusFailed     = "failed"
	StatusUnknown    = "unknown"
)

// VideoRecord is one persisted video job. The id is the external service's
// job identifier, adopted as the primary key.
type VideoRecord struct {
	ID         string
	Proverb    string
	Story      string
	Screenplay string
	Status     string
	CreatedAt  time.Time
}

// NewRecord builds a VideoRecord from a service response and the texts that
// produced it. Status defaults to "unknown" and the creation time falls
// back to the current wall clock when the response does not report one.
func NewRecord(proverb, story, screenplay string, resp *synthesia.VideoResponse) VideoRecord {
	status := resp.Status
	if status == "" {
		status = StatusUnknown
	}

	createdAt := time.Now()
	if resp.CreatedAt != nil {
		createdAt = time.Unix(int64(*resp.CreatedAt), 0)
	}

	return VideoRecord{
		ID:         resp.ID,
		Proverb:    proverb,
		Story:      story,
		Screenplay: screenplay,
		Status:     status,
		CreatedAt:  createdAt,
	}
}
