package reconcile

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"github.com/jonathan/proverb-studio/internal/store"
	"github.com/jonathan/proverb-studio/internal/synthesia"
)

// fakeStore is an in-memory VideoStore keyed by record id.
type fakeStore struct {
	records []store.VideoRecord
	listErr error
	updates map[string]string
}

func (f *fakeStore) FindByStatus(_ context.Context, status string) ([]store.VideoRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var matched []store.VideoRecord
	for _, rec := range f.records {
		if rec.Status == status {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id, status string) error {
	if f.updates == nil {
		f.updates = make(map[string]string)
	}
	f.updates[id] = status
	return nil
}

// fakeClient maps video ids to scripted statuses or errors.
type fakeClient struct {
	statuses map[string]string
	errs     map[string]error
	queried  []string
}

func (f *fakeClient) GetVideoStatus(_ context.Context, videoID string) (*synthesia.VideoStatus, error) {
	f.queried = append(f.queried, videoID)
	if err, ok := f.errs[videoID]; ok {
		return nil, err
	}
	return &synthesia.VideoStatus{ID: videoID, Status: f.statuses[videoID]}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard))
}

func TestCheckPending_UpdatesChangedRecord(t *testing.T) {
	videos := &fakeStore{records: []store.VideoRecord{
		{ID: "vid1", Status: store.StatusInProgress},
	}}
	client := &fakeClient{statuses: map[string]string{"vid1": store.StatusComplete}}

	updated, err := CheckPending(context.Background(), videos, client, testLogger())
	require.NoError(t, err)

	assert.Equal(t, 1, updated)
	assert.Equal(t, store.StatusComplete, videos.updates["vid1"])
}

func TestCheckPending_OnlyInProgressRecordsAreQueried(t *testing.T) {
	videos := &fakeStore{records: []store.VideoRecord{
		{ID: "vid1", Status: store.StatusInProgress},
		{ID: "vid2", Status: store.StatusInProgress},
		{ID: "vid3", Status: store.StatusComplete},
		{ID: "vid4", Status: store.StatusPending},
	}}
	client := &fakeClient{statuses: map[string]string{
		"vid1": store.StatusComplete,
		"vid2": store.StatusInProgress,
	}}

	updated, err := CheckPending(context.Background(), videos, client, testLogger())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"vid1", "vid2"}, client.queried)
	assert.Equal(t, 1, updated, "unchanged status must not count as an update")
	assert.NotContains(t, videos.updates, "vid2")
}

func TestCheckPending_EmptyStatusIsIgnored(t *testing.T) {
	videos := &fakeStore{records: []store.VideoRecord{
		{ID: "vid1", Status: store.StatusInProgress},
	}}
	client := &fakeClient{statuses: map[string]string{"vid1": ""}}

	updated, err := CheckPending(context.Background(), videos, client, testLogger())
	require.NoError(t, err)
	assert.Zero(t, updated)
	assert.Empty(t, videos.updates)
}

func TestCheckPending_PerRecordFailureDoesNotAbortPass(t *testing.T) {
	videos := &fakeStore{records: []store.VideoRecord{
		{ID: "vid1", Status: store.StatusInProgress},
		{ID: "vid2", Status: store.StatusInProgress},
	}}
	client := &fakeClient{
		statuses: map[string]string{"vid2": store.StatusFailed},
		errs:     map[string]error{"vid1": errors.New("gateway timeout")},
	}

	updated, err := CheckPending(context.Background(), videos, client, testLogger())
	require.NoError(t, err)

	assert.Equal(t, 1, updated)
	assert.Len(t, client.queried, 2, "a transport failure must not stop the batch")
	assert.Equal(t, store.StatusFailed, videos.updates["vid2"])
}

func TestCheckPending_ListFailurePropagates(t *testing.T) {
	videos := &fakeStore{listErr: errors.New("connection refused")}
	client := &fakeClient{}

	_, err := CheckPending(context.Background(), videos, client, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list in-progress videos")
}

func TestWatcher_HaltsWhenStoreUnavailable(t *testing.T) {
	connect := func(_ context.Context) (VideoStore, error) {
		return nil, errors.New("connection refused")
	}
	w := NewWatcher(DefaultInterval, connect, &fakeClient{}, testLogger())

	err := w.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open metadata store")
}

func TestNewWatcher_DefaultInterval(t *testing.T) {
	w := NewWatcher(0, nil, nil, testLogger())
	assert.Equal(t, DefaultInterval, w.interval)
}
