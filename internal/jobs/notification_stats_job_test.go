package jobs_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"orderflow/internal/core/application/notifications"
	"orderflow/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedStats notifications.Stats

func (s fixedStats) Stats() notifications.Stats { return notifications.Stats(s) }

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) records(t *testing.T) []map[string]any {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(b.buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal(line, &rec))
		out = append(out, rec)
	}
	return out
}

func TestNotificationStatsJob_RunLogsSnapshot(t *testing.T) {
	out := &syncBuffer{}
	logger := slog.New(slog.NewJSONHandler(out, nil))
	job := jobs.NewNotificationStatsJob(fixedStats{Dispatched: 3, Succeeded: 2, Failed: 1, Retries: 4, Queued: 7}, "", logger)

	job.Run()

	records := out.records(t)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "notification stats", rec["msg"])
	assert.Equal(t, "notification_stats_job", rec["component"])
	assert.InDelta(t, 3, rec["dispatched"], 0)
	assert.InDelta(t, 2, rec["succeeded"], 0)
	assert.InDelta(t, 1, rec["failed"], 0)
	assert.InDelta(t, 4, rec["retries"], 0)
	assert.InDelta(t, 7, rec["queued"], 0)
}

func TestNotificationStatsJob_StartAndStop(t *testing.T) {
	out := &syncBuffer{}
	job := jobs.NewNotificationStatsJob(fixedStats{}, "@every 1h", slog.New(slog.NewJSONHandler(out, nil)))

	require.NoError(t, job.Start())
	job.Stop()

	msgs := make([]any, 0)
	for _, rec := range out.records(t) {
		msgs = append(msgs, rec["msg"])
	}
	assert.Equal(t, []any{"Notification stats job started", "Notification stats job stopped"}, msgs)
}

func TestJobManager_RejectsBadSchedule(t *testing.T) {
	manager := jobs.NewJobManager(fixedStats{}, "every now and then", slog.New(slog.DiscardHandler))

	err := manager.StartAll()

	require.ErrorContains(t, err, "failed to start notification stats job")
}

func TestJobManager_StartAllStopAll(t *testing.T) {
	manager := jobs.NewJobManager(fixedStats{}, "@every 1h", slog.New(slog.DiscardHandler))

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
