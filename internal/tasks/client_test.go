package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(filepath.Join(t.TempDir(), "queue", "tasks.db"), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestPathBeside(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "naat-tasks.db"), PathBeside(filepath.Join("data", "naat.db")))
	assert.Equal(t, "content-tasks", PathBeside("content"))
}

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	tasksDBPath := filepath.Join(tmpDir, "nested", "tasks.db")

	client, err := NewClient(tasksDBPath, DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, client)

	_, err = os.Stat(tasksDBPath)
	assert.NoError(t, err, "tasks database should be created")

	assert.NoError(t, client.Close())
}

func TestClientStartStop(t *testing.T) {
	client := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client.Start(ctx)
	client.Start(ctx) // second start is a no-op

	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	assert.True(t, client.Stop(stopCtx), "stop should succeed gracefully")
}

func TestClientStopWithoutStart(t *testing.T) {
	client := newTestClient(t)
	assert.True(t, client.Stop(context.Background()))
}

type fakeRebuilder struct {
	mu       sync.Mutex
	entities []string
	err      error
	done     chan struct{}
}

func (f *fakeRebuilder) Rebuild(ctx context.Context, entity string) (int, error) {
	f.mu.Lock()
	f.entities = append(f.entities, entity)
	f.mu.Unlock()
	if f.done != nil {
		f.done <- struct{}{}
	}
	return 3, f.err
}

func TestRebuildSearchKeysTask_RunsThroughQueue(t *testing.T) {
	client := newTestClient(t)

	rebuilder := &fakeRebuilder{done: make(chan struct{}, 1)}
	client.Register(NewRebuildSearchKeysQueue(rebuilder))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client.Start(ctx)

	ids, err := client.Enqueue(RebuildSearchKeysTask{Entity: "kalaam"})
	require.NoError(t, err)
	require.Len(t, ids, 1)

	select {
	case <-rebuilder.done:
	case <-time.After(5 * time.Second):
		t.Fatal("rebuild task was not executed within timeout")
	}

	rebuilder.mu.Lock()
	assert.Equal(t, []string{"kalaam"}, rebuilder.entities)
	rebuilder.mu.Unlock()

	require.Eventually(t, func() bool {
		status, err := client.Status(ctx, ids[0])
		return err == nil && status == backlite.TaskStatusSuccess
	}, 5*time.Second, 20*time.Millisecond)
}

func TestRebuildSearchKeysProcessor(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		err := RebuildSearchKeysProcessor(nil)(context.Background(), RebuildSearchKeysTask{})
		assert.Error(t, err)
	})

	t.Run("propagates failure", func(t *testing.T) {
		rebuilder := &fakeRebuilder{err: errors.New("database is locked")}
		err := RebuildSearchKeysProcessor(rebuilder)(context.Background(), RebuildSearchKeysTask{})
		assert.EqualError(t, err, "database is locked")
		assert.Equal(t, []string{""}, rebuilder.entities)
	})
}

type fakeCleaner struct {
	days int
}

func (f *fakeCleaner) Cleanup(retentionDays int) (int64, error) {
	f.days = retentionDays
	return 7, nil
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	cleaner := &fakeCleaner{}

	require.NoError(t, CleanupAuditEventsProcessor(cleaner)(context.Background(), CleanupAuditEventsTask{}))
	assert.Equal(t, DefaultAuditRetentionDays, cleaner.days)

	require.NoError(t, CleanupAuditEventsProcessor(cleaner)(context.Background(), CleanupAuditEventsTask{RetentionDays: 30}))
	assert.Equal(t, 30, cleaner.days)

	assert.Error(t, CleanupAuditEventsProcessor(nil)(context.Background(), CleanupAuditEventsTask{}))
}

func TestTaskConfigs(t *testing.T) {
	rebuild := RebuildSearchKeysTask{}.Config()
	assert.Equal(t, "rebuild_search_keys", rebuild.Name)
	assert.Equal(t, 30*time.Minute, rebuild.Timeout)
	assert.NotNil(t, rebuild.Retention)

	cleanup := CleanupAuditEventsTask{}.Config()
	assert.Equal(t, "cleanup_audit_events", cleanup.Name)
	assert.Equal(t, 3, cleanup.MaxAttempts)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}
