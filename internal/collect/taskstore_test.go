package collect

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tumkwe/invest/internal/contracts"
)

func TestTaskStore_RoundTrip(t *testing.T) {
	dataDir := t.TempDir()
	store := NewTaskStore(dataDir, testLogger())

	tasks := []*contracts.Task{
		contracts.NewTask(contracts.DataTypeMarketData, "AAPL", 4*time.Hour),
		contracts.NewTask(contracts.DataTypeNews, "MSFT", 6*time.Hour),
	}
	tasks[0].FailureCount = 2

	require.NoError(t, store.Save(tasks))

	loaded := NewTaskStore(dataDir, testLogger()).Load()
	require.Len(t, loaded, 2)

	byName := make(map[string]*contracts.Task)
	for _, task := range loaded {
		byName[task.Name] = task
	}
	require.Contains(t, byName, "market_data_AAPL")
	assert.Equal(t, 4*time.Hour, byName["market_data_AAPL"].Interval)
	assert.Equal(t, 2, byName["market_data_AAPL"].FailureCount)
	assert.WithinDuration(t, tasks[1].NextRun, byName["news_MSFT"].NextRun, time.Second)
}

func TestTaskStore_MissingFile(t *testing.T) {
	store := NewTaskStore(t.TempDir(), testLogger())

	assert.Empty(t, store.Load())
}

func TestTaskStore_CorruptFile(t *testing.T) {
	dataDir := t.TempDir()
	path := filepath.Join(dataDir, snapshotFile)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewTaskStore(dataDir, testLogger())

	assert.Empty(t, store.Load())
}

func TestTaskStore_UnsupportedVersion(t *testing.T) {
	dataDir := t.TempDir()
	path := filepath.Join(dataDir, snapshotFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99, "tasks": [{}]}`), 0o644))

	store := NewTaskStore(dataDir, testLogger())

	assert.Empty(t, store.Load())
}

func TestTaskStore_SkipsMalformedTasks(t *testing.T) {
	dataDir := t.TempDir()
	store := NewTaskStore(dataDir, testLogger())

	good := contracts.NewTask(contracts.DataTypeMarketData, "AAPL", 4*time.Hour)
	bad := &contracts.Task{Name: "mystery", DataType: "crypto", Interval: time.Hour}
	noSchedule := &contracts.Task{Name: "news_X", DataType: contracts.DataTypeNews}

	require.NoError(t, store.Save([]*contracts.Task{good, bad, noSchedule}))

	loaded := store.Load()
	require.Len(t, loaded, 1)
	assert.Equal(t, "market_data_AAPL", loaded[0].Name)
}
