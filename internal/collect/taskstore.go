package collect

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tumkwe/invest/internal/contracts"
	"github.com/tumkwe/invest/pkg/logger"
)

// snapshotVersion tags the task snapshot format. Bump when the task
// shape changes incompatibly; unknown versions are discarded.
const snapshotVersion = 1

const snapshotFile = "collection_tasks.json"

// taskSnapshot is the on-disk task list format.
type taskSnapshot struct {
	Version int               `json:"version"`
	SavedAt time.Time         `json:"saved_at"`
	Tasks   []*contracts.Task `json:"tasks"`
}

// TaskStore persists the task list as a JSON snapshot so that schedules
// survive restarts. Persistence is best-effort: a missing, corrupt, or
// incompatible snapshot yields an empty task list, and write failures
// are logged without interrupting collection.
type TaskStore struct {
	path   string
	logger *logger.Logger
}

// NewTaskStore creates a task store writing under dataDir.
func NewTaskStore(dataDir string, log *logger.Logger) *TaskStore {
	return &TaskStore{
		path:   filepath.Join(dataDir, snapshotFile),
		logger: log.WithField("module", "taskstore"),
	}
}

// Load reads the task snapshot. Any failure to produce a usable task
// list is logged and an empty list returned; the caller reseeds tasks
// from its symbol set.
func (s *TaskStore) Load() []*contracts.Task {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.WithError(err).WithField("path", s.path).Warn("Failed to read task snapshot")
		}
		return nil
	}

	var snapshot taskSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		s.logger.WithError(err).WithField("path", s.path).Warn("Corrupt task snapshot, starting fresh")
		return nil
	}

	if snapshot.Version != snapshotVersion {
		s.logger.WithFields(map[string]interface{}{
			"path":    s.path,
			"version": snapshot.Version,
		}).Warn("Unsupported task snapshot version, starting fresh")
		return nil
	}

	// Drop entries that do not survive a round trip (unknown data
	// types, missing schedule).
	tasks := make([]*contracts.Task, 0, len(snapshot.Tasks))
	for _, task := range snapshot.Tasks {
		if task == nil || !task.DataType.Valid() || task.Interval <= 0 {
			s.logger.WithField("path", s.path).Warn("Skipping malformed task in snapshot")
			continue
		}
		tasks = append(tasks, task)
	}

	s.logger.WithField("count", len(tasks)).Debug("Loaded task snapshot")
	return tasks
}

// Save writes the task snapshot atomically (temp file plus rename).
func (s *TaskStore) Save(tasks []*contracts.Task) error {
	snapshot := taskSnapshot{
		Version: snapshotVersion,
		SavedAt: time.Now(),
		Tasks:   tasks,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write task snapshot: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace task snapshot: %w", err)
	}

	return nil
}
