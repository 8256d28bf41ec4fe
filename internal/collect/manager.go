package collect

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tumkwe/invest/internal/contracts"
	"github.com/tumkwe/invest/internal/validate"
	"github.com/tumkwe/invest/pkg/config"
	"github.com/tumkwe/invest/pkg/logger"
	"github.com/tumkwe/invest/pkg/metrics"
)

// Manager owns the recurring task list and drives collection cycles. A
// cycle polls for due tasks, dispatches each one, reschedules it a full
// interval after completion whether it succeeded or not, and snapshots
// the task list. One coarse mutex guards tasks, symbols, and reports;
// cycles are short and contention is not a concern at this scale.
type Manager struct {
	mu      sync.Mutex
	tasks   map[string]*contracts.Task
	symbols map[string]struct{}
	reports map[string]*contracts.ValidationReport

	dispatcher *Dispatcher
	taskStore  *TaskStore
	cfg        config.CollectionConfig
	metrics    *metrics.Recorder
	logger     *logger.Logger

	cron    *cron.Cron
	cycleMu sync.Mutex
	running bool
}

// NewManager creates a collection manager and restores any persisted
// task schedule.
func NewManager(
	dispatcher *Dispatcher,
	taskStore *TaskStore,
	cfg config.CollectionConfig,
	recorder *metrics.Recorder,
	log *logger.Logger,
) *Manager {
	m := &Manager{
		tasks:      make(map[string]*contracts.Task),
		symbols:    make(map[string]struct{}),
		reports:    make(map[string]*contracts.ValidationReport),
		dispatcher: dispatcher,
		taskStore:  taskStore,
		cfg:        cfg,
		metrics:    recorder,
		logger:     log.WithField("module", "manager"),
		cron:       cron.New(cron.WithSeconds()),
	}

	for _, task := range taskStore.Load() {
		m.tasks[task.Name] = task
		for _, symbol := range task.Symbols {
			m.symbols[symbol] = struct{}{}
		}
	}

	return m
}

// AddSymbol starts monitoring a symbol: one task per data type, all due
// immediately. Adding a symbol twice is a no-op; existing schedules are
// kept.
func (m *Manager) AddSymbol(symbol string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.symbols[symbol]; exists {
		return
	}
	m.symbols[symbol] = struct{}{}

	for _, dataType := range contracts.AllDataTypes() {
		task := contracts.NewTask(dataType, symbol, m.cfg.RefreshInterval(string(dataType)))
		if _, exists := m.tasks[task.Name]; !exists {
			m.tasks[task.Name] = task
		}
	}

	m.logger.WithField("symbol", symbol).Info("Symbol added to collection")
	m.saveLocked()
}

// RemoveSymbol stops monitoring a symbol and drops its tasks and
// reports. Persisted records are untouched.
func (m *Manager) RemoveSymbol(symbol string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.symbols[symbol]; !exists {
		return
	}
	delete(m.symbols, symbol)

	for name, task := range m.tasks {
		if task.HasSymbol(symbol) {
			delete(m.tasks, name)
		}
	}
	for key, report := range m.reports {
		if report.Symbol == symbol {
			delete(m.reports, key)
		}
	}

	m.logger.WithField("symbol", symbol).Info("Symbol removed from collection")
	m.saveLocked()
}

// Symbols returns the monitored symbols in sorted order.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	symbols := make([]string, 0, len(m.symbols))
	for symbol := range m.symbols {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Tasks returns a copy of every task, sorted by next run time.
func (m *Manager) Tasks() []*contracts.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]*contracts.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		copied := *task
		tasks = append(tasks, &copied)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].NextRun.Before(tasks[j].NextRun)
	})
	return tasks
}

// DueTasks returns the tasks due at the given time, highest priority
// first and earliest schedule breaking ties.
func (m *Manager) DueTasks(now time.Time) []*contracts.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dueTasksLocked(now)
}

func (m *Manager) dueTasksLocked(now time.Time) []*contracts.Task {
	var due []*contracts.Task
	for _, task := range m.tasks {
		if task.Due(now) {
			due = append(due, task)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].Priority != due[j].Priority {
			return due[i].Priority > due[j].Priority
		}
		return due[i].NextRun.Before(due[j].NextRun)
	})
	return due
}

// CollectNow runs collection for one symbol immediately, regardless of
// schedule. With no data types given, every category runs. Matching
// tasks are rescheduled a full interval from now.
func (m *Manager) CollectNow(ctx context.Context, symbol string, dataTypes ...contracts.DataType) error {
	if len(dataTypes) == 0 {
		dataTypes = contracts.AllDataTypes()
	}

	var firstErr error
	for _, dataType := range dataTypes {
		if !dataType.Valid() {
			return fmt.Errorf("unknown data type: %s", dataType)
		}

		task := &contracts.Task{
			Name:     fmt.Sprintf("%s_%s", dataType, symbol),
			DataType: dataType,
			Symbols:  []string{symbol},
			Interval: m.cfg.RefreshInterval(string(dataType)),
		}

		err := m.runTask(ctx, task)
		if err != nil && firstErr == nil {
			firstErr = err
		}

		m.mu.Lock()
		if scheduled, exists := m.tasks[task.Name]; exists {
			scheduled.Advance(time.Now())
			if err != nil {
				scheduled.FailureCount++
			} else {
				scheduled.FailureCount = 0
			}
		}
		m.saveLocked()
		m.mu.Unlock()
	}

	return firstErr
}

// Summary combines every stored validation report into one aggregate.
func (m *Manager) Summary() *contracts.CombinedReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	reports := make([]*contracts.ValidationReport, 0, len(m.reports))
	for _, report := range m.reports {
		reports = append(reports, report)
	}
	return validate.Combine(reports)
}

// Reports returns a copy of the latest validation report per
// (data type, symbol).
func (m *Manager) Reports() []*contracts.ValidationReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	reports := make([]*contracts.ValidationReport, 0, len(m.reports))
	for _, report := range m.reports {
		copied := *report
		reports = append(reports, &copied)
	}
	sort.Slice(reports, func(i, j int) bool {
		if reports[i].Symbol != reports[j].Symbol {
			return reports[i].Symbol < reports[j].Symbol
		}
		return reports[i].DataType < reports[j].DataType
	})
	return reports
}

// Start begins polling for due tasks. The poll tick skips a cycle when
// the previous one is still running.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return fmt.Errorf("manager already started")
	}
	m.running = true
	m.mu.Unlock()

	spec := fmt.Sprintf("@every %s", m.cfg.PollInterval)
	if _, err := m.cron.AddFunc(spec, func() {
		if !m.cycleMu.TryLock() {
			m.logger.Warn("Previous collection cycle still running, skipping tick")
			return
		}
		defer m.cycleMu.Unlock()
		m.RunCycle(ctx)
	}); err != nil {
		return fmt.Errorf("schedule poll tick: %w", err)
	}

	m.logger.WithField("poll_interval", m.cfg.PollInterval.String()).Info("Collection manager started")
	m.cron.Start()
	return nil
}

// Stop halts polling, waits for a running cycle to finish, and persists
// the final task schedule.
func (m *Manager) Stop() {
	m.logger.Info("Stopping collection manager")
	stopCtx := m.cron.Stop()
	<-stopCtx.Done()

	m.mu.Lock()
	m.running = false
	m.saveLocked()
	m.mu.Unlock()

	m.logger.Info("Collection manager stopped")
}

// RunCycle executes one scheduling cycle: every due task runs once and
// is rescheduled a full interval after its completion time, failed or
// not. Retrying early would hammer a provider that is already refusing
// us.
func (m *Manager) RunCycle(ctx context.Context) {
	startTime := time.Now()

	due := m.DueTasks(startTime)
	if len(due) == 0 {
		if m.metrics != nil {
			m.metrics.RecordCycle(time.Since(startTime).Seconds(), 0)
		}
		return
	}

	m.logger.WithField("due_tasks", len(due)).Info("Collection cycle started")

	for _, task := range due {
		if ctx.Err() != nil {
			m.logger.Warn("Collection cycle cancelled")
			break
		}

		err := m.runTask(ctx, task)
		completed := time.Now()

		m.mu.Lock()
		if current, exists := m.tasks[task.Name]; exists {
			current.Advance(completed)
			if err != nil {
				current.FailureCount++
			} else {
				current.FailureCount = 0
			}
		}
		m.mu.Unlock()
	}

	m.mu.Lock()
	m.saveLocked()
	m.mu.Unlock()

	duration := time.Since(startTime)
	if m.metrics != nil {
		m.metrics.RecordCycle(duration.Seconds(), len(due))
	}

	m.logger.WithFields(map[string]interface{}{
		"due_tasks": len(due),
		"duration":  duration,
	}).Info("Collection cycle completed")
}

// runTask dispatches one task and stores the resulting reports. A panic
// in a provider is contained to the task.
func (m *Manager) runTask(ctx context.Context, task *contracts.Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panicked: %v", task.Name, r)
			m.logger.WithField("task", task.Name).Errorf("Recovered from panic: %v", r)
		}
	}()

	reports, err := m.dispatcher.Run(ctx, task)

	m.mu.Lock()
	for _, report := range reports {
		m.reports[fmt.Sprintf("%s:%s", report.DataType, report.Symbol)] = report
	}
	m.mu.Unlock()

	return err
}

// saveLocked snapshots the task list. Callers hold m.mu. Persistence is
// best-effort; failures are logged and collection continues.
func (m *Manager) saveLocked() {
	tasks := make([]*contracts.Task, 0, len(m.tasks))
	for _, task := range m.tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].Name < tasks[j].Name
	})

	if err := m.taskStore.Save(tasks); err != nil {
		m.logger.WithError(err).Warn("Failed to persist task snapshot")
	}
}
