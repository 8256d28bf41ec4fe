package contracts

import (
	"fmt"
	"time"
)

// DataType identifies a collection category. Every monitored symbol gets
// one recurring task per data type.
type DataType string

const (
	DataTypeMarketData          DataType = "market_data"
	DataTypeFinancialStatements DataType = "financial_statements"
	DataTypeNews                DataType = "news"
	DataTypeSECFilings          DataType = "sec_filings"
)

// AllDataTypes returns every collection category in dispatch order.
func AllDataTypes() []DataType {
	return []DataType{
		DataTypeMarketData,
		DataTypeFinancialStatements,
		DataTypeNews,
		DataTypeSECFilings,
	}
}

// Valid reports whether d is a known collection category.
func (d DataType) Valid() bool {
	switch d {
	case DataTypeMarketData, DataTypeFinancialStatements, DataTypeNews, DataTypeSECFilings:
		return true
	}
	return false
}

// Task is a named recurring unit of collection work for one data type and
// a set of symbols. NextRun is always set; a task is due when NextRun is
// at or before now. Only the collection manager mutates tasks after
// execution.
type Task struct {
	Name         string        `json:"name"`
	DataType     DataType      `json:"data_type"`
	Symbols      []string      `json:"symbols"`
	LastRun      *time.Time    `json:"last_run,omitempty"`
	NextRun      time.Time     `json:"next_run"`
	Interval     time.Duration `json:"interval"`
	Priority     int           `json:"priority"`
	FailureCount int           `json:"failure_count,omitempty"`
}

// NewTask creates a task for one symbol that is due immediately.
func NewTask(dataType DataType, symbol string, interval time.Duration) *Task {
	return &Task{
		Name:     fmt.Sprintf("%s_%s", dataType, symbol),
		DataType: dataType,
		Symbols:  []string{symbol},
		NextRun:  time.Now(),
		Interval: interval,
		Priority: 1,
	}
}

// Due reports whether the task should run at the given time.
func (t *Task) Due(now time.Time) bool {
	return !t.NextRun.After(now)
}

// Advance records a completed run and schedules the next one a full
// interval later. Failed runs advance the same way; retries happen only
// on the next natural cycle.
func (t *Task) Advance(completed time.Time) {
	last := completed
	t.LastRun = &last
	t.NextRun = completed.Add(t.Interval)
}

// HasSymbol reports whether the task covers the given symbol.
func (t *Task) HasSymbol(symbol string) bool {
	for _, s := range t.Symbols {
		if s == symbol {
			return true
		}
	}
	return false
}
