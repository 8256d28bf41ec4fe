package contracts

import "time"

// Report data types emitted by the validators.
const (
	ReportStockPrices    = "stock_prices"
	ReportKeyMetrics     = "key_metrics"
	ReportCompanyProfile = "company_profile"
	ReportNewsArticles   = "news_articles"
)

// ValidationReport is the outcome of quality checks over one batch of
// records for one (data type, symbol, source). ValidRecords never exceeds
// TotalRecords, and every invalid record has a corresponding Issues entry.
type ValidationReport struct {
	Timestamp     time.Time            `json:"timestamp"`
	DataType      string               `json:"data_type"`
	Source        string               `json:"source"`
	Symbol        string               `json:"symbol"`
	TotalRecords  int                  `json:"total_records"`
	ValidRecords  int                  `json:"valid_records"`
	Issues        map[string][]string  `json:"issues"`
	MissingFields []string             `json:"missing_fields,omitempty"`
	Outliers      map[string][]float64 `json:"outliers,omitempty"`
}

// NewValidationReport creates an empty report for a batch.
func NewValidationReport(dataType, source, symbol string, total int) *ValidationReport {
	return &ValidationReport{
		Timestamp:    time.Now(),
		DataType:     dataType,
		Source:       source,
		Symbol:       symbol,
		TotalRecords: total,
		Issues:       make(map[string][]string),
	}
}

// AddIssue records one or more messages under an issue key.
func (r *ValidationReport) AddIssue(key string, messages ...string) {
	r.Issues[key] = append(r.Issues[key], messages...)
}

// IssueCount returns the total number of issue messages.
func (r *ValidationReport) IssueCount() int {
	count := 0
	for _, messages := range r.Issues {
		count += len(messages)
	}
	return count
}

// ReportSummary is the per-(data type, symbol) row of a combined report.
type ReportSummary struct {
	DataType   string `json:"type"`
	Symbol     string `json:"symbol"`
	Source     string `json:"source"`
	Total      int    `json:"total"`
	Valid      int    `json:"valid"`
	IssueCount int    `json:"issues_count"`
}

// CombinedReport is an on-demand aggregate over many validation reports.
// It is computed, never persisted.
type CombinedReport struct {
	Timestamp      time.Time           `json:"timestamp"`
	TotalRecords   int                 `json:"total_records"`
	ValidRecords   int                 `json:"valid_records"`
	ValidationRate float64             `json:"validation_rate"`
	IssuesByType   map[string][]string `json:"issues_by_type"`
	DataTypes      []ReportSummary     `json:"data_types"`
}
