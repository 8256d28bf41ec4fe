package contracts

import "time"

// RecordMeta carries the fields shared by every validatable record kind.
// Records start valid; validators flag them in place and attach the
// explanatory warnings. Downstream code decides whether to exclude
// flagged records - nothing is dropped here.
type RecordMeta struct {
	Symbol             string    `json:"symbol"`
	Source             string    `json:"source"`
	LastUpdated        time.Time `json:"last_updated"`
	IsValid            bool      `json:"is_valid"`
	ValidationWarnings []string  `json:"validation_warnings,omitempty"`
}

// NewRecordMeta creates record metadata for a freshly fetched record.
func NewRecordMeta(symbol, source string) RecordMeta {
	return RecordMeta{
		Symbol:      symbol,
		Source:      source,
		LastUpdated: time.Now(),
		IsValid:     true,
	}
}

// Flag marks the record invalid and records why.
func (m *RecordMeta) Flag(warnings []string) {
	m.IsValid = false
	m.ValidationWarnings = warnings
}

// PriceBar is one daily OHLCV bar.
type PriceBar struct {
	RecordMeta
	Date          time.Time `json:"date"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Close         float64   `json:"close"`
	AdjustedClose float64   `json:"adjusted_close,omitempty"`
	Volume        int64     `json:"volume"`
}

// StatementType identifies a financial statement kind.
type StatementType string

const (
	StatementIncome   StatementType = "income_statement"
	StatementBalance  StatementType = "balance_sheet"
	StatementCashFlow StatementType = "cash_flow"
)

// Reporting periods for financial statements.
const (
	PeriodAnnual    = "annual"
	PeriodQuarterly = "quarterly"
)

// FinancialStatement is one reported statement, keyed by canonical line
// item labels ("Total Revenue", "Total Assets", ...).
type FinancialStatement struct {
	RecordMeta
	StatementType StatementType      `json:"statement_type"`
	Period        string             `json:"period"`
	Date          time.Time          `json:"date"`
	Data          map[string]float64 `json:"data"`
	Currency      string             `json:"currency"`
	FiscalYear    int                `json:"fiscal_year,omitempty"`
	FiscalQuarter int                `json:"fiscal_quarter,omitempty"`
}

// KeyMetrics is a snapshot of valuation and return ratios. Nil pointers
// mean the provider did not report the metric.
type KeyMetrics struct {
	RecordMeta
	Date           time.Time `json:"date"`
	PERatio        *float64  `json:"pe_ratio,omitempty"`
	PBRatio        *float64  `json:"pb_ratio,omitempty"`
	DividendYield  *float64  `json:"dividend_yield,omitempty"`
	EPS            *float64  `json:"eps,omitempty"`
	MarketCap      *float64  `json:"market_cap,omitempty"`
	DebtToEquity   *float64  `json:"debt_to_equity,omitempty"`
	ReturnOnEquity *float64  `json:"return_on_equity,omitempty"`
	ReturnOnAssets *float64  `json:"return_on_assets,omitempty"`
	ProfitMargin   *float64  `json:"profit_margin,omitempty"`
	CurrentRatio   *float64  `json:"current_ratio,omitempty"`
	QuickRatio     *float64  `json:"quick_ratio,omitempty"`
}

// CompanyProfile describes the company behind a symbol.
type CompanyProfile struct {
	RecordMeta
	Name        string  `json:"name"`
	Sector      string  `json:"sector"`
	Industry    string  `json:"industry"`
	Description string  `json:"description"`
	Website     string  `json:"website,omitempty"`
	Country     string  `json:"country,omitempty"`
	Exchange    string  `json:"exchange,omitempty"`
	Employees   int     `json:"employees,omitempty"`
	MarketCap   float64 `json:"market_cap,omitempty"`
}

// NewsArticle is one article related to a company. Content is the full
// body text when the scraper could extract it; it is often absent.
type NewsArticle struct {
	RecordMeta
	Title          string    `json:"title"`
	Date           time.Time `json:"date"`
	URL            string    `json:"url"`
	Summary        string    `json:"summary"`
	Content        string    `json:"content,omitempty"`
	Sentiment      *float64  `json:"sentiment,omitempty"`
	RelevanceScore *float64  `json:"relevance_score,omitempty"`
}

// SECFiling is one filing reference from EDGAR. Filings are stored as
// fetched; there is no validator for this category.
type SECFiling struct {
	Symbol          string     `json:"symbol"`
	FilingType      string     `json:"filing_type"`
	FilingDate      time.Time  `json:"filing_date"`
	PeriodEndDate   *time.Time `json:"period_end_date,omitempty"`
	AccessionNumber string     `json:"accession_number"`
	URL             string     `json:"url,omitempty"`
	DocumentText    string     `json:"document_text,omitempty"`
}
