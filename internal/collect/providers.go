// Package collect orchestrates scheduled data collection: recurring
// tasks per (symbol, data type), dispatch to external providers,
// validation, and append-only persistence.
package collect

import (
	"context"
	"time"

	"github.com/tumkwe/invest/internal/contracts"
)

// MarketDataProvider fetches daily price history and valuation
// snapshots.
type MarketDataProvider interface {
	FetchPrices(ctx context.Context, symbol string, from, to time.Time) ([]*contracts.PriceBar, error)
	FetchKeyMetrics(ctx context.Context, symbol string) (*contracts.KeyMetrics, error)
}

// FinancialsProvider fetches reported financial statements and the
// company profile.
type FinancialsProvider interface {
	FetchStatements(ctx context.Context, symbol string) ([]*contracts.FinancialStatement, error)
	FetchProfile(ctx context.Context, symbol string) (*contracts.CompanyProfile, error)
}

// NewsProvider fetches recent articles mentioning a company. A provider
// without credentials returns an empty slice rather than an error.
type NewsProvider interface {
	FetchNews(ctx context.Context, symbol string, from, to time.Time) ([]*contracts.NewsArticle, error)
}

// FilingsProvider fetches regulatory filing references.
type FilingsProvider interface {
	FetchFilings(ctx context.Context, symbol string) ([]*contracts.SECFiling, error)
}

// Providers bundles the provider set the dispatcher draws from, one per
// collection category.
type Providers struct {
	Market     MarketDataProvider
	Financials FinancialsProvider
	News       NewsProvider
	Filings    FilingsProvider
}
