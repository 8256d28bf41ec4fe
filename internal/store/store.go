// Package store persists collected records. Merge semantics are
// append-only: a record whose natural key already exists is skipped,
// never overwritten.
package store

import (
	"context"

	"github.com/tumkwe/invest/internal/contracts"
)

// RecordStore is the persistence interface consumed by the dispatcher.
// Save methods return how many records were actually inserted; records
// already present under their natural key are silently skipped.
type RecordStore interface {
	SavePrices(ctx context.Context, prices []*contracts.PriceBar) (int, error)
	SaveStatements(ctx context.Context, statements []*contracts.FinancialStatement) (int, error)
	SaveMetrics(ctx context.Context, metrics *contracts.KeyMetrics) error
	SaveProfile(ctx context.Context, profile *contracts.CompanyProfile) error
	SaveNews(ctx context.Context, articles []*contracts.NewsArticle) (int, error)
	SaveFilings(ctx context.Context, filings []*contracts.SECFiling) (int, error)
}
