package collect

import (
	"context"
	"fmt"
	"time"

	"github.com/tumkwe/invest/internal/contracts"
	"github.com/tumkwe/invest/internal/store"
	"github.com/tumkwe/invest/internal/validate"
	"github.com/tumkwe/invest/pkg/logger"
	"github.com/tumkwe/invest/pkg/metrics"
	"github.com/tumkwe/invest/pkg/redis"
)

// Lookback windows per fetch. The store de-duplicates on natural keys,
// so overlapping windows only ever append new records.
const (
	priceLookback = 90 * 24 * time.Hour
	newsLookback  = 7 * 24 * time.Hour
)

// Dispatcher routes one task execution to the right provider, runs the
// validators over whatever came back, and persists the records. It holds
// no scheduling state; the manager owns tasks.
type Dispatcher struct {
	providers Providers
	validator *validate.Validator
	store     store.RecordStore
	cache     *redis.Cache
	metrics   *metrics.Recorder
	logger    *logger.Logger
}

// NewDispatcher creates a dispatcher. The cache degrades to a no-op when
// Redis is disabled; metrics may be nil when monitoring is off.
func NewDispatcher(
	providers Providers,
	validator *validate.Validator,
	recordStore store.RecordStore,
	cache *redis.Cache,
	recorder *metrics.Recorder,
	log *logger.Logger,
) *Dispatcher {
	return &Dispatcher{
		providers: providers,
		validator: validator,
		store:     recordStore,
		cache:     cache,
		metrics:   recorder,
		logger:    log.WithField("module", "dispatcher"),
	}
}

// Run executes one task's collection for every symbol it covers and
// returns the validation reports produced. A provider failure for one
// symbol is logged and counted against the task; remaining symbols still
// run.
func (d *Dispatcher) Run(ctx context.Context, task *contracts.Task) ([]*contracts.ValidationReport, error) {
	var reports []*contracts.ValidationReport
	var firstErr error

	for _, symbol := range task.Symbols {
		symbolReports, err := d.collect(ctx, task.DataType, symbol)
		if err != nil {
			d.logger.WithError(err).WithFields(map[string]interface{}{
				"task":      task.Name,
				"data_type": string(task.DataType),
				"symbol":    symbol,
			}).Error("Collection failed")
			d.recordFetch(task.DataType, "error")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		reports = append(reports, symbolReports...)
	}

	return reports, firstErr
}

// collect runs one (data type, symbol) collection.
func (d *Dispatcher) collect(ctx context.Context, dataType contracts.DataType, symbol string) ([]*contracts.ValidationReport, error) {
	switch dataType {
	case contracts.DataTypeMarketData:
		return d.collectMarketData(ctx, symbol)
	case contracts.DataTypeFinancialStatements:
		return d.collectFinancials(ctx, symbol)
	case contracts.DataTypeNews:
		return d.collectNews(ctx, symbol)
	case contracts.DataTypeSECFilings:
		return nil, d.collectFilings(ctx, symbol)
	default:
		return nil, fmt.Errorf("unknown data type: %s", dataType)
	}
}

// collectMarketData fetches price history plus a key metrics snapshot.
// Metrics are secondary: a metrics failure degrades the run instead of
// failing it.
func (d *Dispatcher) collectMarketData(ctx context.Context, symbol string) ([]*contracts.ValidationReport, error) {
	to := time.Now()
	from := to.Add(-priceLookback)

	prices, err := d.providers.Market.FetchPrices(ctx, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch prices for %s: %w", symbol, err)
	}
	d.recordFetch(contracts.DataTypeMarketData, fetchOutcome(len(prices)))

	priceReport := d.validator.Prices(prices, symbol)
	d.recordValidation(priceReport)

	inserted, err := d.store.SavePrices(ctx, prices)
	if err != nil {
		return nil, fmt.Errorf("save prices for %s: %w", symbol, err)
	}

	d.logger.WithFields(map[string]interface{}{
		"symbol":   symbol,
		"fetched":  len(prices),
		"inserted": inserted,
		"valid":    priceReport.ValidRecords,
	}).Info("Collected market data")

	reports := []*contracts.ValidationReport{priceReport}

	keyMetrics, err := d.providers.Market.FetchKeyMetrics(ctx, symbol)
	if err != nil {
		d.logger.WithError(err).WithField("symbol", symbol).Warn("Failed to fetch key metrics")
		return reports, nil
	}
	if keyMetrics != nil {
		metricsReport := d.validator.Metrics(keyMetrics)
		d.recordValidation(metricsReport)

		if err := d.store.SaveMetrics(ctx, keyMetrics); err != nil {
			return reports, fmt.Errorf("save metrics for %s: %w", symbol, err)
		}
		d.cacheSet(ctx, redis.MetricsKey(symbol), keyMetrics, redis.TTLMetrics)

		reports = append(reports, metricsReport)
	}

	return reports, nil
}

// collectFinancials fetches reported statements plus the company
// profile. Each statement is validated on its own.
func (d *Dispatcher) collectFinancials(ctx context.Context, symbol string) ([]*contracts.ValidationReport, error) {
	statements, err := d.providers.Financials.FetchStatements(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch statements for %s: %w", symbol, err)
	}
	d.recordFetch(contracts.DataTypeFinancialStatements, fetchOutcome(len(statements)))

	var reports []*contracts.ValidationReport
	for _, statement := range statements {
		report := d.validator.Statement(statement)
		d.recordValidation(report)
		reports = append(reports, report)
	}

	inserted, err := d.store.SaveStatements(ctx, statements)
	if err != nil {
		return nil, fmt.Errorf("save statements for %s: %w", symbol, err)
	}

	d.logger.WithFields(map[string]interface{}{
		"symbol":   symbol,
		"fetched":  len(statements),
		"inserted": inserted,
	}).Info("Collected financial statements")

	profile, err := d.providers.Financials.FetchProfile(ctx, symbol)
	if err != nil {
		d.logger.WithError(err).WithField("symbol", symbol).Warn("Failed to fetch company profile")
		return reports, nil
	}
	if profile != nil {
		profileReport := d.validator.Profile(profile)
		d.recordValidation(profileReport)

		if err := d.store.SaveProfile(ctx, profile); err != nil {
			return reports, fmt.Errorf("save profile for %s: %w", symbol, err)
		}
		d.cacheSet(ctx, redis.ProfileKey(symbol), profile, redis.TTLProfile)

		reports = append(reports, profileReport)
	}

	return reports, nil
}

// collectNews fetches recent articles for the symbol.
func (d *Dispatcher) collectNews(ctx context.Context, symbol string) ([]*contracts.ValidationReport, error) {
	to := time.Now()
	from := to.Add(-newsLookback)

	articles, err := d.providers.News.FetchNews(ctx, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch news for %s: %w", symbol, err)
	}
	d.recordFetch(contracts.DataTypeNews, fetchOutcome(len(articles)))

	report := d.validator.News(articles, symbol)
	d.recordValidation(report)

	inserted, err := d.store.SaveNews(ctx, articles)
	if err != nil {
		return nil, fmt.Errorf("save news for %s: %w", symbol, err)
	}

	d.logger.WithFields(map[string]interface{}{
		"symbol":   symbol,
		"fetched":  len(articles),
		"inserted": inserted,
		"valid":    report.ValidRecords,
	}).Info("Collected news articles")

	return []*contracts.ValidationReport{report}, nil
}

// collectFilings fetches filing references. Filings are stored as
// fetched; there is no validator for this category.
func (d *Dispatcher) collectFilings(ctx context.Context, symbol string) error {
	filings, err := d.providers.Filings.FetchFilings(ctx, symbol)
	if err != nil {
		return fmt.Errorf("fetch filings for %s: %w", symbol, err)
	}
	d.recordFetch(contracts.DataTypeSECFilings, fetchOutcome(len(filings)))

	inserted, err := d.store.SaveFilings(ctx, filings)
	if err != nil {
		return fmt.Errorf("save filings for %s: %w", symbol, err)
	}
	d.cacheSet(ctx, redis.FilingsKey(symbol), filings, redis.TTLFilings)

	d.logger.WithFields(map[string]interface{}{
		"symbol":   symbol,
		"fetched":  len(filings),
		"inserted": inserted,
	}).Info("Collected SEC filings")

	return nil
}

func (d *Dispatcher) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Set(ctx, key, value, ttl); err != nil {
		d.logger.WithError(err).WithField("key", key).Warn("Failed to cache records")
	}
}

func (d *Dispatcher) recordFetch(dataType contracts.DataType, outcome string) {
	if d.metrics != nil {
		d.metrics.RecordFetch(string(dataType), outcome)
	}
}

func (d *Dispatcher) recordValidation(report *contracts.ValidationReport) {
	if d.metrics != nil {
		d.metrics.RecordValidation(report.DataType, report.ValidRecords, report.TotalRecords-report.ValidRecords)
	}
}

func fetchOutcome(count int) string {
	if count == 0 {
		return "empty"
	}
	return "success"
}
