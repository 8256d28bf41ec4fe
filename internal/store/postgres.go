package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tumkwe/invest/internal/contracts"
)

// Repository is the PostgreSQL implementation of RecordStore.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository instance.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// SavePrices inserts new price bars, skipping dates already stored.
func (r *Repository) SavePrices(ctx context.Context, prices []*contracts.PriceBar) (int, error) {
	if len(prices) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO data.price_bars (
			symbol, trade_date, open, high, low, close,
			adjusted_close, volume, source, is_valid, warnings, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (symbol, trade_date) DO NOTHING
	`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, p := range prices {
		warnings, err := json.Marshal(p.ValidationWarnings)
		if err != nil {
			return 0, fmt.Errorf("marshal warnings: %w", err)
		}

		tag, err := tx.Exec(ctx, query,
			p.Symbol, p.Date, p.Open, p.High, p.Low, p.Close,
			p.AdjustedClose, p.Volume, p.Source, p.IsValid, warnings,
		)
		if err != nil {
			return 0, fmt.Errorf("insert price for %s: %w", p.Symbol, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return inserted, nil
}

// SaveStatements inserts new financial statements, skipping periods
// already stored.
func (r *Repository) SaveStatements(ctx context.Context, statements []*contracts.FinancialStatement) (int, error) {
	if len(statements) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO data.financial_statements (
			symbol, statement_type, period, report_date, line_items,
			currency, fiscal_year, fiscal_quarter, source, is_valid, warnings, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (symbol, statement_type, period, report_date) DO NOTHING
	`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, s := range statements {
		lineItems, err := json.Marshal(s.Data)
		if err != nil {
			return 0, fmt.Errorf("marshal line items: %w", err)
		}
		warnings, err := json.Marshal(s.ValidationWarnings)
		if err != nil {
			return 0, fmt.Errorf("marshal warnings: %w", err)
		}

		tag, err := tx.Exec(ctx, query,
			s.Symbol, string(s.StatementType), s.Period, s.Date, lineItems,
			s.Currency, s.FiscalYear, s.FiscalQuarter, s.Source, s.IsValid, warnings,
		)
		if err != nil {
			return 0, fmt.Errorf("insert statement for %s: %w", s.Symbol, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return inserted, nil
}

// SaveMetrics inserts a key metrics snapshot, keyed by symbol and
// snapshot date.
func (r *Repository) SaveMetrics(ctx context.Context, metrics *contracts.KeyMetrics) error {
	query := `
		INSERT INTO data.key_metrics (
			symbol, snapshot_date, pe_ratio, pb_ratio, dividend_yield, eps,
			market_cap, debt_to_equity, return_on_equity, return_on_assets,
			profit_margin, current_ratio, quick_ratio,
			source, is_valid, warnings, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
		ON CONFLICT (symbol, snapshot_date) DO NOTHING
	`

	warnings, err := json.Marshal(metrics.ValidationWarnings)
	if err != nil {
		return fmt.Errorf("marshal warnings: %w", err)
	}

	_, err = r.db.Exec(ctx, query,
		metrics.Symbol, metrics.Date, metrics.PERatio, metrics.PBRatio,
		metrics.DividendYield, metrics.EPS, metrics.MarketCap,
		metrics.DebtToEquity, metrics.ReturnOnEquity, metrics.ReturnOnAssets,
		metrics.ProfitMargin, metrics.CurrentRatio, metrics.QuickRatio,
		metrics.Source, metrics.IsValid, warnings,
	)
	if err != nil {
		return fmt.Errorf("insert metrics for %s: %w", metrics.Symbol, err)
	}

	return nil
}

// SaveProfile inserts a company profile once per symbol.
func (r *Repository) SaveProfile(ctx context.Context, profile *contracts.CompanyProfile) error {
	query := `
		INSERT INTO data.company_profiles (
			symbol, name, sector, industry, description, website,
			country, exchange, employees, market_cap,
			source, is_valid, warnings, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		ON CONFLICT (symbol) DO NOTHING
	`

	warnings, err := json.Marshal(profile.ValidationWarnings)
	if err != nil {
		return fmt.Errorf("marshal warnings: %w", err)
	}

	_, err = r.db.Exec(ctx, query,
		profile.Symbol, profile.Name, profile.Sector, profile.Industry,
		profile.Description, profile.Website, profile.Country,
		profile.Exchange, profile.Employees, profile.MarketCap,
		profile.Source, profile.IsValid, warnings,
	)
	if err != nil {
		return fmt.Errorf("insert profile for %s: %w", profile.Symbol, err)
	}

	return nil
}

// SaveNews inserts new articles, de-duplicated on URL.
func (r *Repository) SaveNews(ctx context.Context, articles []*contracts.NewsArticle) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO data.news_articles (
			symbol, title, published_at, url, summary, content,
			source, is_valid, warnings, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (url) DO NOTHING
	`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, a := range articles {
		warnings, err := json.Marshal(a.ValidationWarnings)
		if err != nil {
			return 0, fmt.Errorf("marshal warnings: %w", err)
		}

		tag, err := tx.Exec(ctx, query,
			a.Symbol, a.Title, a.Date, a.URL, a.Summary, a.Content,
			a.Source, a.IsValid, warnings,
		)
		if err != nil {
			return 0, fmt.Errorf("insert article for %s: %w", a.Symbol, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return inserted, nil
}

// SaveFilings inserts new filings, de-duplicated on accession number.
func (r *Repository) SaveFilings(ctx context.Context, filings []*contracts.SECFiling) (int, error) {
	if len(filings) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO data.sec_filings (
			symbol, filing_type, filing_date, period_end_date,
			accession_number, url, document_text, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (accession_number) DO NOTHING
	`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, f := range filings {
		tag, err := tx.Exec(ctx, query,
			f.Symbol, f.FilingType, f.FilingDate, f.PeriodEndDate,
			f.AccessionNumber, f.URL, f.DocumentText,
		)
		if err != nil {
			return 0, fmt.Errorf("insert filing for %s: %w", f.Symbol, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return inserted, nil
}
