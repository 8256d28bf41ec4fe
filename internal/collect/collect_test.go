package collect

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tumkwe/invest/internal/contracts"
	"github.com/tumkwe/invest/pkg/config"
	"github.com/tumkwe/invest/pkg/logger"
)

// fakeMarket is a canned market data provider.
type fakeMarket struct {
	prices    []*contracts.PriceBar
	metrics   *contracts.KeyMetrics
	pricesErr error
	panics    bool
	calls     int
}

func (f *fakeMarket) FetchPrices(ctx context.Context, symbol string, from, to time.Time) ([]*contracts.PriceBar, error) {
	f.calls++
	if f.panics {
		panic("provider exploded")
	}
	if f.pricesErr != nil {
		return nil, f.pricesErr
	}
	return f.prices, nil
}

func (f *fakeMarket) FetchKeyMetrics(ctx context.Context, symbol string) (*contracts.KeyMetrics, error) {
	return f.metrics, nil
}

// fakeFinancials is a canned financials provider.
type fakeFinancials struct {
	statements []*contracts.FinancialStatement
	profile    *contracts.CompanyProfile
	err        error
}

func (f *fakeFinancials) FetchStatements(ctx context.Context, symbol string) ([]*contracts.FinancialStatement, error) {
	return f.statements, f.err
}

func (f *fakeFinancials) FetchProfile(ctx context.Context, symbol string) (*contracts.CompanyProfile, error) {
	return f.profile, nil
}

// fakeNews is a canned news provider.
type fakeNews struct {
	articles []*contracts.NewsArticle
	err      error
}

func (f *fakeNews) FetchNews(ctx context.Context, symbol string, from, to time.Time) ([]*contracts.NewsArticle, error) {
	return f.articles, f.err
}

// fakeFilings is a canned filings provider.
type fakeFilings struct {
	filings []*contracts.SECFiling
	err     error
}

func (f *fakeFilings) FetchFilings(ctx context.Context, symbol string) ([]*contracts.SECFiling, error) {
	return f.filings, f.err
}

// memStore is an in-memory RecordStore that de-duplicates on the same
// natural keys as the PostgreSQL repository.
type memStore struct {
	mu         sync.Mutex
	priceKeys  map[string]struct{}
	newsKeys   map[string]struct{}
	filingKeys map[string]struct{}
	prices     []*contracts.PriceBar
	statements []*contracts.FinancialStatement
	metrics    []*contracts.KeyMetrics
	profiles   []*contracts.CompanyProfile
	articles   []*contracts.NewsArticle
	filings    []*contracts.SECFiling
	saveErr    error
}

func newMemStore() *memStore {
	return &memStore{
		priceKeys:  make(map[string]struct{}),
		newsKeys:   make(map[string]struct{}),
		filingKeys: make(map[string]struct{}),
	}
}

func (s *memStore) SavePrices(ctx context.Context, prices []*contracts.PriceBar) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	inserted := 0
	for _, p := range prices {
		key := p.Symbol + "|" + p.Date.Format("2006-01-02")
		if _, exists := s.priceKeys[key]; exists {
			continue
		}
		s.priceKeys[key] = struct{}{}
		s.prices = append(s.prices, p)
		inserted++
	}
	return inserted, nil
}

func (s *memStore) SaveStatements(ctx context.Context, statements []*contracts.FinancialStatement) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	s.statements = append(s.statements, statements...)
	return len(statements), nil
}

func (s *memStore) SaveMetrics(ctx context.Context, metrics *contracts.KeyMetrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.metrics = append(s.metrics, metrics)
	return nil
}

func (s *memStore) SaveProfile(ctx context.Context, profile *contracts.CompanyProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.profiles = append(s.profiles, profile)
	return nil
}

func (s *memStore) SaveNews(ctx context.Context, articles []*contracts.NewsArticle) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	inserted := 0
	for _, a := range articles {
		if _, exists := s.newsKeys[a.URL]; exists {
			continue
		}
		s.newsKeys[a.URL] = struct{}{}
		s.articles = append(s.articles, a)
		inserted++
	}
	return inserted, nil
}

func (s *memStore) SaveFilings(ctx context.Context, filings []*contracts.SECFiling) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	inserted := 0
	for _, f := range filings {
		if _, exists := s.filingKeys[f.AccessionNumber]; exists {
			continue
		}
		s.filingKeys[f.AccessionNumber] = struct{}{}
		s.filings = append(s.filings, f)
		inserted++
	}
	return inserted, nil
}

var errProviderDown = errors.New("provider unavailable")

// testLogger builds a quiet logger for tests.
func testLogger() *logger.Logger {
	return logger.New(&config.Config{LogLevel: "error", LogFormat: "json"})
}

// testCollectionConfig returns a fast schedule for tests.
func testCollectionConfig(dataDir string) config.CollectionConfig {
	return config.CollectionConfig{
		MarketDataInterval: 4 * time.Hour,
		FinancialsInterval: 7 * 24 * time.Hour,
		NewsInterval:       6 * time.Hour,
		FilingsInterval:    24 * time.Hour,
		PollInterval:       time.Minute,
		DataDir:            dataDir,
	}
}

// goodBar returns a clean price bar on a weekday.
func goodBar(symbol string, close float64) *contracts.PriceBar {
	return &contracts.PriceBar{
		RecordMeta: contracts.NewRecordMeta(symbol, "yahoo_finance"),
		Date:       time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC), // a Friday
		Open:       close - 0.5,
		High:       close + 1,
		Low:        close - 1,
		Close:      close,
		Volume:     1000000,
	}
}
