// Package edgar implements the SEC EDGAR client used for regulatory
// filing collection. EDGAR requires a descriptive User-Agent with a
// contact address and publishes a 10 requests per second fair-use
// limit.
package edgar

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tumkwe/invest/pkg/config"
	"github.com/tumkwe/invest/pkg/httputil"
	"github.com/tumkwe/invest/pkg/logger"
	"github.com/tumkwe/invest/pkg/ratelimit"
)

// tickerMapURL is the published symbol to CIK mapping. It lives on the
// main SEC host, not the data API host.
const tickerMapURL = "https://www.sec.gov/files/company_tickers.json"

// Client handles communication with SEC EDGAR.
type Client struct {
	httpClient *httputil.Client
	limiter    *ratelimit.Limiter
	logger     *logger.Logger
	baseURL    string
	tickerURL  string

	mu          sync.Mutex
	cikByTicker map[string]int64
}

// NewClient creates a new EDGAR client. The User-Agent requirement is
// handled by attaching it as a default header on the HTTP client.
func NewClient(cfg config.EDGARConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient.WithHeader("User-Agent", cfg.UserAgent),
		limiter:    ratelimit.New("edgar", cfg.RequestsPerSecond),
		logger:     log,
		baseURL:    cfg.BaseURL,
		tickerURL:  tickerMapURL,
	}
}

// resolveCIK maps a ticker symbol to its SEC Central Index Key. The
// full mapping is fetched once and kept for the process lifetime.
func (c *Client) resolveCIK(ctx context.Context, symbol string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cikByTicker == nil {
		if err := c.loadTickerMap(ctx); err != nil {
			return 0, err
		}
	}

	cik, exists := c.cikByTicker[strings.ToUpper(symbol)]
	if !exists {
		return 0, fmt.Errorf("no CIK found for symbol %s", symbol)
	}
	return cik, nil
}

// loadTickerMap fetches the symbol to CIK mapping. Callers hold c.mu.
func (c *Client) loadTickerMap(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	// The mapping is an object keyed by row index, not an array.
	var raw map[string]struct {
		CIK    int64  `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}
	if err := c.httpClient.GetJSON(ctx, c.tickerURL, &raw); err != nil {
		return fmt.Errorf("fetch ticker map: %w", err)
	}

	c.cikByTicker = make(map[string]int64, len(raw))
	for _, row := range raw {
		c.cikByTicker[strings.ToUpper(row.Ticker)] = row.CIK
	}

	c.logger.WithField("count", len(c.cikByTicker)).Debug("Loaded EDGAR ticker map")
	return nil
}
