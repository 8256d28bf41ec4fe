// Package yahoo implements the Yahoo Finance client used for market
// data: daily price history, key metrics, company profiles, and
// financial statements.
package yahoo

import (
	"encoding/json"

	"github.com/tumkwe/invest/pkg/config"
	"github.com/tumkwe/invest/pkg/httputil"
	"github.com/tumkwe/invest/pkg/logger"
	"github.com/tumkwe/invest/pkg/ratelimit"
)

// Client handles communication with the Yahoo Finance API.
type Client struct {
	httpClient *httputil.Client
	limiter    *ratelimit.Limiter
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo Finance client.
func NewClient(cfg config.YahooConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		limiter:    ratelimit.New("yahoo", cfg.RequestsPerSecond),
		logger:     log,
		baseURL:    cfg.BaseURL,
	}
}

// rawValue is Yahoo's number wrapper: {"raw": 1.23, "fmt": "1.23"}.
// Raw is nil when Yahoo reports the field as empty.
type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// entry is one statement or summary object whose fields are decoded
// lazily; Yahoo mixes rawValue objects with plain numbers (maxAge) in
// the same map.
type entry map[string]json.RawMessage

// value extracts a rawValue field. Reported-but-empty fields and plain
// non-object fields return ok=false.
func (e entry) value(key string) (float64, bool) {
	data, exists := e[key]
	if !exists {
		return 0, false
	}
	var v rawValue
	if err := json.Unmarshal(data, &v); err != nil || v.Raw == nil {
		return 0, false
	}
	return *v.Raw, true
}

// pointer extracts a rawValue field as a nullable pointer.
func (e entry) pointer(key string) *float64 {
	if v, ok := e.value(key); ok {
		return &v
	}
	return nil
}
