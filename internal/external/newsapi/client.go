// Package newsapi implements the News API client used for company news
// collection, plus best-effort scraping of article bodies.
package newsapi

import (
	"github.com/tumkwe/invest/pkg/config"
	"github.com/tumkwe/invest/pkg/httputil"
	"github.com/tumkwe/invest/pkg/logger"
	"github.com/tumkwe/invest/pkg/ratelimit"
)

// Client handles communication with the News API. Without an API key
// the client is disabled and fetches return no articles.
type Client struct {
	httpClient *httputil.Client
	limiter    *ratelimit.Limiter
	logger     *logger.Logger
	apiKey     string
	baseURL    string
}

// NewClient creates a new News API client.
func NewClient(cfg config.NewsAPIConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		limiter:    ratelimit.New("newsapi", cfg.RequestsPerSecond),
		logger:     log,
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}
