package newsapi

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/tumkwe/invest/internal/contracts"
)

const (
	// pageSize bounds one fetch; the free tier caps results anyway.
	pageSize = 50

	// maxScrapedArticles bounds body scraping per fetch. Scraping is
	// one extra HTTP request per article.
	maxScrapedArticles = 5
)

// everythingResponse is the /everything payload.
type everythingResponse struct {
	Status       string `json:"status"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		PublishedAt time.Time `json:"publishedAt"`
		Content     string    `json:"content"`
	} `json:"articles"`
}

// FetchNews fetches recent articles mentioning the symbol. A disabled
// client returns no articles rather than an error, so news collection
// degrades cleanly without credentials. The first few articles get
// their full body scraped for downstream sentiment analysis.
func (c *Client) FetchNews(ctx context.Context, symbol string, from, to time.Time) ([]*contracts.NewsArticle, error) {
	if !c.Enabled() {
		c.logger.WithField("symbol", symbol).Debug("News API key not configured, skipping news fetch")
		return nil, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("q", symbol)
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", fmt.Sprintf("%d", pageSize))
	params.Set("apiKey", c.apiKey)

	fullURL := fmt.Sprintf("%s/everything?%s", c.baseURL, params.Encode())

	var resp everythingResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &resp); err != nil {
		return nil, fmt.Errorf("everything request failed: %w", err)
	}

	if resp.Status != "ok" {
		return nil, fmt.Errorf("News API error: %s (%s)", resp.Message, resp.Code)
	}

	articles := make([]*contracts.NewsArticle, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if a.URL == "" && a.Title == "" {
			continue
		}

		source := "news_api"
		if a.Source.Name != "" {
			source = a.Source.Name
		}

		articles = append(articles, &contracts.NewsArticle{
			RecordMeta: contracts.NewRecordMeta(symbol, source),
			Title:      a.Title,
			Date:       a.PublishedAt,
			URL:        a.URL,
			Summary:    a.Description,
			Content:    a.Content,
		})
	}

	// Replace the API's truncated content with the scraped body where
	// we can get it.
	for i, article := range articles {
		if i >= maxScrapedArticles {
			break
		}
		if article.URL == "" {
			continue
		}

		content, err := c.scrapeArticle(ctx, article.URL)
		if err != nil {
			c.logger.WithError(err).WithField("url", article.URL).Debug("Failed to scrape article body")
			continue
		}
		if content != "" {
			article.Content = content
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(articles),
	}).Debug("Fetched news articles")

	return articles, nil
}
