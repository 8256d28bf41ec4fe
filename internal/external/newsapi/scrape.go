package newsapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxContentLength caps stored article bodies.
const maxContentLength = 20000

// scrapeArticle fetches an article page and extracts its paragraph
// text. Best-effort: publisher markup varies, and an empty result just
// means the API's truncated content stands.
func (c *Client) scrapeArticle(ctx context.Context, articleURL string) (string, error) {
	resp, err := c.httpClient.Get(ctx, articleURL)
	if err != nil {
		return "", fmt.Errorf("fetch article page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse article page: %w", err)
	}

	// Prefer semantic article markup, fall back to all paragraphs.
	selection := doc.Find("article p")
	if selection.Length() == 0 {
		selection = doc.Find("p")
	}

	var parts []string
	selection.Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if len(text) > 40 {
			parts = append(parts, text)
		}
	})

	content := strings.Join(parts, "\n\n")
	if len(content) > maxContentLength {
		content = content[:maxContentLength]
	}

	return content, nil
}
