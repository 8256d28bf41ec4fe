package validate

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tumkwe/invest/internal/contracts"
)

func article(title, summary, url, content string) *contracts.NewsArticle {
	return &contracts.NewsArticle{
		RecordMeta: contracts.NewRecordMeta("AAPL", "reuters"),
		Title:      title,
		Date:       time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
		URL:        url,
		Summary:    summary,
		Content:    content,
	}
}

func TestNews_EmptyDataset(t *testing.T) {
	v := New(DefaultThresholds())

	report := v.News(nil, "AAPL")

	assert.Equal(t, "multiple", report.Source)
	assert.Contains(t, report.Issues["empty_dataset"], "No news articles available")
}

func TestNews_ValidArticle(t *testing.T) {
	v := New(DefaultThresholds())

	a := article(
		"AAPL beats earnings expectations",
		"Apple reported stronger than expected quarterly results.",
		"https://example.com/aapl-earnings",
		"Full article body text.",
	)

	report := v.News([]*contracts.NewsArticle{a}, "AAPL")

	assert.Equal(t, 1, report.ValidRecords)
	assert.Empty(t, report.Issues)
	assert.True(t, a.IsValid)
}

func TestNews_FlaggedArticles(t *testing.T) {
	v := New(DefaultThresholds())

	tests := []struct {
		name      string
		article   *contracts.NewsArticle
		wantIssue string
	}{
		{
			name:      "short title",
			article:   article("AA", "A long enough summary about AAPL results.", "https://example.com/a", "body"),
			wantIssue: "Missing or very short title",
		},
		{
			name:      "short summary",
			article:   article("AAPL quarterly results", "short", "https://example.com/a", "body"),
			wantIssue: "Missing or very short summary",
		},
		{
			name:      "missing URL",
			article:   article("AAPL quarterly results", "A long enough summary about the results.", "", "body"),
			wantIssue: "Missing article URL",
		},
		{
			name:      "missing content",
			article:   article("AAPL quarterly results", "A long enough summary about the results.", "https://example.com/a", ""),
			wantIssue: "Missing article content for sentiment analysis",
		},
		{
			name:      "possibly irrelevant",
			article:   article("Markets close higher on tech rally", "Broad gains across the sector today.", "https://example.com/a", "body"),
			wantIssue: "Article may not be directly relevant to the company",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := v.News([]*contracts.NewsArticle{tt.article}, "AAPL")

			assert.Equal(t, 0, report.ValidRecords)
			assert.Contains(t, report.Issues["article_1"], tt.wantIssue)
			assert.False(t, tt.article.IsValid)
		})
	}
}

func TestNews_ContentWarningsCapped(t *testing.T) {
	v := New(DefaultThresholds())

	// Twelve otherwise-clean articles with no body text: only the first
	// ten get the content warning.
	articles := make([]*contracts.NewsArticle, 12)
	for i := range articles {
		articles[i] = article(
			fmt.Sprintf("AAPL update number %d", i+1),
			"A long enough summary mentioning AAPL explicitly.",
			fmt.Sprintf("https://example.com/aapl-%d", i+1),
			"",
		)
	}

	report := v.News(articles, "AAPL")

	assert.Equal(t, 2, report.ValidRecords)
	assert.Contains(t, report.Issues["article_1"], "Missing article content for sentiment analysis")
	assert.Contains(t, report.Issues["article_10"], "Missing article content for sentiment analysis")
	assert.NotContains(t, report.Issues, "article_11")
	assert.NotContains(t, report.Issues, "article_12")
}
