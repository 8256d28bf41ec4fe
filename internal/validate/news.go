package validate

import (
	"fmt"
	"strings"

	"github.com/tumkwe/invest/internal/contracts"
)

// Body text is expected to be scarce; only the first few articles without
// it are flagged so the report is not drowned in the same warning.
const maxContentWarnings = 10

// News validates a batch of news articles for one symbol. Issue keys are
// 1-based article positions.
func (v *Validator) News(articles []*contracts.NewsArticle, symbol string) *contracts.ValidationReport {
	source := "multiple"
	if len(articles) > 0 {
		source = articles[0].Source
	}
	report := contracts.NewValidationReport(contracts.ReportNewsArticles, source, symbol, len(articles))

	if len(articles) == 0 {
		report.AddIssue("empty_dataset", "No news articles available")
		return report
	}

	sym := strings.ToLower(symbol)

	validCount := 0
	for i, article := range articles {
		var issues []string

		if len(article.Title) < 5 {
			issues = append(issues, "Missing or very short title")
		}
		if len(article.Summary) < 10 {
			issues = append(issues, "Missing or very short summary")
		}
		if article.URL == "" {
			issues = append(issues, "Missing article URL")
		}
		if article.Content == "" && i < maxContentWarnings {
			issues = append(issues, "Missing article content for sentiment analysis")
		}

		// Relevance is a weak signal; only record it when nothing
		// stronger was found for this article.
		if len(issues) == 0 && article.Title != "" &&
			!strings.Contains(strings.ToLower(article.Title), sym) &&
			!strings.Contains(strings.ToLower(article.Summary), sym) {
			issues = append(issues, "Article may not be directly relevant to the company")
		}

		if len(issues) > 0 {
			report.AddIssue(fmt.Sprintf("article_%d", i+1), issues...)
			article.Flag(issues)
		} else {
			validCount++
		}
	}

	report.ValidRecords = validCount
	return report
}
