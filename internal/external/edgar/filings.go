package edgar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tumkwe/invest/internal/contracts"
)

// maxFilings bounds one fetch. The submissions feed lists years of
// history; the store de-duplicates on accession number, so recent
// filings are enough per cycle.
const maxFilings = 40

// relevantForms are the filing types worth collecting.
var relevantForms = map[string]bool{
	"10-K":    true,
	"10-Q":    true,
	"8-K":     true,
	"20-F":    true,
	"DEF 14A": true,
}

// submissionsResponse is the /submissions payload. Recent filings come
// as parallel arrays.
type submissionsResponse struct {
	CIK     string `json:"cik"`
	Name    string `json:"name"`
	Filings struct {
		Recent struct {
			AccessionNumber []string `json:"accessionNumber"`
			FilingDate      []string `json:"filingDate"`
			ReportDate      []string `json:"reportDate"`
			Form            []string `json:"form"`
			PrimaryDocument []string `json:"primaryDocument"`
		} `json:"recent"`
	} `json:"filings"`
}

// FetchFilings fetches recent filing references for a symbol.
func (c *Client) FetchFilings(ctx context.Context, symbol string) ([]*contracts.SECFiling, error) {
	symbol = strings.ToUpper(symbol)

	cik, err := c.resolveCIK(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	fullURL := fmt.Sprintf("%s/submissions/CIK%010d.json", c.baseURL, cik)

	var resp submissionsResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &resp); err != nil {
		return nil, fmt.Errorf("submissions request failed: %w", err)
	}

	recent := resp.Filings.Recent
	filings := make([]*contracts.SECFiling, 0, maxFilings)

	for i := range recent.AccessionNumber {
		if len(filings) >= maxFilings {
			break
		}
		if i >= len(recent.Form) || !relevantForms[recent.Form[i]] {
			continue
		}

		filingDate, err := time.Parse("2006-01-02", at(recent.FilingDate, i))
		if err != nil {
			continue
		}

		filing := &contracts.SECFiling{
			Symbol:          symbol,
			FilingType:      recent.Form[i],
			FilingDate:      filingDate,
			AccessionNumber: recent.AccessionNumber[i],
			URL:             documentURL(cik, recent.AccessionNumber[i], at(recent.PrimaryDocument, i)),
		}

		if reportDate, err := time.Parse("2006-01-02", at(recent.ReportDate, i)); err == nil {
			filing.PeriodEndDate = &reportDate
		}

		filings = append(filings, filing)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"cik":    cik,
		"count":  len(filings),
	}).Debug("Fetched SEC filings")

	return filings, nil
}

// at indexes a parallel array defensively; EDGAR arrays are normally
// the same length but a short one should not panic the collector.
func at(values []string, i int) string {
	if i >= len(values) {
		return ""
	}
	return values[i]
}

// documentURL builds the archive URL for a filing's primary document.
func documentURL(cik int64, accession, document string) string {
	if document == "" {
		return ""
	}
	return fmt.Sprintf("https://www.sec.gov/Archives/edgar/data/%d/%s/%s",
		cik, strings.ReplaceAll(accession, "-", ""), document)
}
