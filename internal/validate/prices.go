package validate

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/tumkwe/invest/internal/contracts"
)

// Prices validates a batch of daily price bars for one symbol. Bars that
// fail a check are flagged in place; the report carries one issue entry
// per flagged bar, keyed by trade date.
func (v *Validator) Prices(prices []*contracts.PriceBar, symbol string) *contracts.ValidationReport {
	source := "multiple"
	if len(prices) > 0 {
		source = prices[0].Source
	}
	report := contracts.NewValidationReport(contracts.ReportStockPrices, source, symbol, len(prices))

	if len(prices) == 0 {
		report.AddIssue("empty_dataset", "No price data available")
		return report
	}

	sorted := make([]*contracts.PriceBar, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	v.checkCompleteness(sorted, report)

	closes := make([]float64, len(sorted))
	for i, p := range sorted {
		closes[i] = p.Close
	}
	meanClose := mean(closes)
	stdClose := stdev(closes, meanClose)

	validCount := 0
	for i, price := range sorted {
		var issues []string

		if price.Open <= 0 || price.High <= 0 || price.Low <= 0 || price.Close <= 0 {
			issues = append(issues, "Negative or zero price values")
		}
		if price.Low > price.High {
			issues = append(issues, "Low price greater than high price")
		}
		if price.Open > price.High || price.Open < price.Low {
			issues = append(issues, "Open price outside high-low range")
		}
		if price.Close > price.High || price.Close < price.Low {
			issues = append(issues, "Close price outside high-low range")
		}

		if i > 0 && sorted[i-1].Close != 0 {
			changePct := math.Abs((price.Close - sorted[i-1].Close) / sorted[i-1].Close * 100)
			if changePct > v.cfg.MaxPriceChangePercent {
				issues = append(issues, fmt.Sprintf("Extreme daily price change: %.1f%%", changePct))
			}
		}

		if stdClose > 0 && math.Abs(price.Close-meanClose) > v.cfg.MaxOutlierStd*stdClose {
			issues = append(issues, fmt.Sprintf("Price is an outlier: %.2f vs mean %.2f", price.Close, meanClose))
			if report.Outliers == nil {
				report.Outliers = make(map[string][]float64)
			}
			report.Outliers["close"] = append(report.Outliers["close"], price.Close)
		}

		if len(issues) > 0 {
			report.AddIssue("price_"+price.Date.Format("2006-01-02"), issues...)
			price.Flag(issues)
		} else {
			validCount++
		}
	}

	report.ValidRecords = validCount
	return report
}

// checkCompleteness compares observed trading days against the expected
// business-day range between the first and last bar.
func (v *Validator) checkCompleteness(sorted []*contracts.PriceBar, report *contracts.ValidationReport) {
	observed := make(map[string]struct{}, len(sorted))
	for _, p := range sorted {
		observed[p.Date.Format("2006-01-02")] = struct{}{}
	}

	expected := businessDays(sorted[0].Date, sorted[len(sorted)-1].Date)
	if len(expected) == 0 {
		return
	}

	missing := 0
	for _, day := range expected {
		if _, ok := observed[day.Format("2006-01-02")]; !ok {
			missing++
		}
	}

	if missing > 0 {
		completeness := float64(len(observed)) / float64(len(expected))
		if completeness < v.cfg.MinDataCompleteness {
			report.AddIssue("incomplete_data", fmt.Sprintf(
				"Missing %d trading days (%.1f%% of expected data)",
				missing, (1-completeness)*100))
		}
	}
}

// businessDays returns every weekday between from and to inclusive.
// Exchange holidays are not modelled; the completeness threshold absorbs
// them.
func businessDays(from, to time.Time) []time.Time {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days = append(days, d)
		}
	}
	return days
}
