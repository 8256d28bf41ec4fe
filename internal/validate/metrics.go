package validate

import (
	"fmt"

	"github.com/tumkwe/invest/internal/contracts"
)

// Metrics validates a key metrics snapshot. Each ratio is bounded
// independently; a nil metric is simply not checked.
func (v *Validator) Metrics(metrics *contracts.KeyMetrics) *contracts.ValidationReport {
	report := contracts.NewValidationReport(contracts.ReportKeyMetrics, metrics.Source, metrics.Symbol, 1)

	var issues []string

	if pe := metrics.PERatio; pe != nil {
		if *pe < 0 {
			issues = append(issues, fmt.Sprintf("Negative P/E ratio: %.2f", *pe))
		} else if *pe > v.cfg.MaxPERatio {
			issues = append(issues, fmt.Sprintf("Unusually high P/E ratio: %.2f", *pe))
		}
	}

	if pb := metrics.PBRatio; pb != nil && *pb < 0 {
		issues = append(issues, fmt.Sprintf("Negative P/B ratio: %.2f", *pb))
	}

	// Yields above 25% are almost always data errors.
	if dy := metrics.DividendYield; dy != nil && *dy > 0.25 {
		issues = append(issues, fmt.Sprintf("Unusually high dividend yield: %.2f%%", *dy*100))
	}

	if roe := metrics.ReturnOnEquity; roe != nil && (*roe > 1 || *roe < -1) {
		issues = append(issues, fmt.Sprintf("Extreme ROE: %.2f%%", *roe*100))
	}

	if roa := metrics.ReturnOnAssets; roa != nil && (*roa > 0.5 || *roa < -0.5) {
		issues = append(issues, fmt.Sprintf("Extreme ROA: %.2f%%", *roa*100))
	}

	if len(issues) > 0 {
		report.AddIssue("metric_quality", issues...)
		metrics.Flag(issues)
	} else {
		report.ValidRecords = 1
	}

	return report
}
