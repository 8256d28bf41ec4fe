package validate

import (
	"fmt"
	"time"

	"github.com/tumkwe/invest/internal/contracts"
)

// Combine aggregates many validation reports into one summary. It is a
// pure function of its input: totals are summed, the validation rate is
// guarded against an empty batch, and every issue message is flattened
// with a "<data_type> (<symbol>): " prefix so the origin survives the
// merge.
func Combine(reports []*contracts.ValidationReport) *contracts.CombinedReport {
	combined := &contracts.CombinedReport{
		Timestamp:    time.Now(),
		IssuesByType: make(map[string][]string),
		DataTypes:    make([]contracts.ReportSummary, 0, len(reports)),
	}

	for _, report := range reports {
		combined.TotalRecords += report.TotalRecords
		combined.ValidRecords += report.ValidRecords

		combined.DataTypes = append(combined.DataTypes, contracts.ReportSummary{
			DataType:   report.DataType,
			Symbol:     report.Symbol,
			Source:     report.Source,
			Total:      report.TotalRecords,
			Valid:      report.ValidRecords,
			IssueCount: report.IssueCount(),
		})

		for key, messages := range report.Issues {
			for _, msg := range messages {
				combined.IssuesByType[key] = append(combined.IssuesByType[key],
					fmt.Sprintf("%s (%s): %s", report.DataType, report.Symbol, msg))
			}
		}
	}

	if combined.TotalRecords > 0 {
		combined.ValidationRate = float64(combined.ValidRecords) / float64(combined.TotalRecords)
	}

	return combined
}
