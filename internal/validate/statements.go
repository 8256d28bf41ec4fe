package validate

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tumkwe/invest/internal/contracts"
)

// Required line items per statement type. A statement missing any of
// these is reported under missing_fields.
var requiredLineItems = map[contracts.StatementType][]string{
	contracts.StatementIncome: {
		"Total Revenue",
		"Net Income",
		"Operating Income",
		"Gross Profit",
		"EBITDA",
	},
	contracts.StatementBalance: {
		"Total Assets",
		"Total Liabilities",
		"Total Equity",
		"Cash And Cash Equivalents",
		"Total Debt",
	},
	contracts.StatementCashFlow: {
		"Operating Cash Flow",
		"Capital Expenditure",
		"Free Cash Flow",
		"Dividend Paid",
	},
}

// Relative tolerance for the balance sheet equation.
const balanceTolerance = 0.005

// Statement validates one financial statement. Structural problems
// (missing required line items) and semantic problems (figures that
// cannot be right) are reported separately.
func (v *Validator) Statement(statement *contracts.FinancialStatement) *contracts.ValidationReport {
	dataType := fmt.Sprintf("financial_statement_%s", statement.StatementType)
	report := contracts.NewValidationReport(dataType, statement.Source, statement.Symbol, 1)

	var missing []string
	for _, field := range requiredLineItems[statement.StatementType] {
		if _, ok := statement.Data[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		report.AddIssue("missing_fields", fmt.Sprintf("Missing key fields: %s", strings.Join(missing, ", ")))
		report.MissingFields = missing
	}

	var issues []string

	if revenue, ok := statement.Data["Total Revenue"]; ok && revenue < 0 {
		issues = append(issues, "Negative Total Revenue")
	}

	netIncome, hasNetIncome := statement.Data["Net Income"]
	revenue, hasRevenue := statement.Data["Total Revenue"]
	if hasNetIncome && hasRevenue && revenue > 0 {
		margin := netIncome / revenue
		if margin > 1 || margin < -1 {
			issues = append(issues, fmt.Sprintf("Unusual profit margin: %.2f", margin))
		}
	}

	if statement.StatementType == contracts.StatementBalance {
		assets, hasAssets := statement.Data["Total Assets"]
		liabilities, hasLiabilities := statement.Data["Total Liabilities"]
		equity, hasEquity := statement.Data["Total Equity"]

		if hasAssets && hasLiabilities && hasEquity && assets != 0 {
			liabEquity := liabilities + equity
			if math.Abs(assets-liabEquity)/math.Abs(assets) > balanceTolerance {
				issues = append(issues, fmt.Sprintf(
					"Balance sheet equation doesn't balance: Assets=%.2f, Liabilities+Equity=%.2f",
					assets, liabEquity))
			}
		}
	}

	if len(issues) > 0 {
		report.AddIssue("data_quality", issues...)
	}

	// Missing required line items invalidate the statement as a whole,
	// the same as semantic problems.
	if len(issues) > 0 || len(missing) > 0 {
		warnings := issues
		if len(missing) > 0 {
			warnings = append([]string{fmt.Sprintf("Missing key fields: %s", strings.Join(missing, ", "))}, issues...)
		}
		statement.Flag(warnings)
	} else {
		report.ValidRecords = 1
	}

	return report
}
