package validate

import "github.com/tumkwe/invest/internal/contracts"

// Profile validates a company profile. A profile without the basics
// (name, sector, industry, a usable description) is invalid as a whole.
func (v *Validator) Profile(profile *contracts.CompanyProfile) *contracts.ValidationReport {
	report := contracts.NewValidationReport(contracts.ReportCompanyProfile, profile.Source, profile.Symbol, 1)

	var issues []string

	if profile.Name == "" {
		issues = append(issues, "Missing company name")
	}
	if profile.Sector == "" {
		issues = append(issues, "Missing sector information")
	}
	if profile.Industry == "" {
		issues = append(issues, "Missing industry information")
	}
	if len(profile.Description) < 20 {
		issues = append(issues, "Missing or very short company description")
	}

	if len(issues) > 0 {
		report.AddIssue("missing_info", issues...)
		profile.Flag(issues)
	} else {
		report.ValidRecords = 1
	}

	return report
}
