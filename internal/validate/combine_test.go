package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tumkwe/invest/internal/contracts"
)

func TestCombine_Empty(t *testing.T) {
	combined := Combine(nil)

	assert.Equal(t, 0, combined.TotalRecords)
	assert.Equal(t, 0, combined.ValidRecords)
	assert.Equal(t, 0.0, combined.ValidationRate)
	assert.Empty(t, combined.DataTypes)
	assert.Empty(t, combined.IssuesByType)
}

func TestCombine_Sums(t *testing.T) {
	prices := contracts.NewValidationReport(contracts.ReportStockPrices, "yahoo_finance", "AAPL", 20)
	prices.ValidRecords = 18
	prices.AddIssue("price_2026-08-21", "Low price greater than high price")

	news := contracts.NewValidationReport(contracts.ReportNewsArticles, "reuters", "MSFT", 5)
	news.ValidRecords = 5

	combined := Combine([]*contracts.ValidationReport{prices, news})

	assert.Equal(t, 25, combined.TotalRecords)
	assert.Equal(t, 23, combined.ValidRecords)
	assert.InDelta(t, 0.92, combined.ValidationRate, 1e-9)

	require.Len(t, combined.DataTypes, 2)
	assert.Equal(t, contracts.ReportStockPrices, combined.DataTypes[0].DataType)
	assert.Equal(t, "AAPL", combined.DataTypes[0].Symbol)
	assert.Equal(t, 1, combined.DataTypes[0].IssueCount)
	assert.Equal(t, 0, combined.DataTypes[1].IssueCount)

	// Issue origin survives the merge.
	require.Len(t, combined.IssuesByType["price_2026-08-21"], 1)
	assert.Equal(t,
		"stock_prices (AAPL): Low price greater than high price",
		combined.IssuesByType["price_2026-08-21"][0])
}
