package yahoo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tumkwe/invest/internal/contracts"
)

// statementModules maps quoteSummary module names to the list field
// inside them and the statement kind they carry.
var statementModules = []struct {
	module  string
	listKey string
	kind    contracts.StatementType
	period  string
}{
	{"incomeStatementHistory", "incomeStatementHistory", contracts.StatementIncome, contracts.PeriodAnnual},
	{"incomeStatementHistoryQuarterly", "incomeStatementHistory", contracts.StatementIncome, contracts.PeriodQuarterly},
	{"balanceSheetHistory", "balanceSheetStatements", contracts.StatementBalance, contracts.PeriodAnnual},
	{"balanceSheetHistoryQuarterly", "balanceSheetStatements", contracts.StatementBalance, contracts.PeriodQuarterly},
	{"cashflowStatementHistory", "cashflowStatements", contracts.StatementCashFlow, contracts.PeriodAnnual},
	{"cashflowStatementHistoryQuarterly", "cashflowStatements", contracts.StatementCashFlow, contracts.PeriodQuarterly},
}

// FetchStatements fetches annual and quarterly income, balance sheet,
// and cash flow statements, remapped to canonical line item labels.
func (c *Client) FetchStatements(ctx context.Context, symbol string) ([]*contracts.FinancialStatement, error) {
	modules := make([]string, 0, len(statementModules)+1)
	for _, m := range statementModules {
		modules = append(modules, m.module)
	}
	modules = append(modules, "financialData")

	result, err := c.fetchQuoteSummary(ctx, symbol, modules...)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	currency := "USD"
	var financial struct {
		FinancialCurrency string `json:"financialCurrency"`
	}
	if data, exists := result["financialData"]; exists {
		if err := json.Unmarshal(data, &financial); err == nil && financial.FinancialCurrency != "" {
			currency = financial.FinancialCurrency
		}
	}

	var statements []*contracts.FinancialStatement
	for _, m := range statementModules {
		entries := decodeStatementList(result[m.module], m.listKey)
		for _, e := range entries {
			statement := buildStatement(symbol, m.kind, m.period, currency, e)
			if statement != nil {
				statements = append(statements, statement)
			}
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(statements),
	}).Debug("Fetched financial statements")

	return statements, nil
}

// decodeStatementList pulls the statement entries out of one module
// payload.
func decodeStatementList(data json.RawMessage, listKey string) []entry {
	if data == nil {
		return nil
	}
	var module map[string]json.RawMessage
	if err := json.Unmarshal(data, &module); err != nil {
		return nil
	}
	var entries []entry
	if err := json.Unmarshal(module[listKey], &entries); err != nil {
		return nil
	}
	return entries
}

// buildStatement converts one Yahoo statement entry to the canonical
// shape. Entries without an end date are dropped.
func buildStatement(symbol string, kind contracts.StatementType, period, currency string, e entry) *contracts.FinancialStatement {
	endDate, ok := e.value("endDate")
	if !ok {
		return nil
	}
	date := time.Unix(int64(endDate), 0).UTC().Truncate(24 * time.Hour)

	data := make(map[string]float64)
	switch kind {
	case contracts.StatementIncome:
		putValue(data, "Total Revenue", e, "totalRevenue")
		putValue(data, "Net Income", e, "netIncome")
		putValue(data, "Operating Income", e, "operatingIncome")
		putValue(data, "Gross Profit", e, "grossProfit")
		putValue(data, "EBITDA", e, "ebitda")

	case contracts.StatementBalance:
		putValue(data, "Total Assets", e, "totalAssets")
		putValue(data, "Total Liabilities", e, "totalLiab")
		putValue(data, "Total Equity", e, "totalStockholderEquity")
		putValue(data, "Cash And Cash Equivalents", e, "cash")

		// Short and long term debt together make up total debt.
		shortDebt, hasShort := e.value("shortLongTermDebt")
		longDebt, hasLong := e.value("longTermDebt")
		if hasShort || hasLong {
			data["Total Debt"] = shortDebt + longDebt
		}

	case contracts.StatementCashFlow:
		putValue(data, "Operating Cash Flow", e, "totalCashFromOperatingActivities")
		putValue(data, "Capital Expenditure", e, "capitalExpenditures")
		putValue(data, "Dividend Paid", e, "dividendsPaid")

		// Yahoo reports capex as a negative outflow, so free cash
		// flow is the plain sum.
		opCF, hasOp := e.value("totalCashFromOperatingActivities")
		capex, hasCapex := e.value("capitalExpenditures")
		if hasOp && hasCapex {
			data["Free Cash Flow"] = opCF + capex
		}
	}

	statement := &contracts.FinancialStatement{
		RecordMeta:    contracts.NewRecordMeta(symbol, sourceName),
		StatementType: kind,
		Period:        period,
		Date:          date,
		Data:          data,
		Currency:      currency,
		FiscalYear:    date.Year(),
	}
	if period == contracts.PeriodQuarterly {
		statement.FiscalQuarter = (int(date.Month()) + 2) / 3
	}

	return statement
}

func putValue(data map[string]float64, label string, e entry, key string) {
	if v, ok := e.value(key); ok {
		data[label] = v
	}
}
