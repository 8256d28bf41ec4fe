package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/tumkwe/invest/internal/contracts"
)

// quoteSummaryResponse is the /v10/finance/quoteSummary payload. Module
// contents are decoded lazily per field.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// fetchQuoteSummary fetches the requested quoteSummary modules for a
// symbol.
func (c *Client) fetchQuoteSummary(ctx context.Context, symbol string, modules ...string) (map[string]json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("modules", joinModules(modules))

	fullURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())

	var resp quoteSummaryResponse
	if err := c.httpClient.GetJSON(ctx, fullURL, &resp); err != nil {
		return nil, fmt.Errorf("quoteSummary request failed: %w", err)
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quoteSummary API error: %s (%s)",
			resp.QuoteSummary.Error.Description, resp.QuoteSummary.Error.Code)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, nil
	}

	return resp.QuoteSummary.Result[0], nil
}

func joinModules(modules []string) string {
	joined := ""
	for i, m := range modules {
		if i > 0 {
			joined += ","
		}
		joined += m
	}
	return joined
}

// decodeModule decodes one module from a quoteSummary result.
func decodeModule(result map[string]json.RawMessage, name string) entry {
	data, exists := result[name]
	if !exists {
		return nil
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil
	}
	return e
}

// FetchKeyMetrics fetches a valuation and ratio snapshot. Metrics Yahoo
// does not report stay nil.
func (c *Client) FetchKeyMetrics(ctx context.Context, symbol string) (*contracts.KeyMetrics, error) {
	result, err := c.fetchQuoteSummary(ctx, symbol,
		"summaryDetail", "defaultKeyStatistics", "financialData")
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	summary := decodeModule(result, "summaryDetail")
	stats := decodeModule(result, "defaultKeyStatistics")
	financial := decodeModule(result, "financialData")

	metrics := &contracts.KeyMetrics{
		RecordMeta:     contracts.NewRecordMeta(symbol, sourceName),
		Date:           time.Now().UTC().Truncate(24 * time.Hour),
		PERatio:        summary.pointer("trailingPE"),
		PBRatio:        stats.pointer("priceToBook"),
		DividendYield:  summary.pointer("dividendYield"),
		EPS:            stats.pointer("trailingEps"),
		MarketCap:      summary.pointer("marketCap"),
		DebtToEquity:   financial.pointer("debtToEquity"),
		ReturnOnEquity: financial.pointer("returnOnEquity"),
		ReturnOnAssets: financial.pointer("returnOnAssets"),
		ProfitMargin:   financial.pointer("profitMargins"),
		CurrentRatio:   financial.pointer("currentRatio"),
		QuickRatio:     financial.pointer("quickRatio"),
	}

	c.logger.WithField("symbol", symbol).Debug("Fetched key metrics")
	return metrics, nil
}

// FetchProfile fetches the company profile.
func (c *Client) FetchProfile(ctx context.Context, symbol string) (*contracts.CompanyProfile, error) {
	result, err := c.fetchQuoteSummary(ctx, symbol, "assetProfile", "price")
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	var asset struct {
		Sector              string `json:"sector"`
		Industry            string `json:"industry"`
		LongBusinessSummary string `json:"longBusinessSummary"`
		Website             string `json:"website"`
		Country             string `json:"country"`
		FullTimeEmployees   int    `json:"fullTimeEmployees"`
	}
	if data, exists := result["assetProfile"]; exists {
		if err := json.Unmarshal(data, &asset); err != nil {
			return nil, fmt.Errorf("decode assetProfile: %w", err)
		}
	}

	var price struct {
		LongName     string   `json:"longName"`
		ShortName    string   `json:"shortName"`
		ExchangeName string   `json:"exchangeName"`
		MarketCap    rawValue `json:"marketCap"`
	}
	if data, exists := result["price"]; exists {
		if err := json.Unmarshal(data, &price); err != nil {
			return nil, fmt.Errorf("decode price: %w", err)
		}
	}

	name := price.LongName
	if name == "" {
		name = price.ShortName
	}

	profile := &contracts.CompanyProfile{
		RecordMeta:  contracts.NewRecordMeta(symbol, sourceName),
		Name:        name,
		Sector:      asset.Sector,
		Industry:    asset.Industry,
		Description: asset.LongBusinessSummary,
		Website:     asset.Website,
		Country:     asset.Country,
		Exchange:    price.ExchangeName,
		Employees:   asset.FullTimeEmployees,
	}
	if price.MarketCap.Raw != nil {
		profile.MarketCap = *price.MarketCap.Raw
	}

	c.logger.WithField("symbol", symbol).Debug("Fetched company profile")
	return profile, nil
}
