package edgar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tumkwe/invest/pkg/config"
	"github.com/tumkwe/invest/pkg/httputil"
	"github.com/tumkwe/invest/pkg/logger"
)

const tickerMapPayload = `{
	"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
	"1": {"cik_str": 789019, "ticker": "MSFT", "title": "MICROSOFT CORP"}
}`

const submissionsPayload = `{
	"cik": "320193",
	"name": "Apple Inc.",
	"filings": {
		"recent": {
			"accessionNumber": ["0000320193-25-000079", "0000320193-25-000071", "0000320193-25-000066"],
			"filingDate":      ["2025-08-01", "2025-07-15", "2025-05-02"],
			"reportDate":      ["2025-06-28", "", "2025-03-29"],
			"form":            ["10-Q", "4", "10-Q"],
			"primaryDocument": ["aapl-20250628.htm", "xslF345X05/wk-form4.xml", "aapl-20250329.htm"]
		}
	}
}`

func testEDGARClient(t *testing.T) (*Client, *string) {
	t.Helper()

	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/files/company_tickers.json":
			w.Write([]byte(tickerMapPayload))
		case "/submissions/CIK0000320193.json":
			w.Write([]byte(submissionsPayload))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	log := logger.New(&config.Config{LogLevel: "error", LogFormat: "json"})
	httpClient := httputil.New(log).DisableRetry()

	client := NewClient(config.EDGARConfig{
		BaseURL:   server.URL,
		UserAgent: "TumkweInvest test@tumkwe.example",
	}, httpClient, log)
	client.tickerURL = server.URL + "/files/company_tickers.json"

	return client, &gotUserAgent
}

func TestFetchFilings(t *testing.T) {
	client, userAgent := testEDGARClient(t)

	filings, err := client.FetchFilings(context.Background(), "aapl")

	require.NoError(t, err)
	assert.Equal(t, "TumkweInvest test@tumkwe.example", *userAgent)

	// The Form 4 is filtered out.
	require.Len(t, filings, 2)

	first := filings[0]
	assert.Equal(t, "AAPL", first.Symbol)
	assert.Equal(t, "10-Q", first.FilingType)
	assert.Equal(t, "0000320193-25-000079", first.AccessionNumber)
	assert.Equal(t, "2025-08-01", first.FilingDate.Format("2006-01-02"))
	require.NotNil(t, first.PeriodEndDate)
	assert.Equal(t, "2025-06-28", first.PeriodEndDate.Format("2006-01-02"))
	assert.Equal(t,
		"https://www.sec.gov/Archives/edgar/data/320193/000032019325000079/aapl-20250628.htm",
		first.URL)
}

func TestFetchFilings_UnknownSymbol(t *testing.T) {
	client, _ := testEDGARClient(t)

	_, err := client.FetchFilings(context.Background(), "NOPE")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no CIK found")
}
