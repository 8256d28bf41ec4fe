package httputil_test

import (
	"context"
	"fmt"
	"time"

	"github.com/tumkwe/invest/pkg/config"
	"github.com/tumkwe/invest/pkg/httputil"
	"github.com/tumkwe/invest/pkg/logger"
)

// Example_basic demonstrates basic HTTP client usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}
	log := logger.New(cfg)

	// Create HTTP client (SSOT)
	client := httputil.New(log)

	// Make GET request
	ctx := context.Background()
	resp, err := client.Get(ctx, "https://api.example.com/data")
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	fmt.Printf("Status: %d\n", resp.StatusCode)
	// Example output:
	// (Status code from real request)
}

// Example_getJSON demonstrates decoding a JSON response
func Example_getJSON() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}
	log := logger.New(cfg)

	client := httputil.New(log)

	var result struct {
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
	}

	ctx := context.Background()
	if err := client.GetJSON(ctx, "https://api.example.com/quote", &result); err != nil {
		fmt.Printf("Request failed: %v\n", err)
		return
	}

	fmt.Printf("%s: %.2f\n", result.Symbol, result.Price)
	// Example output:
	// (Decoded quote from real request)
}

// Example_withRetry demonstrates retry configuration
func Example_withRetry() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}
	log := logger.New(cfg)

	// Create client with custom retry settings
	client := httputil.New(log).
		WithRetry(5, 2*time.Second) // 5 retries, 2s initial delay

	ctx := context.Background()
	resp, err := client.Get(ctx, "https://api.example.com/data")
	if err != nil {
		fmt.Printf("Request failed after retries: %v\n", err)
		return
	}
	defer resp.Body.Close()

	fmt.Println("Request succeeded")
	// Example output:
	// (Success or failure after retries)
}

// Example_withHeader demonstrates default headers, as required by SEC EDGAR
func Example_withHeader() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}
	log := logger.New(cfg)

	// EDGAR rejects requests without a descriptive User-Agent
	client := httputil.New(log).
		WithHeader("User-Agent", "TumkweInvest contact@tumkwe.example")

	ctx := context.Background()
	resp, err := client.Get(ctx, "https://data.sec.gov/submissions/CIK0000320193.json")
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	fmt.Printf("Status: %d\n", resp.StatusCode)
	// Example output:
	// (Status code from real request)
}
