package logger_test

import (
	"errors"

	"github.com/tumkwe/invest/pkg/config"
	"github.com/tumkwe/invest/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	// Create logger (SSOT)
	log := logger.New(cfg)

	// Basic logging
	log.Debug("This won't appear (level is info)")
	log.Info("Collection manager started")
	log.Warn("News API key missing, news collection disabled")
	log.Error("Failed to connect")

	// Formatted logging
	log.Infof("Tracking %d symbols", 12)
	log.Warnf("Retry attempt %d of %d", 3, 5)

	// Example output:
	// (console output with timestamps)
}

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Add single field
	symbolLog := log.WithField("symbol", "AAPL")
	symbolLog.Info("Symbol added for collection")

	// Add multiple fields
	taskLog := log.WithFields(map[string]interface{}{
		"task":      "market_data_collection",
		"data_type": "market_data",
		"records":   90,
		"valid":     88,
	})
	taskLog.Info("Collection task completed")

	// Example output:
	// {"level":"info","symbol":"AAPL","message":"Symbol added for collection",...}
	// {"level":"info","task":"market_data_collection","data_type":"market_data","records":90,"valid":88,"message":"Collection task completed",...}
}

// Example_withError demonstrates error logging
func Example_withError() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Log with error
	err := errors.New("provider request timed out")
	log.WithError(err).Error("Failed to fetch price history")

	// Combine error with fields
	log.WithError(err).
		WithFields(map[string]interface{}{
			"symbol":        "AAPL",
			"failure_count": 3,
		}).
		Error("Task failed, rescheduled for next interval")

	// Example output:
	// {"level":"error","error":"provider request timed out","message":"Failed to fetch price history",...}
	// {"level":"error","error":"provider request timed out","symbol":"AAPL","failure_count":3,"message":"Task failed, rescheduled for next interval",...}
}
