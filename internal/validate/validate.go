// Package validate grades freshly fetched records before analysis code
// sees them. Validators are pure: they never return errors, they flag bad
// records in place and report what they found. A record that cannot be
// checked is treated as invalid, never as a failure of the validator.
package validate

import "math"

// Thresholds holds the configurable validation limits.
type Thresholds struct {
	MaxPriceChangePercent float64 // flag daily close-to-close changes above this
	MinDataCompleteness   float64 // required share of expected trading days
	MaxPERatio            float64 // flag P/E ratios above this
	MaxOutlierStd         float64 // flag closes further than this many std devs from mean
}

// DefaultThresholds returns the standard validation limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxPriceChangePercent: 25,
		MinDataCompleteness:   0.95,
		MaxPERatio:            500,
		MaxOutlierStd:         3,
	}
}

// Validator applies quality checks using a fixed set of thresholds.
type Validator struct {
	cfg Thresholds
}

// New creates a validator with the given thresholds.
func New(cfg Thresholds) *Validator {
	return &Validator{cfg: cfg}
}

// mean returns the arithmetic mean of values, 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdev returns the sample standard deviation, 0 when there are fewer
// than two values.
func stdev(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
