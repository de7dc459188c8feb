package tabular

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Shorthand suffixes accepted in monetary input. Cr (crore) is ten million,
// as used in INR pricing.
var suffixMultipliers = []struct {
	suffix     string
	multiplier decimal.Decimal
}{
	{"CR", decimal.NewFromInt(10_000_000)},
	{"M", decimal.NewFromInt(1_000_000)},
	{"K", decimal.NewFromInt(1_000)},
}

var (
	fuzzyLower = decimal.RequireFromString("0.9")
	fuzzyUpper = decimal.RequireFromString("1.1")
)

// NormalizeAmount converts a monetary or area input, possibly carrying a
// shorthand suffix ("900K", "1.2M", "2Cr") or thousands separators
// ("1,200,000"), into a plain decimal string. It is idempotent: feeding the
// output back in returns the same string.
func NormalizeAmount(s string) (string, error) {
	trimmed := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if trimmed == "" {
		return "", fmt.Errorf("empty amount")
	}

	multiplier := decimal.NewFromInt(1)
	upper := strings.ToUpper(trimmed)
	for _, sm := range suffixMultipliers {
		if strings.HasSuffix(upper, sm.suffix) {
			multiplier = sm.multiplier
			trimmed = strings.TrimSpace(trimmed[:len(trimmed)-len(sm.suffix)])
			break
		}
	}
	if trimmed == "" {
		return "", fmt.Errorf("amount %q has no numeric part", s)
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d.Mul(multiplier).String(), nil
}

// FuzzyBounds returns the inclusive [value*0.9, value*1.1] band for a numeric
// filter input. The input goes through NormalizeAmount first, so shorthand
// filter values ("1.2M") band the same way typed-out ones do.
func FuzzyBounds(s string) (lower, upper string, err error) {
	normalized, err := NormalizeAmount(s)
	if err != nil {
		return "", "", err
	}
	d := decimal.RequireFromString(normalized)
	return d.Mul(fuzzyLower).String(), d.Mul(fuzzyUpper).String(), nil
}
