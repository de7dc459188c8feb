package tabular

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"thousand shorthand", "900K", "900000"},
		{"lowercase thousand", "900k", "900000"},
		{"fractional million", "1.2M", "1200000"},
		{"crore", "2Cr", "20000000"},
		{"crore case insensitive", "2cr", "20000000"},
		{"plain integer", "900000", "900000"},
		{"plain decimal", "1250.50", "1250.5"},
		{"thousands separators", "1,200,000", "1200000"},
		{"separators with shorthand", "1,2K", "12000"},
		{"surrounding whitespace", "  450K ", "450000"},
		{"suffix with space", "3 M", "3000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAmount(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalizeAmountIdempotent(t *testing.T) {
	inputs := []string{"900K", "1.2M", "2Cr", "42", "1,000", "0.5"}
	for _, in := range inputs {
		once, err := NormalizeAmount(in)
		require.NoError(t, err)
		twice, err := NormalizeAmount(once)
		require.NoError(t, err)
		require.Equal(t, once, twice, "normalize(normalize(%q))", in)
	}
}

func TestNormalizeAmountRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "K", "12xyz", "1.2.3"} {
		_, err := NormalizeAmount(in)
		require.Error(t, err, "input %q", in)
	}
}

func TestFuzzyBounds(t *testing.T) {
	lower, upper, err := FuzzyBounds("100")
	require.NoError(t, err)
	require.Equal(t, "90", lower)
	require.Equal(t, "110", upper)

	lower, upper, err = FuzzyBounds("1.2M")
	require.NoError(t, err)
	require.Equal(t, "1080000", lower)
	require.Equal(t, "1320000", upper)
}

// The band is inclusive at both ends: for a filter value of 100, stored
// values 90, 100, 109 and 110 match, 89.99 and 111 do not.
func TestFuzzyBoundsInclusivity(t *testing.T) {
	lower, upper, err := FuzzyBounds("100")
	require.NoError(t, err)

	lo := decimal.RequireFromString(lower)
	hi := decimal.RequireFromString(upper)
	within := func(s string) bool {
		d := decimal.RequireFromString(s)
		return d.GreaterThanOrEqual(lo) && d.LessThanOrEqual(hi)
	}

	require.True(t, within("90"))
	require.True(t, within("100"))
	require.True(t, within("109"))
	require.True(t, within("110"))
	require.False(t, within("89.99"))
	require.False(t, within("110.01"))
	require.False(t, within("111"))
	require.False(t, within("200"))
}
