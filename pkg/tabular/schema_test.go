package tabular

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

type listing struct {
	ID        int
	Developer string
	Location  string
	Status    string
	PriceAED  string `gorm:"column:price_aed"`
	Bedrooms  int
	CreatedAt time.Time
}

var listingSchema = Schema{
	Columns: map[string]Column{
		"Developer Name": {Field: "developer", Kind: TextContains},
		"Unit Status":    {Field: "status", Kind: EnumEquals, Enum: []string{"available", "sold"}},
		"Price (AED)":    {Field: "price_aed", Kind: NumericFuzzyRange},
		"Bedrooms":       {Field: "bedrooms", Kind: IntegerEquals},
	},
	SearchFields: []string{"developer", "location"},
	DefaultOrder: "created_at DESC",
}

// buildSQL renders the statement a predicate chain would execute, without a
// database, via gorm's dry-run mode.
func buildSQL(t *testing.T, f func(tx *gorm.DB) *gorm.DB) string {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	var rows []listing
	res := f(db.Model(&listing{})).Find(&rows)
	require.NoError(t, res.Error)
	return res.Statement.SQL.String()
}

func TestApplyFilterPredicates(t *testing.T) {
	textSQL := buildSQL(t, func(tx *gorm.DB) *gorm.DB {
		return listingSchema.applyFilter(tx, "Developer Name", "emaar")
	})
	require.Contains(t, textSQL, "developer ILIKE")

	enumSQL := buildSQL(t, func(tx *gorm.DB) *gorm.DB {
		return listingSchema.applyFilter(tx, "Unit Status", "sold")
	})
	require.Contains(t, enumSQL, "status = ")

	rangeSQL := buildSQL(t, func(tx *gorm.DB) *gorm.DB {
		return listingSchema.applyFilter(tx, "Price (AED)", "900K")
	})
	require.Contains(t, rangeSQL, "NULLIF(price_aed, '')::numeric BETWEEN")

	intSQL := buildSQL(t, func(tx *gorm.DB) *gorm.DB {
		return listingSchema.applyFilter(tx, "Bedrooms", "3")
	})
	require.Contains(t, intSQL, "bedrooms = ")
}

// Optional money columns hold '' on rows that never got a value; the range
// predicate must guard the cast so those rows drop out instead of raising
// invalid numeric input and failing the whole page.
func TestFuzzyRangeGuardsEmptyStoredValues(t *testing.T) {
	sql := buildSQL(t, func(tx *gorm.DB) *gorm.DB {
		return listingSchema.applyFilter(tx, "Price (AED)", "100")
	})
	require.Contains(t, sql, "NULLIF(price_aed, '')")
	require.NotContains(t, sql, "(price_aed)::numeric")
}

// Malformed filter input drops the one predicate, leaving the query exactly
// as unfiltered: the total must match a no-filter request, not a zeroed-out
// one.
func TestApplyFilterFailSoft(t *testing.T) {
	unfiltered := buildSQL(t, func(tx *gorm.DB) *gorm.DB { return tx })

	tests := []struct {
		name   string
		label  string
		value  string
	}{
		{"unknown column label", "Square Root", "42"},
		{"enum value outside the set", "Unit Status", "haunted"},
		{"unparseable numeric", "Price (AED)", "cheap"},
		{"unparseable integer", "Bedrooms", "many"},
		{"empty value", "Developer Name", ""},
		{"empty label", "", "emaar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildSQL(t, func(tx *gorm.DB) *gorm.DB {
				return listingSchema.applyFilter(tx, tt.label, tt.value)
			})
			require.Equal(t, unfiltered, got)
		})
	}
}

func TestApplySearch(t *testing.T) {
	sql := buildSQL(t, func(tx *gorm.DB) *gorm.DB {
		return listingSchema.applySearch(tx, "marina")
	})
	require.Contains(t, sql, "developer ILIKE")
	require.Contains(t, sql, " OR ")
	require.Contains(t, sql, "location ILIKE")

	unfiltered := buildSQL(t, func(tx *gorm.DB) *gorm.DB { return tx })
	empty := buildSQL(t, func(tx *gorm.DB) *gorm.DB {
		return listingSchema.applySearch(tx, "")
	})
	require.Equal(t, unfiltered, empty)
}

// filterColumn and search apply together, AND of the two groups.
func TestFilterAndSearchCombine(t *testing.T) {
	sql := buildSQL(t, func(tx *gorm.DB) *gorm.DB {
		tx = listingSchema.applyFilter(tx, "Unit Status", "available")
		return listingSchema.applySearch(tx, "marina")
	})
	require.Contains(t, sql, "status = ")
	require.Contains(t, sql, "developer ILIKE")
}

func TestOrderClause(t *testing.T) {
	require.Equal(t, "created_at DESC", listingSchema.orderClause("", false))
	require.Equal(t, "created_at DESC", listingSchema.orderClause("Nonsense", true))
	require.Equal(t, "price_aed ASC", listingSchema.orderClause("Price (AED)", false))
	require.Equal(t, "price_aed DESC", listingSchema.orderClause("Price (AED)", true))
}
