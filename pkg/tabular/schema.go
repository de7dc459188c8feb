package tabular

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Kind selects how a column's filter value is interpreted.
type Kind int

const (
	// TextContains matches case-insensitive substrings (ILIKE %value%).
	TextContains Kind = iota
	// EnumEquals matches exactly against a closed value set; values outside
	// the set drop the filter.
	EnumEquals
	// NumericFuzzyRange matches stored values within ±10% of the input.
	NumericFuzzyRange
	// IntegerEquals matches an exact integer value.
	IntegerEquals
)

// Column describes one filterable/sortable column of an entity.
type Column struct {
	Field string // storage column name
	Kind  Kind
	Enum  []string // closed set, EnumEquals only
}

// Schema is the fixed per-entity map from human-readable column label to
// filter semantics. Labels not in the map are no-ops, never errors, so list
// views stay usable under stale or hand-edited query strings.
type Schema struct {
	Columns      map[string]Column
	SearchFields []string // free-text search targets, OR-combined
	DefaultOrder string   // e.g. "created_at DESC"
	Preloads     []string // associations loaded with every row query
}

// applyFilter adds the filterColumn/filterValue predicate to tx. Malformed
// input drops the one predicate and returns tx unchanged.
func (s Schema) applyFilter(tx *gorm.DB, label, value string) *gorm.DB {
	if label == "" || value == "" {
		return tx
	}
	col, ok := s.Columns[label]
	if !ok {
		return tx
	}

	switch col.Kind {
	case TextContains:
		return tx.Where(col.Field+" ILIKE ?", "%"+value+"%")
	case EnumEquals:
		if !slices.Contains(col.Enum, value) {
			return tx
		}
		return tx.Where(col.Field+" = ?", value)
	case NumericFuzzyRange:
		lower, upper, err := FuzzyBounds(value)
		if err != nil {
			return tx
		}
		// Money fields are text and optional; NULLIF keeps blank rows out of
		// the cast instead of aborting the whole query.
		return tx.Where(fmt.Sprintf("NULLIF(%s, '')::numeric BETWEEN ? AND ?", col.Field), lower, upper)
	case IntegerEquals:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return tx
		}
		return tx.Where(col.Field+" = ?", n)
	}
	return tx
}

// applySearch adds the free-text OR group across SearchFields.
func (s Schema) applySearch(tx *gorm.DB, search string) *gorm.DB {
	if search == "" || len(s.SearchFields) == 0 {
		return tx
	}
	clauses := make([]string, 0, len(s.SearchFields))
	args := make([]interface{}, 0, len(s.SearchFields))
	for _, field := range s.SearchFields {
		clauses = append(clauses, field+" ILIKE ?")
		args = append(args, "%"+search+"%")
	}
	return tx.Where(strings.Join(clauses, " OR "), args...)
}

// orderClause resolves the sort request, falling back to DefaultOrder when
// the label is unmapped or absent. One sort key only.
func (s Schema) orderClause(label string, desc bool) string {
	col, ok := s.Columns[label]
	if !ok {
		return s.DefaultOrder
	}
	if desc {
		return col.Field + " DESC"
	}
	return col.Field + " ASC"
}
