package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"p9e.in/brokerdesk/models"
)

func TestRowsToInventory(t *testing.T) {
	rows := [][]string{
		{"inventory_id", "developer", "project", "location", "price_aed", "bedrooms", "status"},
		{"", "Emaar", "Marina Vista", "Dubai Marina", "1.2M", "2", "available"},
		{"", "Damac", "Safa One", "Business Bay", "950,000", "1", ""},
	}

	items, skipped, errs := rowsToInventory(rows)
	require.Empty(t, errs)
	require.Zero(t, skipped)
	require.Len(t, items, 2)

	require.Equal(t, "Emaar", items[0].Developer)
	require.Equal(t, "Marina Vista", items[0].Project)
	require.Equal(t, "1200000", items[0].PriceAED) // normalized on the way in
	require.Equal(t, 2, items[0].Bedrooms)
	require.Equal(t, models.UnitAvailable, items[0].Status)

	require.Equal(t, "950000", items[1].PriceAED)
	require.Equal(t, models.UnitAvailable, items[1].Status) // defaulted
}

// Rows carrying a non-empty inventory_id never reach create: ids are
// server-assigned.
func TestRowsToInventorySkipsAssignedIDs(t *testing.T) {
	rows := [][]string{
		{"inventory_id", "project", "location"},
		{"3f2f1a9e-0000-0000-0000-000000000000", "Old Import", "Dubai"},
		{"", "Fresh Row", "Dubai"},
		{"  ", "Whitespace Id Row", "Dubai"}, // whitespace counts as empty
	}

	items, skipped, errs := rowsToInventory(rows)
	require.Empty(t, errs)
	require.Equal(t, 1, skipped)
	require.Len(t, items, 2)
	require.Equal(t, "Fresh Row", items[0].Project)
	require.Equal(t, "Whitespace Id Row", items[1].Project)
}

func TestRowsToInventoryReportsRowErrors(t *testing.T) {
	rows := [][]string{
		{"inventory_id", "project", "location", "price_aed"},
		{"", "", "Dubai", "900K"},          // missing project
		{"", "Tower B", "Dubai", "cheap"},  // bad amount
		{"", "Tower C", "JVC", "450K"},     // fine
	}

	items, skipped, errs := rowsToInventory(rows)
	require.Zero(t, skipped)
	require.Len(t, items, 1)
	require.Equal(t, "Tower C", items[0].Project)

	require.Len(t, errs, 2)
	require.Equal(t, 2, errs[0].Row)
	require.Contains(t, errs[0].Message, "project")
	require.Equal(t, 3, errs[1].Row)
	require.Contains(t, errs[1].Message, "price_aed")
}

func TestRowsToInventoryMissingHeader(t *testing.T) {
	items, skipped, errs := rowsToInventory(nil)
	require.Nil(t, items)
	require.Zero(t, skipped)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Message, "header")
}

// Extra columns from a round-tripped export are ignored, short rows don't
// panic.
func TestRowsToInventoryToleratesRaggedRows(t *testing.T) {
	rows := [][]string{
		{"inventory_id", "project", "location", "mystery_column"},
		{"", "Tower A", "Dubai", "whatever", "overflow cell"},
		{"", "Tower B"},
	}

	items, _, errs := rowsToInventory(rows)
	require.Len(t, items, 1)
	require.Equal(t, "Tower A", items[0].Project)
	// Tower B has no location and fails validation instead of panicking
	require.Len(t, errs, 1)
	require.Equal(t, 3, errs[0].Row)
}
