package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnumValidity(t *testing.T) {
	tests := []struct {
		name  string
		valid func() bool
		want  bool
	}{
		{"unit status available", UnitAvailable.Valid, true},
		{"unit status rented", UnitRented.Valid, true},
		{"unit status bogus", UnitStatus("haunted").Valid, false},
		{"unit status empty", UnitStatus("").Valid, false},
		{"requirement open", RequirementOpen.Valid, true},
		{"requirement bogus", RequirementStatus("pending").Valid, false},
		{"rtm both", RtmEither.Valid, true},
		{"rtm bogus", RtmOffplan("READY").Valid, false},
		{"category luxury concierge", CategoryLuxuryConcierge.Valid, true},
		{"category bogus", RequirementCategory("OTHER").Valid, false},
		{"deal won", DealWon.Valid, true},
		{"deal bogus", DealStatus("signed").Valid, false},
		{"role admin", RoleAdmin.Valid, true},
		{"role bogus", Role("superuser").Valid, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.valid())
		})
	}
}

// The status field has no transition graph: a sold unit can go straight back
// to available and on to reserved, no intervening state required.
func TestUnitStatusTransitionsUnrestricted(t *testing.T) {
	require.True(t, UnitSold.CanTransitionTo(UnitAvailable))
	require.True(t, UnitAvailable.CanTransitionTo(UnitReserved))

	for _, from := range UnitStatuses {
		for _, to := range UnitStatuses {
			require.True(t, UnitStatus(from).CanTransitionTo(UnitStatus(to)),
				"%s -> %s", from, to)
		}
	}
	require.False(t, UnitSold.CanTransitionTo(UnitStatus("haunted")))
}

func TestSchemasCoverLabels(t *testing.T) {
	inv := InventorySchema()
	for _, label := range []string{
		"Developer Name", "Project Name", "Property Type", "Location",
		"Unit Number", "Remarks", "Bedrooms", "Area (sqft)", "Price (AED)",
		"Selling Price (AED)", "Price (INR)", "Approx. Rent", "ROI",
		"Markup", "Brokerage", "Unit Status",
	} {
		_, ok := inv.Columns[label]
		require.True(t, ok, "inventory label %q", label)
	}
	require.Equal(t, "created_at DESC", inv.DefaultOrder)

	req := RequirementSchema()
	for _, label := range []string{
		"Demand", "Property Type", "Location", "Description", "Budget",
		"Preferred Square Footage", "Preferred ROI", "RTM/Off-plan",
		"Category", "Status",
	} {
		_, ok := req.Columns[label]
		require.True(t, ok, "requirement label %q", label)
	}
	require.ElementsMatch(t,
		[]string{"property_type", "description", "demand", "location", "budget"},
		req.SearchFields)
}
