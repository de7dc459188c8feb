package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"p9e.in/brokerdesk/models"
)

func TestValidateRequirementNormalizesMoney(t *testing.T) {
	item := models.RequirementItem{
		Demand:       "2BR near the marina",
		SqFootage:    "1.5K",
		PreferredROI: "6",
	}
	require.Empty(t, validateRequirement(&item))
	require.Equal(t, "1500", item.SqFootage)
	require.Equal(t, "6", item.PreferredROI)
}

func TestValidateRequirementFieldErrors(t *testing.T) {
	item := models.RequirementItem{
		Status:     models.RequirementStatus("paused"),
		RtmOffplan: models.RtmOffplan("MAYBE"),
		Category:   models.RequirementCategory("BUDGET"),
		SqFootage:  "spacious",
	}
	errs := validateRequirement(&item)

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	require.True(t, fields["demand"])
	require.True(t, fields["status"])
	require.True(t, fields["rtmOffplan"])
	require.True(t, fields["category"])
	require.True(t, fields["sq_footage"])
}

func TestCreateRequirementRejectsInvalidPayload(t *testing.T) {
	body := `{"status": "paused"}`
	req := httptest.NewRequest("POST", "/api/v1/requirements", strings.NewReader(body))
	rec := httptest.NewRecorder()

	CreateRequirement(rec, req)

	require.Equal(t, 400, rec.Code)
	require.Contains(t, rec.Body.String(), `"success":false`)
}
