package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"p9e.in/brokerdesk/pkg/tabular"
)

// RequirementStatus tracks where a client requirement stands. No workflow
// ordering — any status can follow any other.
type RequirementStatus string

const (
	RequirementOpen        RequirementStatus = "open"
	RequirementAssigned    RequirementStatus = "assigned"
	RequirementNegotiation RequirementStatus = "negotiation"
	RequirementClosed      RequirementStatus = "closed"
	RequirementRejected    RequirementStatus = "rejected"
)

var RequirementStatuses = []string{
	string(RequirementOpen), string(RequirementAssigned),
	string(RequirementNegotiation), string(RequirementClosed),
	string(RequirementRejected),
}

func (s RequirementStatus) Valid() bool {
	for _, v := range RequirementStatuses {
		if string(s) == v {
			return true
		}
	}
	return false
}

// RtmOffplan marks whether the client wants ready-to-move stock, off-plan,
// either, or has not said.
type RtmOffplan string

const (
	RtmReady      RtmOffplan = "RTM"
	RtmOffplanNew RtmOffplan = "OFFPLAN"
	RtmEither     RtmOffplan = "RTM-OFFPLAN"
	RtmNone       RtmOffplan = "NONE"
)

var RtmOffplanValues = []string{
	string(RtmReady), string(RtmOffplanNew), string(RtmEither), string(RtmNone),
}

func (r RtmOffplan) Valid() bool {
	for _, v := range RtmOffplanValues {
		if string(r) == v {
			return true
		}
	}
	return false
}

// RequirementCategory is the sourcing channel the requirement came through.
type RequirementCategory string

const (
	CategoryRise            RequirementCategory = "RISE"
	CategoryNestseekers     RequirementCategory = "NESTSEEKERS"
	CategoryLuxuryConcierge RequirementCategory = "LUXURY CONCIERGE"
)

var RequirementCategories = []string{
	string(CategoryRise), string(CategoryNestseekers), string(CategoryLuxuryConcierge),
}

func (c RequirementCategory) Valid() bool {
	for _, v := range RequirementCategories {
		if string(c) == v {
			return true
		}
	}
	return false
}

// RequirementItem is one client demand. Budget stays free text (clients say
// things like "under 2M or good ROI"); square footage and preferred ROI are
// decimal strings like the inventory money fields. Requirements are never
// hard-deleted; they are closed or rejected by status.
type RequirementItem struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	Demand           string              `gorm:"column:demand;size:255" json:"demand"`
	PropertyType     string              `gorm:"column:property_type;size:100" json:"propertyType"`
	Location         string              `gorm:"column:location;size:255" json:"location"`
	Description      string              `gorm:"column:description;type:text" json:"description"`
	Budget           string              `gorm:"column:budget;size:255" json:"budget"`
	SqFootage        string              `gorm:"column:sq_footage;size:50" json:"sqFootage"`
	PreferredROI     string              `gorm:"column:preferred_roi;size:50" json:"preferredROI"`
	CallMade         bool                `gorm:"column:call_made;default:false" json:"callMade"`
	ViewingScheduled bool                `gorm:"column:viewing_scheduled;default:false" json:"viewingScheduled"`
	PHPP             bool                `gorm:"column:phpp;default:false" json:"phpp"`
	RtmOffplan       RtmOffplan          `gorm:"column:rtm_offplan;type:varchar(20);default:'NONE'" json:"rtmOffplan"`
	Category         RequirementCategory `gorm:"column:category;type:varchar(30)" json:"category"`
	Status           RequirementStatus   `gorm:"column:status;type:varchar(20);default:'open'" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *RequirementItem) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

func (r *RequirementItem) MoneyFields() map[string]*string {
	return map[string]*string{
		"sq_footage":    &r.SqFootage,
		"preferred_roi": &r.PreferredROI,
	}
}

// RequirementSchema maps the requirement list's column labels to filter and
// sort semantics.
func RequirementSchema() tabular.Schema {
	return tabular.Schema{
		Columns: map[string]tabular.Column{
			"Demand":                    {Field: "demand", Kind: tabular.TextContains},
			"Property Type":             {Field: "property_type", Kind: tabular.TextContains},
			"Location":                  {Field: "location", Kind: tabular.TextContains},
			"Description":               {Field: "description", Kind: tabular.TextContains},
			"Budget":                    {Field: "budget", Kind: tabular.TextContains},
			"Preferred Square Footage":  {Field: "sq_footage", Kind: tabular.NumericFuzzyRange},
			"Preferred ROI":             {Field: "preferred_roi", Kind: tabular.NumericFuzzyRange},
			"RTM/Off-plan":              {Field: "rtm_offplan", Kind: tabular.EnumEquals, Enum: RtmOffplanValues},
			"Category":                  {Field: "category", Kind: tabular.EnumEquals, Enum: RequirementCategories},
			"Status":                    {Field: "status", Kind: tabular.EnumEquals, Enum: RequirementStatuses},
		},
		SearchFields: []string{"property_type", "description", "demand", "location", "budget"},
		DefaultOrder: "created_at DESC",
	}
}
