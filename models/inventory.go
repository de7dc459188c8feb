package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"p9e.in/brokerdesk/pkg/tabular"
)

// UnitStatus is the sale state of an inventory unit. Transitions are
// unrestricted: any status may move to any other at any time.
type UnitStatus string

const (
	UnitAvailable UnitStatus = "available"
	UnitSold      UnitStatus = "sold"
	UnitReserved  UnitStatus = "reserved"
	UnitRented    UnitStatus = "rented"
)

var UnitStatuses = []string{
	string(UnitAvailable), string(UnitSold), string(UnitReserved), string(UnitRented),
}

func (s UnitStatus) Valid() bool {
	for _, v := range UnitStatuses {
		if string(s) == v {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether next is a legal destination. Every valid
// status is: the back office has no hidden workflow ordering, a sold unit can
// go straight back to available.
func (s UnitStatus) CanTransitionTo(next UnitStatus) bool {
	return next.Valid()
}

// InventoryItem is one unit of property stock. Monetary and area fields are
// decimal-valued strings, never floats; shorthand input ("900K", "1.2M",
// "2Cr") is normalized before storage.
type InventoryItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Developer    string         `gorm:"column:developer;size:255" json:"developer"`
	Project      string         `gorm:"column:project;size:255" json:"project"`
	PropertyType string         `gorm:"column:property_type;size:100" json:"propertyType"`
	Location     string         `gorm:"column:location;size:255" json:"location"`
	Unit         string         `gorm:"column:unit;size:100" json:"unit"`
	Remarks      string         `gorm:"column:remarks;type:text" json:"remarks"`
	Bedrooms     int            `gorm:"column:bedrooms" json:"bedrooms"`
	Area         string         `gorm:"column:area;size:50" json:"area"`
	PriceAED     string         `gorm:"column:price_aed;size:50" json:"priceAED"`
	SellingPrice string         `gorm:"column:selling_price;size:50" json:"sellingPrice"`
	PriceINR     string         `gorm:"column:price_inr;size:50" json:"priceINR"`
	RentApprox   string         `gorm:"column:rent_approx;size:50" json:"rentApprox"`
	ROI          string         `gorm:"column:roi;size:50" json:"roi"`
	Markup       string         `gorm:"column:markup;size:50" json:"markup"`
	Brokerage    string         `gorm:"column:brokerage;size:50" json:"brokerage"`
	Status       UnitStatus     `gorm:"column:status;type:varchar(20);default:'available'" json:"status"`
	Photos       pq.StringArray `gorm:"column:photos;type:text[]" json:"photos,omitempty"`
	DateAdded    JSONTime       `gorm:"column:date_added" json:"dateAdded"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *InventoryItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

// MoneyFields lists the decimal-string fields that get shorthand
// normalization on create/update and fuzzy-range filtering on list.
func (i *InventoryItem) MoneyFields() map[string]*string {
	return map[string]*string{
		"area":          &i.Area,
		"price_aed":     &i.PriceAED,
		"selling_price": &i.SellingPrice,
		"price_inr":     &i.PriceINR,
		"rent_approx":   &i.RentApprox,
		"roi":           &i.ROI,
		"markup":        &i.Markup,
		"brokerage":     &i.Brokerage,
	}
}

// InventorySchema maps the inventory table's column labels, as the list
// screens display them, to filter and sort semantics.
func InventorySchema() tabular.Schema {
	return tabular.Schema{
		Columns: map[string]tabular.Column{
			"Developer Name":      {Field: "developer", Kind: tabular.TextContains},
			"Project Name":        {Field: "project", Kind: tabular.TextContains},
			"Property Type":       {Field: "property_type", Kind: tabular.TextContains},
			"Location":            {Field: "location", Kind: tabular.TextContains},
			"Unit Number":         {Field: "unit", Kind: tabular.TextContains},
			"Remarks":             {Field: "remarks", Kind: tabular.TextContains},
			"Bedrooms":            {Field: "bedrooms", Kind: tabular.IntegerEquals},
			"Area (sqft)":         {Field: "area", Kind: tabular.NumericFuzzyRange},
			"Price (AED)":         {Field: "price_aed", Kind: tabular.NumericFuzzyRange},
			"Selling Price (AED)": {Field: "selling_price", Kind: tabular.NumericFuzzyRange},
			"Price (INR)":         {Field: "price_inr", Kind: tabular.NumericFuzzyRange},
			"Approx. Rent":        {Field: "rent_approx", Kind: tabular.NumericFuzzyRange},
			"ROI":                 {Field: "roi", Kind: tabular.NumericFuzzyRange},
			"Markup":              {Field: "markup", Kind: tabular.NumericFuzzyRange},
			"Brokerage":           {Field: "brokerage", Kind: tabular.NumericFuzzyRange},
			"Unit Status":         {Field: "status", Kind: tabular.EnumEquals, Enum: UnitStatuses},
		},
		SearchFields: []string{"developer", "project", "property_type", "location", "unit", "remarks"},
		DefaultOrder: "created_at DESC",
	}
}
