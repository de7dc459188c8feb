package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"p9e.in/brokerdesk/pkg/tabular"
)

// DealStatus is the progress of a requirement/inventory match. Flat state
// machine: every status is both a valid start and a valid end.
type DealStatus string

const (
	DealProposed    DealStatus = "proposed"
	DealViewing     DealStatus = "viewing"
	DealNegotiation DealStatus = "negotiation"
	DealWon         DealStatus = "won"
	DealLost        DealStatus = "lost"
)

var DealStatuses = []string{
	string(DealProposed), string(DealViewing), string(DealNegotiation),
	string(DealWon), string(DealLost),
}

func (s DealStatus) Valid() bool {
	for _, v := range DealStatuses {
		if string(s) == v {
			return true
		}
	}
	return false
}

// Deal links a client requirement to an inventory unit a broker proposed for
// it.
type Deal struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	RequirementID uuid.UUID        `gorm:"type:uuid;index;not null" json:"requirementId"`
	Requirement   *RequirementItem `gorm:"foreignKey:RequirementID" json:"requirement,omitempty"`
	InventoryID   uuid.UUID        `gorm:"type:uuid;index;not null" json:"inventoryId"`
	Inventory     *InventoryItem   `gorm:"foreignKey:InventoryID" json:"inventory,omitempty"`
	Status        DealStatus       `gorm:"column:status;type:varchar(20);default:'proposed'" json:"status"`
	Note          string           `gorm:"column:note;type:text" json:"note"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (d *Deal) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}

// DealSchema maps the deal list's column labels to filter semantics.
func DealSchema() tabular.Schema {
	return tabular.Schema{
		Columns: map[string]tabular.Column{
			"Note":   {Field: "note", Kind: tabular.TextContains},
			"Status": {Field: "status", Kind: tabular.EnumEquals, Enum: DealStatuses},
		},
		SearchFields: []string{"note"},
		DefaultOrder: "created_at DESC",
		Preloads:     []string{"Requirement", "Inventory"},
	}
}
