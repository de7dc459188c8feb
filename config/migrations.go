package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"p9e.in/brokerdesk/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250610_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.InventoryItem{}, &models.RequirementItem{})
			},
		},
		{
			ID: "20250702_add_deals",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Deal{})
			},
		},
		{
			ID: "20250719_add_audit_entries",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.AuditEntry{})
			},
		},
		{
			ID: "20250804_index_inventory_status",
			Migrate: func(tx *gorm.DB) error {
				return tx.Exec("CREATE INDEX IF NOT EXISTS idx_inventory_items_status ON inventory_items (status)").Error
			},
		},
	})
	return m.Migrate()
}
