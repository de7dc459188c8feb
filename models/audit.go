package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditAction names what a mutation did to a record.
type AuditAction string

const (
	AuditActionCreate       AuditAction = "create"
	AuditActionUpdate       AuditAction = "update"
	AuditActionDelete       AuditAction = "delete"
	AuditActionStatusChange AuditAction = "status_change"
	AuditActionImport       AuditAction = "import"
)

// AuditEntry records one mutation against one record. Written after the
// mutation commits; read-only thereafter.
type AuditEntry struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	EntityKind string         `gorm:"size:50;index;not null" json:"entityKind"`
	EntityID   uuid.UUID      `gorm:"type:uuid;index" json:"entityId"`
	ActorID    *uuid.UUID     `gorm:"type:uuid" json:"actorId,omitempty"`
	Action     AuditAction    `gorm:"size:30;not null" json:"action"`
	Detail     datatypes.JSON `gorm:"type:jsonb" json:"detail,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

func (a *AuditEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
