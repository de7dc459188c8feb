package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/datatypes"

	"p9e.in/brokerdesk/config"
	"p9e.in/brokerdesk/middleware"
	"p9e.in/brokerdesk/models"
)

// writeAudit records a mutation after it committed. Audit failures are logged
// and swallowed; they never fail the mutation that already happened.
func writeAudit(r *http.Request, entityKind string, entityID uuid.UUID, action models.AuditAction, detail interface{}) {
	entry := models.AuditEntry{
		EntityKind: entityKind,
		EntityID:   entityID,
		Action:     action,
	}
	if actor, err := uuid.Parse(middleware.GetUserID(r)); err == nil {
		entry.ActorID = &actor
	}
	if detail != nil {
		if raw, err := json.Marshal(detail); err == nil {
			entry.Detail = datatypes.JSON(raw)
		}
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		slog.Warn("audit write failed", "entity", entityKind, "id", entityID, "error", err)
	}
}

// GetAuditLog returns the mutation history of one record, newest first.
func GetAuditLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entityID := vars["id"]

	var entries []models.AuditEntry
	if err := config.DB.Where("entity_id = ?", entityID).
		Order("created_at DESC").Find(&entries).Error; err != nil {
		writeStorageError(w, "audit list", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
