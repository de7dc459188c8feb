package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"p9e.in/brokerdesk/config"
	"p9e.in/brokerdesk/models"
	"p9e.in/brokerdesk/pkg/tabular"
)

func GetAllDeals(w http.ResponseWriter, r *http.Request) {
	params := tabular.ParseParams(r.URL.Query(), query.Config())
	var rows []models.Deal
	res, err := query.List(models.DealSchema(), params, &rows)
	if err != nil {
		writeListError(w, "deal list", err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse(rows, res, "deals"))
}

type createDealReq struct {
	RequirementID string `json:"requirementId"`
	InventoryID   string `json:"inventoryId"`
	Note          string `json:"note"`
}

// CreateDeal links a requirement to a unit. Both ends must exist.
func CreateDeal(w http.ResponseWriter, r *http.Request) {
	var req createDealReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	reqID, err := uuid.Parse(req.RequirementID)
	if err != nil {
		writeValidationErrors(w, []FieldError{{Field: "requirementId", Message: "requirementId is required"}})
		return
	}
	invID, err := uuid.Parse(req.InventoryID)
	if err != nil {
		writeValidationErrors(w, []FieldError{{Field: "inventoryId", Message: "inventoryId is required"}})
		return
	}

	var requirement models.RequirementItem
	if err := config.DB.First(&requirement, "id = ?", reqID).Error; err != nil {
		writeNotFound(w, "requirement not found")
		return
	}
	var inventory models.InventoryItem
	if err := config.DB.First(&inventory, "id = ?", invID).Error; err != nil {
		writeNotFound(w, "inventory item not found")
		return
	}

	deal := models.Deal{
		RequirementID: reqID,
		InventoryID:   invID,
		Status:        models.DealProposed,
		Note:          req.Note,
	}
	if err := config.DB.Create(&deal).Error; err != nil {
		writeStorageError(w, "deal create", err)
		return
	}
	listVersions.Bump("deals")
	writeAudit(r, "deal", deal.ID, models.AuditActionCreate,
		map[string]string{"requirementId": reqID.String(), "inventoryId": invID.String()})
	writeJSON(w, http.StatusCreated, deal)
}

func GetDeal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var deal models.Deal
	if err := config.DB.Preload("Requirement").Preload("Inventory").
		First(&deal, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			writeNotFound(w, "deal not found")
		} else {
			writeStorageError(w, "deal get", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

type updateDealReq struct {
	Note   *string `json:"note"`
	Status *string `json:"status"`
}

func UpdateDeal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var deal models.Deal
	if err := config.DB.First(&deal, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			writeNotFound(w, "deal not found")
		} else {
			writeStorageError(w, "deal update", err)
		}
		return
	}

	var req updateDealReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.Note != nil {
		deal.Note = *req.Note
	}
	if req.Status != nil {
		status := models.DealStatus(*req.Status)
		if !status.Valid() {
			writeValidationErrors(w, []FieldError{{Field: "status", Message: "unknown deal status"}})
			return
		}
		deal.Status = status
	}

	if err := config.DB.Save(&deal).Error; err != nil {
		writeStorageError(w, "deal update", err)
		return
	}
	listVersions.Bump("deals")
	writeAudit(r, "deal", deal.ID, models.AuditActionUpdate, req)
	writeJSON(w, http.StatusOK, deal)
}

// SetDealStatus moves a deal to any status; won and lost are not terminal.
func SetDealStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req setStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	next := models.DealStatus(req.Status)
	if !next.Valid() {
		writeValidationErrors(w, []FieldError{{Field: "status", Message: "unknown deal status"}})
		return
	}

	var deal models.Deal
	if err := config.DB.First(&deal, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			writeNotFound(w, "deal not found")
		} else {
			writeStorageError(w, "deal status", err)
		}
		return
	}

	prev := deal.Status
	if err := config.DB.Model(&deal).Update("status", next).Error; err != nil {
		writeStorageError(w, "deal status", err)
		return
	}
	listVersions.Bump("deals")
	writeAudit(r, "deal", deal.ID, models.AuditActionStatusChange,
		map[string]string{"from": string(prev), "to": string(next)})
	writeSuccess(w, "status updated")
}
