package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lib/pq"

	"p9e.in/brokerdesk/config"
	"p9e.in/brokerdesk/models"
	"p9e.in/brokerdesk/pkg/tabular"
)

// normalizeMoney rewrites every non-empty decimal-string field to its plain
// normalized form ("900K" -> "900000"). Normalization is idempotent, so
// re-saving an already-stored record is a no-op.
func normalizeMoney(fields map[string]*string) []FieldError {
	var errs []FieldError
	for name, value := range fields {
		if *value == "" {
			continue
		}
		normalized, err := tabular.NormalizeAmount(*value)
		if err != nil {
			errs = append(errs, FieldError{Field: name, Message: "not a valid amount"})
			continue
		}
		*value = normalized
	}
	return errs
}

func GetAllInventory(w http.ResponseWriter, r *http.Request) {
	params := tabular.ParseParams(r.URL.Query(), query.Config())
	var rows []models.InventoryItem
	res, err := query.List(models.InventorySchema(), params, &rows)
	if err != nil {
		writeListError(w, "inventory list", err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse(rows, res, "inventory"))
}

func validateInventory(item *models.InventoryItem) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(item.Project) == "" {
		errs = append(errs, FieldError{Field: "project", Message: "project is required"})
	}
	if strings.TrimSpace(item.Location) == "" {
		errs = append(errs, FieldError{Field: "location", Message: "location is required"})
	}
	if item.Status != "" && !item.Status.Valid() {
		errs = append(errs, FieldError{Field: "status", Message: "unknown unit status"})
	}
	errs = append(errs, normalizeMoney(item.MoneyFields())...)
	return errs
}

func CreateInventory(w http.ResponseWriter, r *http.Request) {
	var item models.InventoryItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if errs := validateInventory(&item); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	// ids are server-assigned, never caller-assigned
	item.ID = uuid.Nil
	if item.Status == "" {
		item.Status = models.UnitAvailable
	}
	if time.Time(item.DateAdded).IsZero() {
		item.DateAdded = models.JSONTime(time.Now())
	}

	if err := config.DB.Create(&item).Error; err != nil {
		writeStorageError(w, "inventory create", err)
		return
	}
	listVersions.Bump("inventory")
	writeAudit(r, "inventory", item.ID, models.AuditActionCreate, nil)
	writeJSON(w, http.StatusCreated, item)
}

func GetInventory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var item models.InventoryItem
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			writeNotFound(w, "inventory item not found")
		} else {
			writeStorageError(w, "inventory get", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type updateInventoryReq struct {
	Developer    *string         `json:"developer"`
	Project      *string         `json:"project"`
	PropertyType *string         `json:"propertyType"`
	Location     *string         `json:"location"`
	Unit         *string         `json:"unit"`
	Remarks      *string         `json:"remarks"`
	Bedrooms     *int            `json:"bedrooms"`
	Area         *string         `json:"area"`
	PriceAED     *string         `json:"priceAED"`
	SellingPrice *string         `json:"sellingPrice"`
	PriceINR     *string         `json:"priceINR"`
	RentApprox   *string         `json:"rentApprox"`
	ROI          *string         `json:"roi"`
	Markup       *string         `json:"markup"`
	Brokerage    *string         `json:"brokerage"`
	Status       *string         `json:"status"`
	Photos       *pq.StringArray `json:"photos"`
}

// UpdateInventory applies a field-by-field partial update. Absent fields stay
// untouched; no partial write happens when validation fails.
func UpdateInventory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var item models.InventoryItem
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			writeNotFound(w, "inventory item not found")
		} else {
			writeStorageError(w, "inventory update", err)
		}
		return
	}

	var req updateInventoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&item.Developer, req.Developer)
	setString(&item.Project, req.Project)
	setString(&item.PropertyType, req.PropertyType)
	setString(&item.Location, req.Location)
	setString(&item.Unit, req.Unit)
	setString(&item.Remarks, req.Remarks)
	setString(&item.Area, req.Area)
	setString(&item.PriceAED, req.PriceAED)
	setString(&item.SellingPrice, req.SellingPrice)
	setString(&item.PriceINR, req.PriceINR)
	setString(&item.RentApprox, req.RentApprox)
	setString(&item.ROI, req.ROI)
	setString(&item.Markup, req.Markup)
	setString(&item.Brokerage, req.Brokerage)
	if req.Bedrooms != nil {
		item.Bedrooms = *req.Bedrooms
	}
	if req.Status != nil {
		item.Status = models.UnitStatus(*req.Status)
	}
	if req.Photos != nil {
		item.Photos = *req.Photos
	}

	if errs := validateInventory(&item); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := config.DB.Save(&item).Error; err != nil {
		writeStorageError(w, "inventory update", err)
		return
	}
	listVersions.Bump("inventory")
	writeAudit(r, "inventory", item.ID, models.AuditActionUpdate, req)
	writeJSON(w, http.StatusOK, item)
}

// DeleteInventory is the one hard delete verb in the system (soft via
// gorm.DeletedAt; requirements and users are managed by status/flags).
func DeleteInventory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var item models.InventoryItem
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			writeNotFound(w, "inventory item not found")
		} else {
			writeStorageError(w, "inventory delete", err)
		}
		return
	}
	if err := config.DB.Delete(&item).Error; err != nil {
		writeStorageError(w, "inventory delete", err)
		return
	}
	listVersions.Bump("inventory")
	writeAudit(r, "inventory", item.ID, models.AuditActionDelete, nil)
	writeSuccess(w, "inventory item deleted")
}

type setStatusReq struct {
	Status string `json:"status"`
}

// SetInventoryStatus moves a unit to any status. No transition graph: sold
// can go straight back to available.
func SetInventoryStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req setStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	next := models.UnitStatus(req.Status)
	if !next.Valid() {
		writeValidationErrors(w, []FieldError{{Field: "status", Message: "unknown unit status"}})
		return
	}

	var item models.InventoryItem
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			writeNotFound(w, "inventory item not found")
		} else {
			writeStorageError(w, "inventory status", err)
		}
		return
	}

	prev := item.Status
	if err := config.DB.Model(&item).Update("status", next).Error; err != nil {
		writeStorageError(w, "inventory status", err)
		return
	}
	listVersions.Bump("inventory")
	writeAudit(r, "inventory", item.ID, models.AuditActionStatusChange,
		map[string]string{"from": string(prev), "to": string(next)})
	writeSuccess(w, "status updated")
}
