package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"p9e.in/brokerdesk/config"
	"p9e.in/brokerdesk/models"
	"p9e.in/brokerdesk/pkg/tabular"
)

func GetAllRequirements(w http.ResponseWriter, r *http.Request) {
	params := tabular.ParseParams(r.URL.Query(), query.Config())
	var rows []models.RequirementItem
	res, err := query.List(models.RequirementSchema(), params, &rows)
	if err != nil {
		writeListError(w, "requirement list", err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse(rows, res, "requirements"))
}

func validateRequirement(item *models.RequirementItem) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(item.Demand) == "" {
		errs = append(errs, FieldError{Field: "demand", Message: "demand is required"})
	}
	if item.Status != "" && !item.Status.Valid() {
		errs = append(errs, FieldError{Field: "status", Message: "unknown status"})
	}
	if item.RtmOffplan != "" && !item.RtmOffplan.Valid() {
		errs = append(errs, FieldError{Field: "rtmOffplan", Message: "unknown RTM/off-plan value"})
	}
	if item.Category != "" && !item.Category.Valid() {
		errs = append(errs, FieldError{Field: "category", Message: "unknown category"})
	}
	errs = append(errs, normalizeMoney(item.MoneyFields())...)
	return errs
}

func CreateRequirement(w http.ResponseWriter, r *http.Request) {
	var item models.RequirementItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if errs := validateRequirement(&item); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	item.ID = uuid.Nil
	if item.Status == "" {
		item.Status = models.RequirementOpen
	}
	if item.RtmOffplan == "" {
		item.RtmOffplan = models.RtmNone
	}

	if err := config.DB.Create(&item).Error; err != nil {
		writeStorageError(w, "requirement create", err)
		return
	}
	listVersions.Bump("requirements")
	writeAudit(r, "requirement", item.ID, models.AuditActionCreate, nil)
	writeJSON(w, http.StatusCreated, item)
}

func GetRequirement(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var item models.RequirementItem
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			writeNotFound(w, "requirement not found")
		} else {
			writeStorageError(w, "requirement get", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type updateRequirementReq struct {
	Demand           *string `json:"demand"`
	PropertyType     *string `json:"propertyType"`
	Location         *string `json:"location"`
	Description      *string `json:"description"`
	Budget           *string `json:"budget"`
	SqFootage        *string `json:"sqFootage"`
	PreferredROI     *string `json:"preferredROI"`
	CallMade         *bool   `json:"callMade"`
	ViewingScheduled *bool   `json:"viewingScheduled"`
	PHPP             *bool   `json:"phpp"`
	RtmOffplan       *string `json:"rtmOffplan"`
	Category         *string `json:"category"`
	Status           *string `json:"status"`
}

func UpdateRequirement(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var item models.RequirementItem
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			writeNotFound(w, "requirement not found")
		} else {
			writeStorageError(w, "requirement update", err)
		}
		return
	}

	var req updateRequirementReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&item.Demand, req.Demand)
	setString(&item.PropertyType, req.PropertyType)
	setString(&item.Location, req.Location)
	setString(&item.Description, req.Description)
	setString(&item.Budget, req.Budget)
	setString(&item.SqFootage, req.SqFootage)
	setString(&item.PreferredROI, req.PreferredROI)
	if req.CallMade != nil {
		item.CallMade = *req.CallMade
	}
	if req.ViewingScheduled != nil {
		item.ViewingScheduled = *req.ViewingScheduled
	}
	if req.PHPP != nil {
		item.PHPP = *req.PHPP
	}
	if req.RtmOffplan != nil {
		item.RtmOffplan = models.RtmOffplan(*req.RtmOffplan)
	}
	if req.Category != nil {
		item.Category = models.RequirementCategory(*req.Category)
	}
	if req.Status != nil {
		item.Status = models.RequirementStatus(*req.Status)
	}

	if errs := validateRequirement(&item); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}
	if err := config.DB.Save(&item).Error; err != nil {
		writeStorageError(w, "requirement update", err)
		return
	}
	listVersions.Bump("requirements")
	writeAudit(r, "requirement", item.ID, models.AuditActionUpdate, req)
	writeJSON(w, http.StatusOK, item)
}

// SetRequirementStatus moves a requirement to any status, no ordering.
func SetRequirementStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req setStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	next := models.RequirementStatus(req.Status)
	if !next.Valid() {
		writeValidationErrors(w, []FieldError{{Field: "status", Message: "unknown status"}})
		return
	}

	var item models.RequirementItem
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			writeNotFound(w, "requirement not found")
		} else {
			writeStorageError(w, "requirement status", err)
		}
		return
	}

	prev := item.Status
	if err := config.DB.Model(&item).Update("status", next).Error; err != nil {
		writeStorageError(w, "requirement status", err)
		return
	}
	listVersions.Bump("requirements")
	writeAudit(r, "requirement", item.ID, models.AuditActionStatusChange,
		map[string]string{"from": string(prev), "to": string(next)})
	writeSuccess(w, "status updated")
}

// requirement boolean flags the brokers toggle from the list screen; the UI
// flips optimistically and reverts on a failure response.
var requirementFlags = map[string]string{
	"call-made":         "call_made",
	"viewing-scheduled": "viewing_scheduled",
	"phpp":              "phpp",
}

type toggleReq struct {
	Value bool `json:"value"`
}

// ToggleRequirementFlag sets one boolean flag by its route name.
func ToggleRequirementFlag(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	column, ok := requirementFlags[vars["flag"]]
	if !ok {
		http.Error(w, "unknown flag", http.StatusNotFound)
		return
	}

	var req toggleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var item models.RequirementItem
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			writeNotFound(w, "requirement not found")
		} else {
			writeStorageError(w, "requirement flag", err)
		}
		return
	}

	if err := config.DB.Model(&item).Update(column, req.Value).Error; err != nil {
		writeStorageError(w, "requirement flag", err)
		return
	}
	listVersions.Bump("requirements")
	writeAudit(r, "requirement", item.ID, models.AuditActionUpdate,
		map[string]interface{}{"flag": column, "value": req.Value})
	writeSuccess(w, "flag updated")
}

// GetRecommendedProperties returns the inventory pool for a requirement's
// assignment screen: the plain default-ordered list, paginated. There is no
// matching or scoring step here on purpose.
func GetRecommendedProperties(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var item models.RequirementItem
	if err := config.DB.First(&item, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			writeNotFound(w, "requirement not found")
		} else {
			writeStorageError(w, "recommended properties", err)
		}
		return
	}

	params := tabular.ParseParams(r.URL.Query(), query.Config())
	params.FilterColumn, params.FilterValue, params.Search = "", "", ""
	var rows []models.InventoryItem
	res, err := query.List(models.InventorySchema(), params, &rows)
	if err != nil {
		writeListError(w, "recommended properties", err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse(rows, res, "inventory"))
}
