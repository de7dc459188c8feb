package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"p9e.in/brokerdesk/config"
	"p9e.in/brokerdesk/middleware"
	"p9e.in/brokerdesk/models"
	"p9e.in/brokerdesk/pkg/tabular"
	"p9e.in/brokerdesk/utils"
)

func GetAllUsers(w http.ResponseWriter, r *http.Request) {
	params := tabular.ParseParams(r.URL.Query(), query.Config())
	var rows []models.User
	res, err := query.List(models.UserSchema(), params, &rows)
	if err != nil {
		writeListError(w, "user list", err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse(rows, res, "users"))
}

func GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}
	var user models.User
	if err := config.DB.First(&user, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			writeNotFound(w, "user not found")
		} else {
			writeStorageError(w, "user get", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateUserReq struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Disabled *bool   `json:"disabled"`
}

// UpdateUser lets back-office staff update an account. Role assignment is
// limited to roles the caller may hand out.
func UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	var req updateUserReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			writeNotFound(w, "user not found")
		} else {
			writeStorageError(w, "user update", err)
		}
		return
	}

	actorRole := models.Role(middleware.GetRole(r))
	if !utils.CanEditUser(actorRole, user.Role) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		if !role.Valid() {
			writeValidationErrors(w, []FieldError{{Field: "role", Message: "unknown role"}})
			return
		}
		if !utils.CanAssignRole(actorRole, role) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		user.Role = role
	}
	if req.Disabled != nil {
		user.Disabled = *req.Disabled
	}

	if err := config.DB.Save(&user).Error; err != nil {
		writeStorageError(w, "user update", err)
		return
	}
	listVersions.Bump("users")
	writeAudit(r, "user", user.ID, models.AuditActionUpdate, req)
	writeJSON(w, http.StatusOK, user)
}

// DisableUser flips the disabled flag. There is no hard delete for accounts.
func DisableUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			writeNotFound(w, "user not found")
		} else {
			writeStorageError(w, "user disable", err)
		}
		return
	}

	// no locking yourself out
	if middleware.GetUserID(r) == user.ID.String() {
		http.Error(w, "cannot disable your own account", http.StatusBadRequest)
		return
	}

	if err := config.DB.Model(&user).Update("disabled", true).Error; err != nil {
		writeStorageError(w, "user disable", err)
		return
	}
	listVersions.Bump("users")
	writeAudit(r, "user", user.ID, models.AuditActionUpdate, map[string]bool{"disabled": true})
	writeSuccess(w, "user disabled")
}
