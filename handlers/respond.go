package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"p9e.in/brokerdesk/config"
	"p9e.in/brokerdesk/pkg/listcache"
	"p9e.in/brokerdesk/pkg/tabular"
)

var (
	query        *tabular.Service
	listVersions = listcache.New()
)

// Setup wires the shared query service. Called once from main after the DB
// connection is up.
func Setup(cfg tabular.Config) {
	query = tabular.NewService(config.DB, cfg)
}

// FieldError is one human-readable validation problem.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MutationResult is the {success, message} envelope every write returns, so
// the UI can render failures inline instead of a full page error.
type MutationResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, MutationResult{Success: true, Message: message})
}

func writeNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, MutationResult{Success: false, Message: message})
}

func writeValidationErrors(w http.ResponseWriter, errs []FieldError) {
	writeJSON(w, http.StatusBadRequest, MutationResult{
		Success: false,
		Message: "validation failed",
		Errors:  errs,
	})
}

// writeStorageError logs the full detail server-side and sends the caller a
// generic failure. Never retried here; the caller may re-submit.
func writeStorageError(w http.ResponseWriter, op string, err error) {
	slog.Error("storage failure", "op", op, "error", err)
	writeJSON(w, http.StatusInternalServerError, MutationResult{
		Success: false,
		Message: "storage unavailable, try again later",
	})
}

// writeListError maps a tabular.List failure: StorageUnavailable aborts the
// read with a generic 500 (bad query input never gets here, it degrades
// inside the service).
func writeListError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, tabular.ErrStorageUnavailable) {
		writeStorageError(w, op, err)
		return
	}
	slog.Error("list failure", "op", op, "error", err)
	http.Error(w, "failed to fetch list", http.StatusInternalServerError)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// listResponse is the page envelope the table views render from:
// rows + total is enough for "Showing X to Y of Z" and prev/next.
func listResponse(rows interface{}, res *tabular.Result, collection string) map[string]interface{} {
	return map[string]interface{}{
		"rows":     rows,
		"total":    res.Total,
		"page":     res.Page,
		"pageSize": res.PageSize,
		"pages":    res.Pages(),
		"version":  listVersions.Current(collection),
	}
}
