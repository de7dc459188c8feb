package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"p9e.in/brokerdesk/config"
	"p9e.in/brokerdesk/models"
)

// rowError reports why one import row was rejected. Row numbers are 1-based
// and count the header row, matching what the user sees in their spreadsheet.
type rowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// setInventoryField maps one snake_case import column onto the record.
// Unknown headers are ignored so exports with extra columns round-trip.
func setInventoryField(item *models.InventoryItem, header, value string) {
	switch header {
	case "developer":
		item.Developer = value
	case "project":
		item.Project = value
	case "property_type":
		item.PropertyType = value
	case "location":
		item.Location = value
	case "unit":
		item.Unit = value
	case "remarks":
		item.Remarks = value
	case "bedrooms":
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			item.Bedrooms = n
		}
	case "area":
		item.Area = value
	case "price_aed":
		item.PriceAED = value
	case "selling_price":
		item.SellingPrice = value
	case "price_inr":
		item.PriceINR = value
	case "rent_approx":
		item.RentApprox = value
	case "roi":
		item.ROI = value
	case "markup":
		item.Markup = value
	case "brokerage":
		item.Brokerage = value
	case "status":
		item.Status = models.UnitStatus(value)
	}
}

// rowsToInventory turns a header row plus data rows into records ready for
// create. Rows carrying a non-empty inventory_id are skipped outright: ids
// are server-assigned, never imported. Rows failing validation are reported
// per row and the rest of the batch proceeds.
func rowsToInventory(rows [][]string) (items []models.InventoryItem, skipped int, errs []rowError) {
	if len(rows) == 0 {
		return nil, 0, []rowError{{Row: 1, Message: "missing header row"}}
	}

	headers := make([]string, len(rows[0]))
	idCol := -1
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
		if headers[i] == "inventory_id" {
			idCol = i
		}
	}

	for n, row := range rows[1:] {
		rowNum := n + 2 // after the header, 1-based
		if idCol >= 0 && idCol < len(row) && strings.TrimSpace(row[idCol]) != "" {
			skipped++
			continue
		}

		var item models.InventoryItem
		for i, cell := range row {
			if i >= len(headers) {
				break
			}
			setInventoryField(&item, headers[i], strings.TrimSpace(cell))
		}
		if vErrs := validateInventory(&item); len(vErrs) > 0 {
			for _, ve := range vErrs {
				errs = append(errs, rowError{Row: rowNum, Message: ve.Field + ": " + ve.Message})
			}
			continue
		}
		if item.Status == "" {
			item.Status = models.UnitAvailable
		}
		items = append(items, item)
	}
	return items, skipped, errs
}

func readImportRows(file io.Reader, filename string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		reader := csv.NewReader(file)
		reader.FieldsPerRecord = -1
		return reader.ReadAll()
	case ".xlsx":
		book, err := excelize.OpenReader(file)
		if err != nil {
			return nil, err
		}
		defer book.Close()
		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		return book.GetRows(sheets[0])
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
}

// ImportInventory bulk-creates inventory from an uploaded CSV or XLSX file.
// Each surviving row becomes one create; the response reports counts and
// per-row problems.
func ImportInventory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := readImportRows(file, header.Filename)
	if err != nil {
		http.Error(w, "could not read file: "+err.Error(), http.StatusBadRequest)
		return
	}

	items, skipped, errs := rowsToInventory(rows)
	created := 0
	for i := range items {
		if err := config.DB.Create(&items[i]).Error; err != nil {
			errs = append(errs, rowError{Row: 0, Message: "create failed: " + err.Error()})
			continue
		}
		writeAudit(r, "inventory", items[i].ID, models.AuditActionImport, nil)
		created++
	}
	if created > 0 {
		listVersions.Bump("inventory")
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"created": created,
		"skipped": skipped,
		"errors":  errs,
	})
}
