package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"p9e.in/brokerdesk/models"
	"p9e.in/brokerdesk/pkg/tabular"
)

var exportHeaders = []string{
	"inventory_id", "developer", "project", "property_type", "location",
	"unit", "remarks", "bedrooms", "area", "price_aed", "selling_price",
	"price_inr", "rent_approx", "roi", "markup", "brokerage", "status",
	"date_added",
}

func exportRow(item models.InventoryItem) []string {
	return []string{
		item.ID.String(), item.Developer, item.Project, item.PropertyType,
		item.Location, item.Unit, item.Remarks, strconv.Itoa(item.Bedrooms),
		item.Area, item.PriceAED, item.SellingPrice, item.PriceINR,
		item.RentApprox, item.ROI, item.Markup, item.Brokerage,
		string(item.Status), time.Time(item.DateAdded).Format("2006-01-02"),
	}
}

// ExportInventory streams the full filtered list as a CSV or XLSX download.
// The predicate set is the one the list view uses; only pagination is
// dropped.
func ExportInventory(w http.ResponseWriter, r *http.Request) {
	params := tabular.ParseParams(r.URL.Query(), query.Config())
	var items []models.InventoryItem
	if err := query.All(models.InventorySchema(), params, &items); err != nil {
		writeListError(w, "inventory export", err)
		return
	}

	stamp := time.Now().Format("20060102_150405")
	switch r.URL.Query().Get("format") {
	case "xlsx":
		book := excelize.NewFile()
		sheet := book.GetSheetName(0)
		for col, h := range exportHeaders {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			book.SetCellValue(sheet, cell, h)
		}
		for rowIdx, item := range items {
			for col, value := range exportRow(item) {
				cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
				book.SetCellValue(sheet, cell, value)
			}
		}
		buffer, err := book.WriteToBuffer()
		if err != nil {
			http.Error(w, "failed to generate workbook", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=inventory_%s.xlsx", stamp))
		w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
		w.Write(buffer.Bytes())
	default:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=inventory_%s.csv", stamp))
		writer := csv.NewWriter(w)
		writer.Write(exportHeaders)
		for _, item := range items {
			writer.Write(exportRow(item))
		}
		writer.Flush()
	}
}
