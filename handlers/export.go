package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"p9e.in/netzero/config"
)

var exportHeader = []string{"site_name", "name", "scope", "date", "amount", "unit", "co2e_tons"}

// ExportEmissions serves the combined scope 1/2/3 ledger in the requested
// format (json, csv or xlsx).
func ExportEmissions(w http.ResponseWriter, r *http.Request) {
	rows, err := fetchCombinedRows(config.DB, r.URL.Query().Get("site_id"))
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		writeJSON(w, http.StatusOK, rows)
	case "csv":
		exportCSV(w, rows)
	case "xlsx":
		exportExcel(w, rows)
	default:
		http.Error(w, "unsupported format, expected json, csv or xlsx", http.StatusBadRequest)
	}
}

func exportCSV(w http.ResponseWriter, rows []exportRow) {
	filename := fmt.Sprintf("emissions_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	writer := csv.NewWriter(w)
	writer.Write(exportHeader)
	for _, row := range rows {
		writer.Write([]string{
			row.SiteName,
			row.Name,
			row.Scope,
			row.Date.Format("2006-01-02"),
			strconv.FormatFloat(row.Amount, 'f', -1, 64),
			row.Unit,
			strconv.FormatFloat(row.CO2eTons, 'f', -1, 64),
		})
	}
	writer.Flush()
}

func exportExcel(w http.ResponseWriter, rows []exportRow) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"10B981"}, Pattern: 1},
	})

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	f.SetSheetRow(sheet, "A1", &header)
	f.SetCellStyle(sheet, "A1", fmt.Sprintf("%c1", 'A'+len(exportHeader)-1), headerStyle)

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow(sheet, cell, &[]interface{}{
			row.SiteName,
			row.Name,
			row.Scope,
			row.Date.Format("2006-01-02"),
			row.Amount,
			row.Unit,
			row.CO2eTons,
		})
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("emissions_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	w.Write(buffer.Bytes())
}
