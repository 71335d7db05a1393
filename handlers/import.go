package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"p9e.in/netzero/config"
	"p9e.in/netzero/models"
	"p9e.in/netzero/pkg/carbon"
)

// headerSynonyms maps the column names seen in the field's spreadsheets onto
// canonical record fields. Keys are normalized: lower case, underscores
// treated as spaces.
var headerSynonyms = map[string]string{
	"mine id":       "site_id",
	"site id":       "site_id",
	"unit id":       "site_id",
	"activity":      "activity_type",
	"activity type": "activity_type",
	"fuel type":     "activity_type",
	"category":      "category",
	"sub category":  "sub_category",
	"vendor":        "vendor_name",
	"vendor name":   "vendor_name",
	"supplier":      "vendor_name",
	"date":          "date",
	"entry date":    "date",
	"amount":        "amount",
	"quantity":      "amount",
	"qty":           "amount",
	"value":         "amount",
	"unit":          "unit",
	"uom":           "unit",
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, "_", " ")
	return strings.Join(strings.Fields(h), " ")
}

// canonicalField resolves a raw header to its canonical field name. Unknown
// headers pass through in snake_case so extra columns are kept, not dropped.
func canonicalField(h string) string {
	n := normalizeHeader(h)
	if c, ok := headerSynonyms[n]; ok {
		return c
	}
	return strings.ReplaceAll(n, " ", "_")
}

// rowsToMaps turns a header row plus data rows into field maps, skipping
// entirely blank lines.
func rowsToMaps(rows [][]string) []map[string]string {
	if len(rows) < 2 {
		return nil
	}

	fields := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		fields[i] = canonicalField(h)
	}

	var maps []map[string]string
	for _, row := range rows[1:] {
		m := map[string]string{}
		empty := true
		for i, cell := range row {
			if i >= len(fields) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell != "" {
				empty = false
			}
			m[fields[i]] = cell
		}
		if !empty {
			maps = append(maps, m)
		}
	}
	return maps
}

func parseUploadRows(filename string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("cannot open workbook: %w", err)
		}
		defer f.Close()
		sheet := f.GetSheetName(0)
		return f.GetRows(sheet)
	case ".csv":
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		return reader.ReadAll()
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q, expected .xlsx or .csv",
			carbon.ErrInvalidInput, filepath.Ext(filename))
	}
}

// mapsToEmissionInputs converts field maps to ingestion descriptors. Rows
// without a site column take defaultSiteID; site assignment is never inferred
// from the registry.
func mapsToEmissionInputs(maps []map[string]string, defaultSiteID string) ([]models.EmissionInput, error) {
	entries := make([]models.EmissionInput, 0, len(maps))
	for i, m := range maps {
		in := models.EmissionInput{
			SiteID:       m["site_id"],
			ActivityType: m["activity_type"],
			Amount:       models.Amount(m["amount"]),
			Unit:         m["unit"],
		}
		if in.ActivityType == "" {
			in.ActivityType = m["category"]
		}
		if in.SiteID == "" {
			in.SiteID = defaultSiteID
		}
		if raw := m["date"]; raw != "" {
			t, err := models.ParseJSONTime(raw)
			if err != nil {
				return nil, &carbon.TransactionAbortedError{
					Index: i,
					Err:   fmt.Errorf("%w: unparseable date %q", carbon.ErrInvalidInput, raw),
				}
			}
			in.Date = &t
		}
		entries = append(entries, in)
	}
	return entries, nil
}

func mapsToValueChainInputs(maps []map[string]string, defaultSiteID string) ([]models.ValueChainInput, error) {
	entries := make([]models.ValueChainInput, 0, len(maps))
	for i, m := range maps {
		in := models.ValueChainInput{
			SiteID:      m["site_id"],
			Category:    m["category"],
			SubCategory: m["sub_category"],
			VendorName:  m["vendor_name"],
			Amount:      models.Amount(m["amount"]),
			Unit:        m["unit"],
		}
		if in.Category == "" {
			in.Category = m["activity_type"]
		}
		if in.SiteID == "" {
			in.SiteID = defaultSiteID
		}
		if raw := m["date"]; raw != "" {
			t, err := models.ParseJSONTime(raw)
			if err != nil {
				return nil, &carbon.TransactionAbortedError{
					Index: i,
					Err:   fmt.Errorf("%w: unparseable date %q", carbon.ErrInvalidInput, raw),
				}
			}
			in.Date = &t
		}
		entries = append(entries, in)
	}
	return entries, nil
}

func readUpload(r *http.Request) ([]map[string]string, string, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, "", fmt.Errorf("%w: invalid multipart form", carbon.ErrInvalidInput)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("%w: file field is required", carbon.ErrInvalidInput)
	}
	defer file.Close()

	rows, err := parseUploadRows(header.Filename, file)
	if err != nil {
		return nil, "", err
	}
	return rowsToMaps(rows), r.FormValue("default_site_id"), nil
}

// ImportEmissions ingests an uploaded spreadsheet through the bulk
// coordinator: the whole file commits or none of it does.
func ImportEmissions(w http.ResponseWriter, r *http.Request) {
	maps, defaultSiteID, err := readUpload(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	entries, err := mapsToEmissionInputs(maps, defaultSiteID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	count, err := insertEmissionBatch(config.DB, entries)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "import successful",
		"count":   count,
	})
}

func ImportValueChain(w http.ResponseWriter, r *http.Request) {
	maps, defaultSiteID, err := readUpload(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	entries, err := mapsToValueChainInputs(maps, defaultSiteID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	count, err := insertValueChainBatch(config.DB, entries)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "import successful",
		"count":   count,
	})
}
