package handlers

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func TestCanonicalField(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Mine ID", "site_id"},
		{"site_id", "site_id"},
		{"UNIT ID", "site_id"},
		{"Activity Type", "activity_type"},
		{"fuel_type", "activity_type"},
		{"Qty", "amount"},
		{"Quantity", "amount"},
		{"UOM", "unit"},
		{"Vendor Name", "vendor_name"},
		{"Supplier", "vendor_name"},
		{"Entry Date", "date"},
		{"  Amount  ", "amount"},
		{"Cost Center", "cost_center"}, // unknown headers pass through
	}

	for _, tt := range tests {
		if got := canonicalField(tt.header); got != tt.want {
			t.Errorf("canonicalField(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func parseCSVString(t *testing.T, data string) [][]string {
	t.Helper()
	reader := csv.NewReader(strings.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("csv parse: %v", err)
	}
	return rows
}

func TestRowsToMaps(t *testing.T) {
	rows := parseCSVString(t,
		"Mine ID,Activity Type,Date,Quantity,Unit\n"+
			"abc-1,diesel_combustion,2024-03-05,500,L\n"+
			",,,,\n"+
			"abc-2,grid_electricity,2024-03-06,1000,kWh\n")

	maps := rowsToMaps(rows)
	if len(maps) != 2 {
		t.Fatalf("expected 2 rows (blank line skipped), got %d", len(maps))
	}
	if maps[0]["site_id"] != "abc-1" || maps[0]["activity_type"] != "diesel_combustion" {
		t.Errorf("row 0 mapped wrong: %+v", maps[0])
	}
	if maps[1]["amount"] != "1000" || maps[1]["unit"] != "kWh" {
		t.Errorf("row 1 mapped wrong: %+v", maps[1])
	}
}

func TestMapsToEmissionInputs(t *testing.T) {
	maps := []map[string]string{
		{"site_id": "abc-1", "activity_type": "diesel_combustion", "amount": "500", "unit": "L", "date": "2024-03-05"},
		{"activity_type": "grid_electricity", "amount": "1000", "unit": "kWh"},
	}

	entries, err := mapsToEmissionInputs(maps, "default-site")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries[0].SiteID != "abc-1" {
		t.Errorf("explicit site_id overridden: %q", entries[0].SiteID)
	}
	if entries[1].SiteID != "default-site" {
		t.Errorf("missing site_id should take the explicit default, got %q", entries[1].SiteID)
	}
	if entries[0].Date == nil {
		t.Fatal("date column was dropped")
	}
	if got := time.Time(*entries[0].Date); got.Format("2006-01-02") != "2024-03-05" {
		t.Errorf("date parsed as %v", got)
	}
	if entries[1].Date != nil {
		t.Error("absent date should stay nil and default at ingestion")
	}
}

func TestMapsToEmissionInputsBadDate(t *testing.T) {
	maps := []map[string]string{
		{"site_id": "abc-1", "activity_type": "diesel", "amount": "1", "date": "2024-03-05"},
		{"site_id": "abc-1", "activity_type": "diesel", "amount": "1", "date": "not-a-date"},
	}

	_, err := mapsToEmissionInputs(maps, "")
	if err == nil {
		t.Fatal("expected an error for the unparseable date")
	}
	if !strings.Contains(err.Error(), "entry 1") {
		t.Errorf("error should name the failing row index: %v", err)
	}
}

func TestMapsToValueChainInputs(t *testing.T) {
	maps := []map[string]string{
		{"site_id": "abc-1", "category": "Purchased Goods", "sub_category": "Steel",
			"vendor_name": "Acme Steel", "amount": "1200", "unit": "USD"},
	}

	entries, err := mapsToValueChainInputs(maps, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := entries[0]
	if in.Category != "Purchased Goods" || in.VendorName != "Acme Steel" || in.SubCategory != "Steel" {
		t.Errorf("value chain mapping wrong: %+v", in)
	}
	if string(in.Amount) != "1200" {
		t.Errorf("amount carried as %q", in.Amount)
	}
}
