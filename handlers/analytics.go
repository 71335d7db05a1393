package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"p9e.in/netzero/config"
	"p9e.in/netzero/models"
	"p9e.in/netzero/pkg/carbon"
)

// loadFlatRecords fetches emission rows joined with their site attributes,
// optionally filtered to one site. This is the snapshot every rollup folds
// over; bulk batches are either fully visible here or not at all.
func loadFlatRecords(db *gorm.DB, siteID string) ([]carbon.FlatRecord, error) {
	q := db.Preload("Site")
	if siteID != "" {
		q = q.Where("site_id = ?", siteID)
	}

	var records []models.EmissionRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}

	flat := make([]carbon.FlatRecord, 0, len(records))
	for _, rec := range records {
		flat = append(flat, carbon.FlatRecord{
			Activity:   rec.ActivityType,
			Scope:      rec.Scope,
			SiteName:   rec.Site.Name,
			State:      rec.Site.State,
			GridRegion: rec.Site.GridRegion,
			Date:       rec.Date,
			CO2eTons:   rec.CO2eTons,
		})
	}
	return flat, nil
}

func GetAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	siteID := r.URL.Query().Get("site_id")

	var total float64
	q := config.DB.Model(&models.EmissionRecord{}).Select("COALESCE(SUM(co2e_tons), 0)")
	if siteID != "" {
		q = q.Where("site_id = ?", siteID)
	}
	if err := q.Scan(&total).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"total_co2e": total})
}

func GetDetailedAnalytics(w http.ResponseWriter, r *http.Request) {
	siteID := r.URL.Query().Get("site_id")

	records, err := loadFlatRecords(config.DB, siteID)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"byActivity":   withPercent(aggregator.ByActivity(records)),
		"byScope":      withPercent(aggregator.ByScope(records)),
		"bySite":       aggregator.BySite(records),
		"byState":      aggregator.ByState(records),
		"byGrid":       aggregator.ByGrid(records),
		"monthlyTrend": aggregator.MonthlyTrend(records),
	})
}

// shareSlice is a rollup slice annotated with its percentage of the rollup
// total, so chart consumers don't recompute shares client-side.
type shareSlice struct {
	carbon.Slice
	Percent float64 `json:"percent"`
}

func withPercent(slices []carbon.Slice) []shareSlice {
	shares := carbon.PercentShares(slices)
	out := make([]shareSlice, len(slices))
	for i, s := range slices {
		out[i] = shareSlice{Slice: s, Percent: shares[i]}
	}
	return out
}

// exportRow is one line of the combined scope 1/2/3 ledger export.
type exportRow struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Scope    string    `json:"scope"`
	SiteName string    `json:"site_name"`
	Date     time.Time `json:"date"`
	Amount   float64   `json:"amount"`
	Unit     string    `json:"unit"`
	CO2eTons float64   `json:"co2e_tons"`
}

// fetchCombinedRows merges emission and value-chain records into one list,
// newest first.
func fetchCombinedRows(db *gorm.DB, siteID string) ([]exportRow, error) {
	eq := db.Preload("Site")
	vq := db.Preload("Site")
	if siteID != "" {
		eq = eq.Where("site_id = ?", siteID)
		vq = vq.Where("site_id = ?", siteID)
	}

	var emissions []models.EmissionRecord
	if err := eq.Find(&emissions).Error; err != nil {
		return nil, err
	}
	var valueChain []models.ValueChainRecord
	if err := vq.Find(&valueChain).Error; err != nil {
		return nil, err
	}

	rows := make([]exportRow, 0, len(emissions)+len(valueChain))
	for _, e := range emissions {
		rows = append(rows, exportRow{
			ID: e.ID, Name: e.ActivityType, Scope: e.Scope, SiteName: e.Site.Name,
			Date: e.Date, Amount: e.Amount, Unit: e.Unit, CO2eTons: e.CO2eTons,
		})
	}
	for _, v := range valueChain {
		rows = append(rows, exportRow{
			ID: v.ID, Name: v.Category, Scope: string(carbon.Scope3), SiteName: v.Site.Name,
			Date: v.Date, Amount: v.Amount, Unit: v.Unit, CO2eTons: v.CO2eTons,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	return rows, nil
}
