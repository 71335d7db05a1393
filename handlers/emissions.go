package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"p9e.in/netzero/config"
	"p9e.in/netzero/models"
	"p9e.in/netzero/pkg/carbon"
)

// buildEmissionRecord validates one raw descriptor against the given
// transaction and derives co2e_tons and scope. The site context lookup happens
// here so bulk rows are computed exactly like single submissions.
func buildEmissionRecord(tx *gorm.DB, in models.EmissionInput) (*models.EmissionRecord, error) {
	site, err := siteByID(tx, in.SiteID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ActivityType) == "" {
		return nil, fmt.Errorf("%w: activity_type is required", carbon.ErrInvalidInput)
	}
	amount, err := in.Amount.NonNegative()
	if err != nil {
		return nil, err
	}

	res := resolver.Resolve(in.ActivityType, amount, site.CarbonContext())

	return &models.EmissionRecord{
		SiteID:         site.ID,
		ActivityType:   in.ActivityType,
		Scope:          string(carbon.ClassifyScope(in.ActivityType)),
		Date:           in.OccurredAt(),
		Amount:         amount,
		Unit:           in.Unit,
		CO2eTons:       res.CO2eTons,
		EvidencePhotos: in.EvidencePhotos,
	}, nil
}

func CreateEmission(w http.ResponseWriter, r *http.Request) {
	var in models.EmissionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	var rec *models.EmissionRecord
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		rec, err = buildEmissionRecord(tx, in)
		if err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// insertEmissionBatch applies the whole batch or none of it. The first
// offending entry aborts the transaction and its index travels back to the
// caller.
func insertEmissionBatch(db *gorm.DB, entries []models.EmissionInput) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i, in := range entries {
			rec, err := buildEmissionRecord(tx, in)
			if err != nil {
				return &carbon.TransactionAbortedError{Index: i, Err: err}
			}
			if err := tx.Create(rec).Error; err != nil {
				return &carbon.TransactionAbortedError{Index: i, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func BulkEmissions(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Entries []models.EmissionInput `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Entries == nil {
		http.Error(w, "invalid input, expected entries array", http.StatusBadRequest)
		return
	}

	count, err := insertEmissionBatch(config.DB, payload.Entries)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "bulk upload successful",
		"count":   count,
	})
}

type emissionResponse struct {
	models.EmissionRecord
	SiteName string `json:"site_name"`
}

func ListEmissions(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Preload("Site").Order("date DESC")
	if siteID := r.URL.Query().Get("site_id"); siteID != "" {
		q = q.Where("site_id = ?", siteID)
	}

	var records []models.EmissionRecord
	if err := q.Find(&records).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]emissionResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, emissionResponse{EmissionRecord: rec, SiteName: rec.Site.Name})
	}
	writeJSON(w, http.StatusOK, out)
}
