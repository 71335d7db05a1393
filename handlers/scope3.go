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

// buildValueChainRecord validates one scope 3 descriptor. Every record on this
// path is scope 3 by construction; climate and grid context never apply.
func buildValueChainRecord(tx *gorm.DB, in models.ValueChainInput) (*models.ValueChainRecord, error) {
	site, err := siteByID(tx, in.SiteID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, fmt.Errorf("%w: category is required", carbon.ErrInvalidInput)
	}
	amount, err := in.Amount.NonNegative()
	if err != nil {
		return nil, err
	}

	res := resolver.ResolveValueChain(in.Category, amount)

	return &models.ValueChainRecord{
		SiteID:         site.ID,
		Category:       in.Category,
		SubCategory:    in.SubCategory,
		VendorName:     in.VendorName,
		Date:           in.OccurredAt(),
		Amount:         amount,
		Unit:           in.Unit,
		CO2eTons:       res.CO2eTons,
		EvidencePhotos: in.EvidencePhotos,
	}, nil
}

func CreateValueChainEntry(w http.ResponseWriter, r *http.Request) {
	var in models.ValueChainInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	var rec *models.ValueChainRecord
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		rec, err = buildValueChainRecord(tx, in)
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

func insertValueChainBatch(db *gorm.DB, entries []models.ValueChainInput) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for i, in := range entries {
			rec, err := buildValueChainRecord(tx, in)
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

func BulkValueChain(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Entries []models.ValueChainInput `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Entries == nil {
		http.Error(w, "invalid input, expected entries array", http.StatusBadRequest)
		return
	}

	count, err := insertValueChainBatch(config.DB, payload.Entries)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "bulk upload successful",
		"count":   count,
	})
}

func ListValueChain(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Order("date DESC")
	if siteID := r.URL.Query().Get("site_id"); siteID != "" {
		q = q.Where("site_id = ?", siteID)
	}

	var records []models.ValueChainRecord
	if err := q.Find(&records).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
