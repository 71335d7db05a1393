package handlers

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"p9e.in/netzero/config"
	"p9e.in/netzero/models"
)

func ListRenewableAssets(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Order("created_at DESC")
	if siteID := r.URL.Query().Get("site_id"); siteID != "" {
		q = q.Where("site_id = ?", siteID)
	}

	var assets []models.RenewableAsset
	if err := q.Find(&assets).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

func CreateRenewableAsset(w http.ResponseWriter, r *http.Request) {
	var asset models.RenewableAsset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := siteByID(tx, asset.SiteID.String()); err != nil {
			return err
		}
		return tx.Create(&asset).Error
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

func ListRenewableGeneration(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Order("date DESC")
	if assetID := r.URL.Query().Get("asset_id"); assetID != "" {
		q = q.Where("asset_id = ?", assetID)
	}

	var readings []models.RenewableGeneration
	if err := q.Find(&readings).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, readings)
}

func CreateRenewableGeneration(w http.ResponseWriter, r *http.Request) {
	var reading models.RenewableGeneration
	if err := json.NewDecoder(r.Body).Decode(&reading); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := config.DB.Create(&reading).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, reading)
}
