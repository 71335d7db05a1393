package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"p9e.in/netzero/config"
	"p9e.in/netzero/models"
	"p9e.in/netzero/utils"
)

func GetAllSites(w http.ResponseWriter, r *http.Request) {
	var sites []models.Site
	if err := config.DB.Order("name").Find(&sites).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sites)
}

func CreateSite(w http.ResponseWriter, r *http.Request) {
	var site models.Site
	if err := json.NewDecoder(r.Body).Decode(&site); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if site.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if site.Geofence != nil {
		if err := utils.ValidateGeofence(*site.Geofence); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if err := config.DB.Create(&site).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, site)
}

func GetSite(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var site models.Site
	if err := config.DB.First(&site, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, site)
}

func UpdateSite(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var site models.Site
	if err := config.DB.First(&site, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	keep := site.ID
	if err := json.NewDecoder(r.Body).Decode(&site); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	// Identity is immutable.
	site.ID = keep
	if site.Geofence != nil {
		if err := utils.ValidateGeofence(*site.Geofence); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if err := config.DB.Save(&site).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, site)
}

// DeleteSite removes the site and everything that references it in a single
// transaction: emission records, value-chain records, scenarios, renewable
// generation and assets.
func DeleteSite(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("site_id = ?", id).Delete(&models.EmissionRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("site_id = ?", id).Delete(&models.ValueChainRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("site_id = ?", id).Delete(&models.Scenario{}).Error; err != nil {
			return err
		}
		if err := tx.Where("asset_id IN (?)",
			tx.Model(&models.RenewableAsset{}).Select("id").Where("site_id = ?", id),
		).Delete(&models.RenewableGeneration{}).Error; err != nil {
			return err
		}
		if err := tx.Where("site_id = ?", id).Delete(&models.RenewableAsset{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Site{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "site deleted successfully"})
}

// BatchSites upserts a list of sites by name, skipping duplicates.
func BatchSites(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Entries []models.Site `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Entries == nil {
		http.Error(w, "invalid input, expected entries array", http.StatusBadRequest)
		return
	}
	if len(payload.Entries) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "bulk upload successful", "count": 0})
		return
	}

	if err := config.DB.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&payload.Entries).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "bulk upload successful",
		"count":   len(payload.Entries),
	})
}
