package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"p9e.in/netzero/config"
	"p9e.in/netzero/models"
)

type scenarioReq struct {
	SiteID        *uuid.UUID            `json:"site_id,omitempty"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	TargetYear    int                   `json:"target_year"`
	Interventions []models.Intervention `json:"interventions"`
}

// scenarioResponse echoes the intervention list in decoded form instead of
// the raw stored JSON blob.
type scenarioResponse struct {
	models.Scenario
	Interventions []models.Intervention `json:"interventions"`
}

func toScenarioResponse(s models.Scenario) (scenarioResponse, error) {
	items, err := s.InterventionList()
	if err != nil {
		return scenarioResponse{}, err
	}
	if items == nil {
		items = []models.Intervention{}
	}
	return scenarioResponse{Scenario: s, Interventions: items}, nil
}

func ListScenarios(w http.ResponseWriter, r *http.Request) {
	var scenarios []models.Scenario
	if err := config.DB.Order("created_at DESC").Find(&scenarios).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]scenarioResponse, 0, len(scenarios))
	for _, s := range scenarios {
		resp, err := toScenarioResponse(s)
		if err != nil {
			http.Error(w, "corrupt interventions payload: "+err.Error(), http.StatusInternalServerError)
			return
		}
		out = append(out, resp)
	}
	writeJSON(w, http.StatusOK, out)
}

func CreateScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	scenario := models.Scenario{
		SiteID:      req.SiteID,
		Name:        req.Name,
		Description: req.Description,
		TargetYear:  req.TargetYear,
	}
	if err := scenario.SetInterventions(req.Interventions); err != nil {
		http.Error(w, "invalid interventions: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := config.DB.Create(&scenario).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	resp, err := toScenarioResponse(scenario)
	if err != nil {
		http.Error(w, "corrupt interventions payload: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateScenario replaces the scenario wholesale, interventions included.
func UpdateScenario(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var scenario models.Scenario
	if err := config.DB.First(&scenario, "id = ?", id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	var req scenarioReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	scenario.SiteID = req.SiteID
	scenario.Name = req.Name
	scenario.Description = req.Description
	scenario.TargetYear = req.TargetYear
	if err := scenario.SetInterventions(req.Interventions); err != nil {
		http.Error(w, "invalid interventions: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := config.DB.Save(&scenario).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	resp, err := toScenarioResponse(scenario)
	if err != nil {
		http.Error(w, "corrupt interventions payload: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func DeleteScenario(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result := config.DB.Where("id = ?", id).Delete(&models.Scenario{})
	if result.Error != nil {
		http.Error(w, "db error: "+result.Error.Error(), http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
