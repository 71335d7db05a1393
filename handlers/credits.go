package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"p9e.in/netzero/config"
	"p9e.in/netzero/models"
	"p9e.in/netzero/pkg/carbon"
)

func ListCreditLots(w http.ResponseWriter, r *http.Request) {
	var lots []models.CreditLot
	if err := config.DB.Order("created_at DESC").Find(&lots).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, lots)
}

type issueCreditReq struct {
	ProjectName          string        `json:"project_name"`
	Type                 string        `json:"type"`
	Vintage              int           `json:"vintage"`
	Quantity             models.Amount `json:"quantity_tco2e"`
	CostPerUnit          float64       `json:"cost_per_unit"`
	VerificationStandard string        `json:"verification_standard"`
}

func IssueCreditLot(w http.ResponseWriter, r *http.Request) {
	var req issueCreditReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	quantity, err := req.Quantity.NonNegative()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if quantity == 0 {
		writeDomainError(w, fmt.Errorf("%w: quantity_tco2e must be positive", carbon.ErrInvalidInput))
		return
	}

	lot := models.CreditLot{
		ProjectName:          req.ProjectName,
		CreditType:           req.Type,
		Vintage:              req.Vintage,
		Quantity:             quantity,
		Available:            quantity,
		Retired:              0,
		CostPerUnit:          req.CostPerUnit,
		VerificationStandard: req.VerificationStandard,
		Status:               models.CreditStatusAvailable,
	}
	if err := config.DB.Create(&lot).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, lot)
}

type retireCreditReq struct {
	CreditID string  `json:"credit_id"`
	Quantity float64 `json:"quantity"`
}

// RetireCredits is the only mutation path for a lot. The row lock serializes
// concurrent retirements so two callers cannot both drain the same balance.
func RetireCredits(w http.ResponseWriter, r *http.Request) {
	var req retireCreditReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	creditID, err := uuid.Parse(req.CreditID)
	if err != nil {
		writeDomainError(w, fmt.Errorf("%w: credit id %q is not a valid uuid", carbon.ErrInvalidInput, req.CreditID))
		return
	}

	var lot models.CreditLot
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&lot, "id = ?", creditID).Error; err != nil {
			return err
		}
		if err := lot.Retire(req.Quantity); err != nil {
			return err
		}
		return tx.Save(&lot).Error
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lot)
}
