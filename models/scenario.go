package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Intervention is one planned measure inside a scenario. Interventions are
// embedded data, not persisted entities; the whole list is replaced on update.
type Intervention struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	ImpactFraction float64 `json:"impact_fraction"` // estimated fractional emissions reduction in [0,1]
	CostTier       string  `json:"cost_tier"`
	CapexAmount    float64 `json:"capex_amount"`
	AnnualSavings  float64 `json:"annual_savings"`
}

// Scenario is a decarbonization plan, either site-scoped or org-wide when
// SiteID is null. Scenarios live independently of sites except for the
// cascading site delete.
type Scenario struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SiteID        *uuid.UUID     `gorm:"type:uuid;index" json:"site_id,omitempty"`
	Name          string         `gorm:"size:150;not null" json:"name"`
	Description   string         `gorm:"size:500" json:"description"`
	TargetYear    int            `gorm:"not null" json:"target_year"`
	Interventions datatypes.JSON `gorm:"type:jsonb" json:"interventions"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (s *Scenario) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

func (s *Scenario) SetInterventions(items []Intervention) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	s.Interventions = datatypes.JSON(raw)
	return nil
}

func (s *Scenario) InterventionList() ([]Intervention, error) {
	if len(s.Interventions) == 0 {
		return nil, nil
	}
	var items []Intervention
	if err := json.Unmarshal(s.Interventions, &items); err != nil {
		return nil, err
	}
	return items, nil
}
