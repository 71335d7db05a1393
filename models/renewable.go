package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RenewableAsset is an on-site generation asset (solar, wind, storage).
type RenewableAsset struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SiteID                uuid.UUID      `gorm:"type:uuid;index;not null" json:"site_id"`
	Site                  Site           `gorm:"foreignKey:SiteID" json:"-"`
	Name                  string         `gorm:"size:150;not null" json:"name"`
	Type                  string         `gorm:"size:50" json:"type"`
	CapacityKW            float64        `gorm:"column:capacity_kw" json:"capacity_kw"`
	CommissioningDate     *time.Time     `json:"commissioning_date,omitempty"`
	StorageCapacityKWh    float64        `gorm:"column:storage_capacity_kwh;default:0" json:"storage_capacity_kwh"`
	AnnualDegradationRate float64        `gorm:"default:0.5" json:"annual_degradation_rate"`
	TechnicalDetails      datatypes.JSON `gorm:"type:jsonb" json:"technical_details,omitempty"`
	MatchWithLoadProfile  bool           `gorm:"default:false" json:"match_with_load_profile"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
}

func (a *RenewableAsset) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// RenewableGeneration is one metered generation reading for an asset.
type RenewableGeneration struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID      uuid.UUID      `gorm:"type:uuid;index;not null" json:"asset_id"`
	Asset        RenewableAsset `gorm:"foreignKey:AssetID" json:"-"`
	Date         time.Time      `gorm:"not null" json:"date"`
	GeneratedKWh float64        `gorm:"column:generated_kwh;not null" json:"generated_kwh"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (g *RenewableGeneration) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return
}
