package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"p9e.in/netzero/pkg/carbon"
)

// Site represents one operating unit (a mine or plant). Identity is immutable
// once created; the geographic attributes feed the emission factor resolver.
type Site struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name               string    `gorm:"size:150;uniqueIndex;not null" json:"name"`
	Location           string    `gorm:"size:255" json:"location"`
	State              string    `gorm:"size:100" json:"state"`
	GridRegion         string    `gorm:"size:50" json:"grid_region"`   // Northern/Southern/Eastern/Western/North-Eastern
	ClimateZone        string    `gorm:"size:50" json:"climate_zone"`  // Arid/Hot & Dry/Tropical/Warm & Humid/Composite/Montane
	AnnualCapacityTons float64   `gorm:"default:0" json:"annual_capacity_tons"`
	Geofence           *string   `gorm:"type:jsonb" json:"geofence,omitempty"` // optional polygon: {"coordinates":[{lat,lng},...]}
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (s *Site) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// CarbonContext returns the factor-resolver input for this site.
func (s *Site) CarbonContext() carbon.SiteContext {
	return carbon.SiteContext{
		GridRegion:  s.GridRegion,
		ClimateZone: s.ClimateZone,
	}
}
