package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ValueChainRecord is one scope 3 entry. Categories are a loose vocabulary
// (Purchased Goods, Freight/Logistics, Business Travel, Employee Commuting,
// Waste Disposal); anything else falls back to the default factor at
// ingestion. Same append-only lifecycle as EmissionRecord.
type ValueChainRecord struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SiteID         uuid.UUID      `gorm:"type:uuid;index;not null" json:"site_id"`
	Site           Site           `gorm:"foreignKey:SiteID" json:"-"`
	Category       string         `gorm:"size:100;not null" json:"category"`
	SubCategory    string         `gorm:"size:100" json:"sub_category"`
	VendorName     string         `gorm:"size:150" json:"vendor_name"`
	Date           time.Time      `gorm:"not null" json:"date"`
	Amount         float64        `gorm:"not null" json:"amount"`
	Unit           string         `gorm:"size:20" json:"unit"`
	CO2eTons       float64        `gorm:"column:co2e_tons;not null" json:"co2e_tons"`
	EvidencePhotos pq.StringArray `gorm:"type:text[]" json:"evidence_photos,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (v *ValueChainRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}

// ValueChainInput is the raw descriptor accepted by single and bulk scope 3
// ingestion.
type ValueChainInput struct {
	SiteID         string    `json:"site_id"`
	Category       string    `json:"category"`
	SubCategory    string    `json:"sub_category,omitempty"`
	VendorName     string    `json:"vendor_name,omitempty"`
	Date           *JSONTime `json:"date,omitempty"`
	Amount         Amount    `json:"amount"`
	Unit           string    `json:"unit"`
	EvidencePhotos []string  `json:"evidence_photos,omitempty"`
}

func (in ValueChainInput) OccurredAt() time.Time {
	if in.Date == nil {
		return time.Now().UTC()
	}
	return time.Time(*in.Date)
}
