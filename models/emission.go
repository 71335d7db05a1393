package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// EmissionRecord is one scope 1/2 activity entry. Records are append-only:
// co2e_tons and scope are derived at ingestion time and never recomputed, and
// rows are removed only by the cascading site delete.
type EmissionRecord struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SiteID         uuid.UUID      `gorm:"type:uuid;index;not null" json:"site_id"`
	Site           Site           `gorm:"foreignKey:SiteID" json:"-"`
	ActivityType   string         `gorm:"size:100;not null" json:"activity_type"`
	Scope          string         `gorm:"size:10;not null" json:"scope"`
	Date           time.Time      `gorm:"not null" json:"date"`
	Amount         float64        `gorm:"not null" json:"amount"`
	Unit           string         `gorm:"size:20" json:"unit"`
	CO2eTons       float64        `gorm:"column:co2e_tons;not null" json:"co2e_tons"`
	EvidencePhotos pq.StringArray `gorm:"type:text[]" json:"evidence_photos,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (e *EmissionRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

// EmissionInput is the raw descriptor accepted by single and bulk ingestion.
type EmissionInput struct {
	SiteID         string    `json:"site_id"`
	ActivityType   string    `json:"activity_type"`
	Date           *JSONTime `json:"date,omitempty"`
	Amount         Amount    `json:"amount"`
	Unit           string    `json:"unit"`
	EvidencePhotos []string  `json:"evidence_photos,omitempty"`
}

// OccurredAt returns the entry date, defaulting to ingestion time.
func (in EmissionInput) OccurredAt() time.Time {
	if in.Date == nil {
		return time.Now().UTC()
	}
	return time.Time(*in.Date)
}
