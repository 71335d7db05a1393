package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"p9e.in/netzero/pkg/carbon"
)

const (
	CreditStatusAvailable = "available"
	CreditStatusRetired   = "retired"
)

// CreditLot is one purchased batch of offset credits. The only state
// transition is retirement, which moves quantity from Available to Retired;
// `Available + Retired == Quantity` holds after every operation.
type CreditLot struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectName          string    `gorm:"size:150;not null" json:"project_name"`
	CreditType           string    `gorm:"size:50" json:"type"`
	Vintage              int       `json:"vintage"`
	Quantity             float64   `gorm:"column:quantity_tco2e;not null" json:"quantity_tco2e"`
	Available            float64   `gorm:"column:available_tco2e;not null" json:"available_tco2e"`
	Retired              float64   `gorm:"column:retired_tco2e;not null;default:0" json:"retired_tco2e"`
	CostPerUnit          float64   `json:"cost_per_unit"`
	VerificationStandard string    `gorm:"size:50" json:"verification_standard"`
	Status               string    `gorm:"size:20;not null;default:'available'" json:"status"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (c *CreditLot) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// Retire moves quantity from available to retired. On any error the lot is
// left unchanged. Callers must hold a row lock (or equivalent) when persisting
// the result, so concurrent retirements cannot both drain the same balance.
func (c *CreditLot) Retire(quantity float64) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: retirement quantity must be positive", carbon.ErrInvalidInput)
	}
	if quantity > c.Available {
		return carbon.ErrInsufficientBalance
	}

	c.Available -= quantity
	c.Retired += quantity
	if c.Available <= 0 {
		c.Status = CreditStatusRetired
	} else {
		c.Status = CreditStatusAvailable
	}
	return nil
}
