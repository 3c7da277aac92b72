package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Estimate is a quote offered to a client before work starts.
type Estimate struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	ClientID     uuid.UUID `gorm:"type:char(36);index;not null"`
	IssueDate    time.Time `gorm:"not null"`
	ValidUntil   time.Time `gorm:"not null"`
	CurrencyCode string    `gorm:"size:3;not null"`
	Notes        string    `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []EstimateItem `gorm:"foreignKey:EstimateID;constraint:OnDelete:CASCADE"`
}

// EstimateItem is a single quoted line: quantity in centi-units,
// unit price in cents.
type EstimateItem struct {
	ID            uint      `gorm:"primaryKey"`
	EstimateID    uuid.UUID `gorm:"type:char(36);index;not null"`
	Description   string    `gorm:"size:255;not null"`
	QuantityCenti int64     `gorm:"not null"`
	UnitPriceCent int64     `gorm:"not null"`
}

func (e *Estimate) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
