package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice statuses. An invoice starts as DRAFT and can be sent once.
const (
	InvoiceDraft = "DRAFT"
	InvoiceSent  = "SENT"
)

// Invoice bills a client for a set of time entries.
type Invoice struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	ClientID     uuid.UUID `gorm:"type:char(36);index;not null"`
	IssueDate    time.Time `gorm:"not null"`
	DueDate      time.Time `gorm:"not null"`
	CurrencyCode string    `gorm:"size:3;not null"`
	Status       string    `gorm:"size:20;not null"`
	Notes        string    `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
