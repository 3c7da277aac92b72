package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeEntry is one row of recorded work inside a timesheet.
// Hours are stored in centi-hours (2.50h = 250) and money in cents,
// so aggregation stays exact without floats.
type TimeEntry struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey"`
	TimesheetID uuid.UUID  `gorm:"type:char(36);index;not null"`
	EntryDate   time.Time  `gorm:"index;not null"`
	Description *string    `gorm:"size:255"` // part of the reconciliation natural key; NULL and "" are distinct
	HoursCenti  int64      `gorm:"not null"`
	RateCent    *int64     // rate snapshot at entry time, cents per hour
	CostCent    *int64     // cost snapshot, conventionally rate x hours
	InvoiceID   *uuid.UUID `gorm:"type:char(36);index"` // set once the entry is billed
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (e *TimeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
