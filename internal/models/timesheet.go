package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Timesheet statuses. The usual path is DRAFT -> APPROVED -> LOCKED;
// LOCKED accepts no further entry writes.
const (
	StatusDraft    = "DRAFT"
	StatusApproved = "APPROVED"
	StatusLocked   = "LOCKED"
)

// Timesheet is the periodic container for a project's recorded work.
// At most one timesheet exists per (project, period_start, period_end).
type Timesheet struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	ProjectID   uuid.UUID `gorm:"type:char(36);index;not null;uniqueIndex:uq_timesheet_project_period"`
	PeriodStart time.Time `gorm:"not null;uniqueIndex:uq_timesheet_project_period"`
	PeriodEnd   time.Time `gorm:"not null;uniqueIndex:uq_timesheet_project_period"`
	Status      string    `gorm:"size:20;index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Entries []TimeEntry `gorm:"foreignKey:TimesheetID;constraint:OnDelete:CASCADE"`
}

func (t *Timesheet) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Mutable reports whether the timesheet still accepts entry writes.
// DRAFT and APPROVED are mutable; LOCKED is terminal.
func (t *Timesheet) Mutable() bool {
	return t.Status != StatusLocked
}
