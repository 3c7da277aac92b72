package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project belongs to exactly one client. Name is unique per client;
// code is an optional short identifier.
type Project struct {
	ID             uuid.UUID  `gorm:"type:char(36);primaryKey"`
	ClientID       uuid.UUID  `gorm:"type:char(36);index;not null;uniqueIndex:uq_project_per_client"`
	Name           string     `gorm:"size:255;not null;uniqueIndex:uq_project_per_client"`
	Code           string     `gorm:"size:100"`
	HourlyRateCent int64      `gorm:"not null"` // rate in cents to avoid float
	StartDate      *time.Time
	EndDate        *time.Time
	Description    string     `gorm:"type:text"`
	Active         bool       `gorm:"not null;default:true"`
	Version        int64      `gorm:"not null;default:0"` // bumped on every update
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Client Client `gorm:"constraint:OnDelete:CASCADE"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
