package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client represents a billable customer.
type Client struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	Email     string    `gorm:"size:255"`
	Notes     string    `gorm:"type:text"`
	Active    bool      `gorm:"not null;default:true"` // archive = soft flag, not a delete
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
