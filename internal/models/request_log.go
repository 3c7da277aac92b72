package models

import "time"

// RequestLog records one API call for auditing.
type RequestLog struct {
	ID         uint   `gorm:"primaryKey"`
	Method     string `gorm:"size:16"`
	Path       string `gorm:"size:255"`
	Status     int    `gorm:"index"`
	DurationMs int64
	IP         string `gorm:"size:64"`
	UserAgent  string `gorm:"size:255"`
	CreatedAt  time.Time
}
