package service

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/hr-pommala/sphuta-tms-freelancer/internal/config"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/models"
)

// StartScheduler launches the background reporter: a periodic heartbeat
// that logs how many timesheets are currently APPROVED.
func StartScheduler(db *gorm.DB, cfg config.SchedulerConfig) {
	if !cfg.Enabled {
		return
	}

	interval := time.Duration(cfg.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = time.Hour
	}

	go func() {
		log.Printf("scheduler started, interval %s", interval)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			var count int64
			if err := db.Model(&models.Timesheet{}).
				Where("status = ?", models.StatusApproved).
				Count(&count).Error; err != nil {
				log.Printf("scheduler: count approved timesheets: %v", err)
				continue
			}
			log.Printf("scheduler heartbeat: %d approved timesheets", count)
		}
	}()
}
