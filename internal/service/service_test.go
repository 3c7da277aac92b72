package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hr-pommala/sphuta-tms-freelancer/internal/database"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/models"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/util"
)

// setupDB opens a private in-memory database per test. The named shared
// cache keeps the schema visible across pooled connections.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := util.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func seedClient(t *testing.T, db *gorm.DB) *models.Client {
	t.Helper()
	cl := models.Client{Name: "Acme Corp", Active: true}
	if err := db.Create(&cl).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return &cl
}

func seedProject(t *testing.T, db *gorm.DB, clientID uuid.UUID) *models.Project {
	t.Helper()
	p := models.Project{
		ClientID:       clientID,
		Name:           "Website Relaunch",
		HourlyRateCent: 12000,
		Active:         true,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return &p
}

func seedTimesheet(t *testing.T, db *gorm.DB, projectID uuid.UUID, status, start, end string) *models.Timesheet {
	t.Helper()
	ts := models.Timesheet{
		ProjectID:   projectID,
		PeriodStart: date(t, start),
		PeriodEnd:   date(t, end),
		Status:      status,
	}
	if err := db.Create(&ts).Error; err != nil {
		t.Fatalf("seed timesheet: %v", err)
	}
	return &ts
}

// seedStack creates client -> project -> timesheet in one go.
func seedStack(t *testing.T, db *gorm.DB, status string) *models.Timesheet {
	t.Helper()
	cl := seedClient(t, db)
	p := seedProject(t, db, cl.ID)
	return seedTimesheet(t, db, p.ID, status, "2025-09-01", "2025-09-07")
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func countEntries(t *testing.T, db *gorm.DB, timesheetID uuid.UUID) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.TimeEntry{}).Where("timesheet_id = ?", timesheetID).Count(&n).Error; err != nil {
		t.Fatalf("count entries: %v", err)
	}
	return n
}
