package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hr-pommala/sphuta-tms-freelancer/internal/models"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/util"
)

// TimesheetService owns the timesheet lifecycle and the entry
// reconciliation engine.
type TimesheetService struct {
	DB *gorm.DB
}

func NewTimesheetService(db *gorm.DB) *TimesheetService {
	return &TimesheetService{DB: db}
}

// EntryRow is one incoming row of a bulk upsert. (EntryDate, Description)
// is the natural key used to decide insert vs update; a nil description
// only matches entries stored with NULL.
type EntryRow struct {
	EntryDate   time.Time
	Description *string
	HoursCenti  int64
	RateCent    *int64
}

// BulkResult summarizes one reconciliation call. Deleted is always zero;
// this path never removes rows.
type BulkResult struct {
	Inserted        int
	Updated         int
	Deleted         int
	TotalHoursCenti int64
}

// TimesheetFilters narrows List results. Nil/empty fields are ignored.
type TimesheetFilters struct {
	ProjectID *uuid.UUID
	Status    string
	From      *time.Time
	To        *time.Time
	Page      int
	Size      int
}

// Create opens a new DRAFT timesheet for a project and period.
// At most one timesheet may exist per (project, periodStart, periodEnd).
func (s *TimesheetService) Create(projectID uuid.UUID, periodStart, periodEnd time.Time) (*models.Timesheet, error) {
	if err := util.ValidatePeriod(periodStart, periodEnd); err != nil {
		return nil, &ValidationError{Msg: "periodEnd must be >= periodStart"}
	}

	var project models.Project
	if err := s.DB.First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "project not found"}
		}
		return nil, err
	}

	var existing models.Timesheet
	err := s.DB.Where("project_id = ? AND period_start = ? AND period_end = ?",
		projectID, periodStart, periodEnd).First(&existing).Error
	if err == nil {
		return nil, &ConflictError{Msg: "timesheet for project & period already exists"}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t := models.Timesheet{
		ProjectID:   projectID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      models.StatusDraft,
	}
	if err := s.DB.Create(&t).Error; err != nil {
		return nil, err
	}
	log.Printf("timesheet created: id=%s project=%s period=%s..%s",
		t.ID, projectID, util.FormatDate(periodStart), util.FormatDate(periodEnd))
	return &t, nil
}

// Get loads a timesheet with its full entry set.
func (s *TimesheetService) Get(id uuid.UUID) (*models.Timesheet, error) {
	var t models.Timesheet
	if err := s.DB.Preload("Entries").First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "timesheet not found"}
		}
		return nil, err
	}
	return &t, nil
}

// List returns a page of timesheets matching the filters plus the total count.
func (s *TimesheetService) List(f TimesheetFilters) ([]models.Timesheet, int64, error) {
	base := s.DB.Model(&models.Timesheet{})
	if f.ProjectID != nil {
		base = base.Where("project_id = ?", *f.ProjectID)
	}
	if f.Status != "" {
		base = base.Where("status = ?", f.Status)
	}
	if f.From != nil {
		base = base.Where("period_start >= ?", *f.From)
	}
	if f.To != nil {
		base = base.Where("period_end <= ?", *f.To)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sheets []models.Timesheet
	if err := base.Session(&gorm.Session{}).
		Preload("Entries").
		Order("period_start DESC, created_at DESC").
		Limit(f.Size).
		Offset(f.Page * f.Size).
		Find(&sheets).Error; err != nil {
		return nil, 0, err
	}
	return sheets, total, nil
}

// Submit sets the status to APPROVED regardless of the current status.
// There is deliberately no mutability check here; re-submitting an
// APPROVED or even a LOCKED sheet always lands on APPROVED.
func (s *TimesheetService) Submit(id uuid.UUID) (*models.Timesheet, error) {
	return s.setStatus(id, models.StatusApproved)
}

// Lock sets the status to LOCKED. Afterwards every entry mutation on
// this timesheet is rejected.
func (s *TimesheetService) Lock(id uuid.UUID) (*models.Timesheet, error) {
	return s.setStatus(id, models.StatusLocked)
}

func (s *TimesheetService) setStatus(id uuid.UUID, status string) (*models.Timesheet, error) {
	var t models.Timesheet
	if err := s.DB.Preload("Entries").First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "timesheet not found"}
		}
		return nil, err
	}
	t.Status = status
	if err := s.DB.Save(&t).Error; err != nil {
		return nil, err
	}
	log.Printf("timesheet %s status set to %s", id, status)
	return &t, nil
}

// BulkUpsert reconciles the supplied rows against the timesheet's entries
// inside one transaction. Rows are processed in caller order; a row with
// no natural-key match is inserted, a matching row has hours/rate/cost
// overwritten in place. Any failure rolls the whole batch back.
func (s *TimesheetService) BulkUpsert(id uuid.UUID, rows []EntryRow) (*BulkResult, error) {
	var res BulkResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var t models.Timesheet
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Msg: "timesheet not found"}
			}
			return err
		}

		// The gate runs before any per-row validation: one LOCKED
		// timesheet aborts the entire batch.
		if !t.Mutable() {
			return &ConflictError{Msg: "timesheet is LOCKED and cannot be modified"}
		}

		for _, r := range rows {
			if !util.WithinPeriod(r.EntryDate, t.PeriodStart, t.PeriodEnd) {
				return &ValidationError{Msg: "entryDate outside timesheet period"}
			}
			if err := util.ValidateHours(r.HoursCenti); err != nil {
				return &ValidationError{Msg: err.Error()}
			}

			existing, err := findEntryByNaturalKey(tx, t.ID, r.EntryDate, r.Description)
			if err != nil {
				return err
			}

			if existing == nil {
				e := models.TimeEntry{
					TimesheetID: t.ID,
					EntryDate:   r.EntryDate,
					Description: r.Description,
					HoursCenti:  r.HoursCenti,
					RateCent:    r.RateCent,
					CostCent:    costSnapshot(r.RateCent, r.HoursCenti),
				}
				if err := tx.Create(&e).Error; err != nil {
					return err
				}
				res.Inserted++
			} else {
				// Update path: only hours, rate and the recomputed cost
				// change; date and description stay as stored.
				existing.HoursCenti = r.HoursCenti
				existing.RateCent = r.RateCent
				existing.CostCent = costSnapshot(r.RateCent, r.HoursCenti)
				if err := tx.Save(existing).Error; err != nil {
					return err
				}
				res.Updated++
			}
		}

		// Recompute totals over the full post-reconciliation entry set.
		var entries []models.TimeEntry
		if err := tx.Where("timesheet_id = ?", t.ID).Find(&entries).Error; err != nil {
			return err
		}
		res.TotalHoursCenti = TotalHoursCenti(entries)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("bulk upsert done: timesheet=%s inserted=%d updated=%d totalHours=%s",
		id, res.Inserted, res.Updated, util.FormatCenti(res.TotalHoursCenti))
	return &res, nil
}

// findEntryByNaturalKey is a point lookup on (timesheet, entryDate,
// description). NULL descriptions only match NULL. Absence is not an
// error; it signals the insert path.
func findEntryByNaturalKey(tx *gorm.DB, timesheetID uuid.UUID, date time.Time, description *string) (*models.TimeEntry, error) {
	q := tx.Where("timesheet_id = ? AND entry_date = ?", timesheetID, date)
	if description == nil {
		q = q.Where("description IS NULL")
	} else {
		q = q.Where("description = ?", *description)
	}

	var e models.TimeEntry
	if err := q.First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func costSnapshot(rateCent *int64, hoursCenti int64) *int64 {
	if rateCent == nil {
		return nil
	}
	c := util.CostCent(*rateCent, hoursCenti)
	return &c
}
