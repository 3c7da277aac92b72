package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hr-pommala/sphuta-tms-freelancer/internal/models"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/util"
)

// invoicedMarker in a description flags an entry as billed even when no
// invoice record links to it (legacy data path).
const invoicedMarker = "[invoiced]"

// TimeEntryService handles single-entry commands (create/delete) and
// invoicing lookups.
type TimeEntryService struct {
	DB *gorm.DB
}

func NewTimeEntryService(db *gorm.DB) *TimeEntryService {
	return &TimeEntryService{DB: db}
}

// CreateEntryInput is the payload for a single entry create.
type CreateEntryInput struct {
	TimesheetID uuid.UUID
	EntryDate   time.Time
	Description *string
	HoursCenti  int64
	RateCent    *int64
}

// Create validates and persists one time entry on a mutable timesheet.
func (s *TimeEntryService) Create(in CreateEntryInput) (*models.TimeEntry, error) {
	var t models.Timesheet
	if err := s.DB.First(&t, "id = ?", in.TimesheetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "timesheet not found"}
		}
		return nil, err
	}

	if !t.Mutable() {
		return nil, &ConflictError{Msg: "timesheet is LOCKED and cannot be modified"}
	}
	if !util.WithinPeriod(in.EntryDate, t.PeriodStart, t.PeriodEnd) {
		return nil, &ValidationError{Msg: "entryDate outside timesheet period"}
	}
	if err := util.ValidateHours(in.HoursCenti); err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	e := models.TimeEntry{
		TimesheetID: t.ID,
		EntryDate:   in.EntryDate,
		Description: in.Description,
		HoursCenti:  in.HoursCenti,
		RateCent:    in.RateCent,
		CostCent:    costSnapshot(in.RateCent, in.HoursCenti),
	}
	if err := s.DB.Create(&e).Error; err != nil {
		return nil, err
	}
	log.Printf("time entry created: id=%s timesheet=%s date=%s",
		e.ID, t.ID, util.FormatDate(in.EntryDate))
	return &e, nil
}

// Delete removes a time entry. Entries that are already billed, either
// through an invoice link or the description marker, are kept.
func (s *TimeEntryService) Delete(id uuid.UUID) error {
	var e models.TimeEntry
	if err := s.DB.First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Msg: "time entry not found"}
		}
		return err
	}

	if e.InvoiceID != nil {
		return &ConflictError{Msg: "time entry already invoiced; cannot delete"}
	}
	if e.Description != nil && strings.Contains(strings.ToLower(*e.Description), invoicedMarker) {
		return &ConflictError{Msg: "time entry already invoiced; cannot delete"}
	}

	if err := s.DB.Delete(&e).Error; err != nil {
		return err
	}
	log.Printf("time entry deleted: id=%s", id)
	return nil
}

// Uninvoiced lists the entries of a client that are eligible for
// invoicing: no invoice link yet and a parent timesheet past DRAFT.
func (s *TimeEntryService) Uninvoiced(clientID uuid.UUID) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	err := s.DB.
		Joins("JOIN timesheets ON timesheets.id = time_entries.timesheet_id").
		Joins("JOIN projects ON projects.id = timesheets.project_id").
		Where("projects.client_id = ?", clientID).
		Where("time_entries.invoice_id IS NULL").
		Where("timesheets.status <> ?", models.StatusDraft).
		Order("time_entries.entry_date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
