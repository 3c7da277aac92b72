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

// InvoiceService builds invoices from recorded time entries.
type InvoiceService struct {
	DB *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{DB: db}
}

// CreateInvoiceInput is the payload for creating an invoice from entries.
type CreateInvoiceInput struct {
	ClientID     uuid.UUID
	IssueDate    time.Time
	DueDate      time.Time
	CurrencyCode string
	Notes        string
	TimeEntryIDs []uuid.UUID
}

// CreateFromEntries creates a DRAFT invoice and links the given entries
// to it. Every entry must exist, be uninvoiced, belong to the requested
// client (via its timesheet's project) and to a timesheet past DRAFT.
// The whole operation is one transaction.
func (s *InvoiceService) CreateFromEntries(in CreateInvoiceInput) (*models.Invoice, error) {
	if err := util.ValidatePeriod(in.IssueDate, in.DueDate); err != nil {
		return nil, &ValidationError{Msg: "dueDate must be >= issueDate"}
	}
	if len(in.TimeEntryIDs) == 0 {
		return nil, &ValidationError{Msg: "timeEntryIds must not be empty"}
	}

	var inv models.Invoice
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.First(&client, "id = ?", in.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Msg: "client not found"}
			}
			return err
		}

		var entries []models.TimeEntry
		if err := tx.Where("id IN ?", in.TimeEntryIDs).Find(&entries).Error; err != nil {
			return err
		}
		if len(entries) != len(in.TimeEntryIDs) {
			return &ValidationError{Msg: "one or more timeEntryIds are invalid"}
		}

		// Check invoicing eligibility of every entry through its timesheet.
		for i := range entries {
			e := &entries[i]
			if e.InvoiceID != nil {
				return &ConflictError{Msg: "entries must not be already invoiced"}
			}

			var t models.Timesheet
			if err := tx.First(&t, "id = ?", e.TimesheetID).Error; err != nil {
				return err
			}
			if t.Status == models.StatusDraft {
				return &ConflictError{Msg: "entries of DRAFT timesheets cannot be invoiced"}
			}

			var p models.Project
			if err := tx.First(&p, "id = ?", t.ProjectID).Error; err != nil {
				return err
			}
			if p.ClientID != in.ClientID {
				return &ConflictError{Msg: "entries must belong to the requested client"}
			}
		}

		inv = models.Invoice{
			ClientID:     in.ClientID,
			IssueDate:    in.IssueDate,
			DueDate:      in.DueDate,
			CurrencyCode: in.CurrencyCode,
			Status:       models.InvoiceDraft,
			Notes:        in.Notes,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}

		return tx.Model(&models.TimeEntry{}).
			Where("id IN ?", in.TimeEntryIDs).
			Update("invoice_id", inv.ID).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("invoice created: id=%s client=%s entries=%d", inv.ID, in.ClientID, len(in.TimeEntryIDs))
	return &inv, nil
}

// Send moves an invoice from DRAFT to SENT. Only DRAFT invoices can be sent.
func (s *InvoiceService) Send(id uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.DB.First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "invoice not found"}
		}
		return nil, err
	}
	if inv.Status != models.InvoiceDraft {
		return nil, &ConflictError{Msg: "only DRAFT invoices can be sent"}
	}
	inv.Status = models.InvoiceSent
	if err := s.DB.Save(&inv).Error; err != nil {
		return nil, err
	}
	log.Printf("invoice sent: id=%s", id)
	return &inv, nil
}

// Get loads one invoice.
func (s *InvoiceService) Get(id uuid.UUID) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.DB.First(&inv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "invoice not found"}
		}
		return nil, err
	}
	return &inv, nil
}

// List returns invoices, optionally narrowed to one client.
func (s *InvoiceService) List(clientID *uuid.UUID) ([]models.Invoice, error) {
	q := s.DB.Order("issue_date DESC, created_at DESC")
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	var invoices []models.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}
