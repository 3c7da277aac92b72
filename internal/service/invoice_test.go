package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/hr-pommala/sphuta-tms-freelancer/internal/models"
)

func seedBillableEntries(t *testing.T, svc *TimeEntryService, timesheetID uuid.UUID) []models.TimeEntry {
	t.Helper()
	var entries []models.TimeEntry
	for _, d := range []string{"2025-09-01", "2025-09-02"} {
		e, err := svc.Create(CreateEntryInput{
			TimesheetID: timesheetID,
			EntryDate:   date(t, d),
			HoursCenti:  200,
			RateCent:    int64Ptr(12000),
		})
		if err != nil {
			t.Fatalf("seed entry: %v", err)
		}
		entries = append(entries, *e)
	}
	return entries
}

func TestCreateInvoice_LinksEntries(t *testing.T) {
	db := setupDB(t)
	cl := seedClient(t, db)
	p := seedProject(t, db, cl.ID)
	ts := seedTimesheet(t, db, p.ID, models.StatusApproved, "2025-09-01", "2025-09-07")
	entries := seedBillableEntries(t, NewTimeEntryService(db), ts.ID)
	svc := NewInvoiceService(db)

	inv, err := svc.CreateFromEntries(CreateInvoiceInput{
		ClientID:     cl.ID,
		IssueDate:    date(t, "2025-10-01"),
		DueDate:      date(t, "2025-10-15"),
		CurrencyCode: "USD",
		TimeEntryIDs: []uuid.UUID{entries[0].ID, entries[1].ID},
	})
	if err != nil {
		t.Fatalf("CreateFromEntries: %v", err)
	}
	if inv.Status != models.InvoiceDraft {
		t.Errorf("status = %q, want %q", inv.Status, models.InvoiceDraft)
	}

	var linked int64
	if err := db.Model(&models.TimeEntry{}).
		Where("invoice_id = ?", inv.ID).Count(&linked).Error; err != nil {
		t.Fatalf("count linked: %v", err)
	}
	if linked != 2 {
		t.Errorf("linked entries = %d, want 2", linked)
	}
}

func TestCreateInvoice_UnknownEntryID(t *testing.T) {
	db := setupDB(t)
	cl := seedClient(t, db)
	p := seedProject(t, db, cl.ID)
	ts := seedTimesheet(t, db, p.ID, models.StatusApproved, "2025-09-01", "2025-09-07")
	entries := seedBillableEntries(t, NewTimeEntryService(db), ts.ID)
	svc := NewInvoiceService(db)

	_, err := svc.CreateFromEntries(CreateInvoiceInput{
		ClientID:     cl.ID,
		IssueDate:    date(t, "2025-10-01"),
		DueDate:      date(t, "2025-10-15"),
		TimeEntryIDs: []uuid.UUID{entries[0].ID, uuid.New()},
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}

	// The good entry must stay unlinked after the rollback.
	var e models.TimeEntry
	if err := db.First(&e, "id = ?", entries[0].ID).Error; err != nil {
		t.Fatalf("reload entry: %v", err)
	}
	if e.InvoiceID != nil {
		t.Error("entry was linked despite failed create")
	}
}

func TestCreateInvoice_AlreadyInvoicedConflicts(t *testing.T) {
	db := setupDB(t)
	cl := seedClient(t, db)
	p := seedProject(t, db, cl.ID)
	ts := seedTimesheet(t, db, p.ID, models.StatusApproved, "2025-09-01", "2025-09-07")
	entries := seedBillableEntries(t, NewTimeEntryService(db), ts.ID)
	svc := NewInvoiceService(db)

	in := CreateInvoiceInput{
		ClientID:     cl.ID,
		IssueDate:    date(t, "2025-10-01"),
		DueDate:      date(t, "2025-10-15"),
		TimeEntryIDs: []uuid.UUID{entries[0].ID, entries[1].ID},
	}
	if _, err := svc.CreateFromEntries(in); err != nil {
		t.Fatalf("first CreateFromEntries: %v", err)
	}

	_, err := svc.CreateFromEntries(in)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("second CreateFromEntries err = %v, want ConflictError", err)
	}
}

func TestCreateInvoice_DraftTimesheetConflicts(t *testing.T) {
	db := setupDB(t)
	cl := seedClient(t, db)
	p := seedProject(t, db, cl.ID)
	ts := seedTimesheet(t, db, p.ID, models.StatusDraft, "2025-09-01", "2025-09-07")
	entries := seedBillableEntries(t, NewTimeEntryService(db), ts.ID)
	svc := NewInvoiceService(db)

	_, err := svc.CreateFromEntries(CreateInvoiceInput{
		ClientID:     cl.ID,
		IssueDate:    date(t, "2025-10-01"),
		DueDate:      date(t, "2025-10-15"),
		TimeEntryIDs: []uuid.UUID{entries[0].ID},
	})
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
}

func TestCreateInvoice_WrongClientConflicts(t *testing.T) {
	db := setupDB(t)
	cl := seedClient(t, db)
	p := seedProject(t, db, cl.ID)
	ts := seedTimesheet(t, db, p.ID, models.StatusApproved, "2025-09-01", "2025-09-07")
	entries := seedBillableEntries(t, NewTimeEntryService(db), ts.ID)

	other := models.Client{Name: "Other LLC", Active: true}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed other client: %v", err)
	}
	svc := NewInvoiceService(db)

	_, err := svc.CreateFromEntries(CreateInvoiceInput{
		ClientID:     other.ID,
		IssueDate:    date(t, "2025-10-01"),
		DueDate:      date(t, "2025-10-15"),
		TimeEntryIDs: []uuid.UUID{entries[0].ID},
	})
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
}

func TestCreateInvoice_DueBeforeIssue(t *testing.T) {
	db := setupDB(t)
	cl := seedClient(t, db)
	svc := NewInvoiceService(db)

	_, err := svc.CreateFromEntries(CreateInvoiceInput{
		ClientID:     cl.ID,
		IssueDate:    date(t, "2025-10-15"),
		DueDate:      date(t, "2025-10-01"),
		TimeEntryIDs: []uuid.UUID{uuid.New()},
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestSendInvoice(t *testing.T) {
	db := setupDB(t)
	cl := seedClient(t, db)
	p := seedProject(t, db, cl.ID)
	ts := seedTimesheet(t, db, p.ID, models.StatusApproved, "2025-09-01", "2025-09-07")
	entries := seedBillableEntries(t, NewTimeEntryService(db), ts.ID)
	svc := NewInvoiceService(db)

	inv, err := svc.CreateFromEntries(CreateInvoiceInput{
		ClientID:     cl.ID,
		IssueDate:    date(t, "2025-10-01"),
		DueDate:      date(t, "2025-10-15"),
		TimeEntryIDs: []uuid.UUID{entries[0].ID},
	})
	if err != nil {
		t.Fatalf("CreateFromEntries: %v", err)
	}

	sent, err := svc.Send(inv.ID)
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if sent.Status != models.InvoiceSent {
		t.Errorf("status = %q, want %q", sent.Status, models.InvoiceSent)
	}

	// Sending twice is rejected.
	_, err = svc.Send(inv.ID)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("second Send err = %v, want ConflictError", err)
	}
}
