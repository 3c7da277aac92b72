package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/hr-pommala/sphuta-tms-freelancer/internal/models"
)

func TestCreateEntry(t *testing.T) {
	db := setupDB(t)
	ts := seedStack(t, db, models.StatusDraft)
	svc := NewTimeEntryService(db)

	e, err := svc.Create(CreateEntryInput{
		TimesheetID: ts.ID,
		EntryDate:   date(t, "2025-09-03"),
		Description: strPtr("client call"),
		HoursCenti:  150,
		RateCent:    int64Ptr(12000),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.CostCent == nil || *e.CostCent != 18000 {
		t.Errorf("cost = %v, want 18000", e.CostCent)
	}
	if n := countEntries(t, db, ts.ID); n != 1 {
		t.Errorf("entry count = %d, want 1", n)
	}
}

func TestCreateEntry_OutsidePeriod(t *testing.T) {
	db := setupDB(t)
	ts := seedStack(t, db, models.StatusDraft)
	svc := NewTimeEntryService(db)

	_, err := svc.Create(CreateEntryInput{
		TimesheetID: ts.ID,
		EntryDate:   date(t, "2025-08-31"),
		HoursCenti:  100,
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCreateEntry_ZeroHours(t *testing.T) {
	db := setupDB(t)
	ts := seedStack(t, db, models.StatusDraft)
	svc := NewTimeEntryService(db)

	_, err := svc.Create(CreateEntryInput{
		TimesheetID: ts.ID,
		EntryDate:   date(t, "2025-09-01"),
		HoursCenti:  0,
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCreateEntry_LockedTimesheet(t *testing.T) {
	db := setupDB(t)
	ts := seedStack(t, db, models.StatusLocked)
	svc := NewTimeEntryService(db)

	_, err := svc.Create(CreateEntryInput{
		TimesheetID: ts.ID,
		EntryDate:   date(t, "2025-09-01"),
		HoursCenti:  100,
	})
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	db := setupDB(t)
	ts := seedStack(t, db, models.StatusDraft)
	svc := NewTimeEntryService(db)

	e, err := svc.Create(CreateEntryInput{
		TimesheetID: ts.ID,
		EntryDate:   date(t, "2025-09-01"),
		HoursCenti:  100,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n := countEntries(t, db, ts.ID); n != 0 {
		t.Errorf("entry count = %d, want 0", n)
	}
}

func TestDeleteEntry_InvoicedMarkerBlocks(t *testing.T) {
	db := setupDB(t)
	ts := seedStack(t, db, models.StatusDraft)
	svc := NewTimeEntryService(db)

	e, err := svc.Create(CreateEntryInput{
		TimesheetID: ts.ID,
		EntryDate:   date(t, "2025-09-01"),
		Description: strPtr("api work [INVOICED] 2025-10"),
		HoursCenti:  100,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = svc.Delete(e.ID)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if n := countEntries(t, db, ts.ID); n != 1 {
		t.Errorf("entry count = %d, want 1", n)
	}
}

func TestDeleteEntry_InvoiceLinkBlocks(t *testing.T) {
	db := setupDB(t)
	ts := seedStack(t, db, models.StatusDraft)
	svc := NewTimeEntryService(db)

	e, err := svc.Create(CreateEntryInput{
		TimesheetID: ts.ID,
		EntryDate:   date(t, "2025-09-01"),
		HoursCenti:  100,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	invID := uuid.New()
	if err := db.Model(&models.TimeEntry{}).Where("id = ?", e.ID).
		Update("invoice_id", invID).Error; err != nil {
		t.Fatalf("link invoice: %v", err)
	}

	err = svc.Delete(e.ID)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
}

func TestDeleteEntry_Unknown(t *testing.T) {
	db := setupDB(t)
	svc := NewTimeEntryService(db)

	err := svc.Delete(uuid.New())
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestUninvoiced(t *testing.T) {
	db := setupDB(t)
	cl := seedClient(t, db)
	p := seedProject(t, db, cl.ID)
	approved := seedTimesheet(t, db, p.ID, models.StatusApproved, "2025-09-01", "2025-09-07")
	draft := seedTimesheet(t, db, p.ID, models.StatusDraft, "2025-09-08", "2025-09-14")
	entrySvc := NewTimeEntryService(db)

	eligible, err := entrySvc.Create(CreateEntryInput{
		TimesheetID: approved.ID,
		EntryDate:   date(t, "2025-09-02"),
		HoursCenti:  200,
	})
	if err != nil {
		t.Fatalf("create eligible entry: %v", err)
	}
	if _, err := entrySvc.Create(CreateEntryInput{
		TimesheetID: draft.ID,
		EntryDate:   date(t, "2025-09-09"),
		HoursCenti:  300,
	}); err != nil {
		t.Fatalf("create draft entry: %v", err)
	}

	got, err := entrySvc.Uninvoiced(cl.ID)
	if err != nil {
		t.Fatalf("Uninvoiced: %v", err)
	}
	if len(got) != 1 || got[0].ID != eligible.ID {
		t.Fatalf("got %d entries, want the single approved-sheet entry", len(got))
	}

	// Once linked to an invoice the entry drops out of the listing.
	if err := db.Model(&models.TimeEntry{}).Where("id = ?", eligible.ID).
		Update("invoice_id", uuid.New()).Error; err != nil {
		t.Fatalf("link invoice: %v", err)
	}
	got, err = entrySvc.Uninvoiced(cl.ID)
	if err != nil {
		t.Fatalf("Uninvoiced after link: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d entries, want 0", len(got))
	}
}
