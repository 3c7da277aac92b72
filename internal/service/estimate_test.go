package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestCreateEstimate(t *testing.T) {
	db := setupDB(t)
	cl := seedClient(t, db)
	svc := NewEstimateService(db)

	est, err := svc.Create(CreateEstimateInput{
		ClientID:     cl.ID,
		IssueDate:    date(t, "2025-09-01"),
		ValidUntil:   date(t, "2025-09-30"),
		CurrencyCode: "USD",
		Items: []EstimateItemInput{
			{Description: "Discovery workshop", QuantityCenti: 800, UnitPriceCent: 15000},
			{Description: "Implementation", QuantityCenti: 4000, UnitPriceCent: 12000},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(est.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(got.Items))
	}
	if got.Items[0].QuantityCenti != 800 || got.Items[0].UnitPriceCent != 15000 {
		t.Errorf("item[0] = %+v", got.Items[0])
	}
}

func TestCreateEstimate_InvalidValidity(t *testing.T) {
	db := setupDB(t)
	cl := seedClient(t, db)
	svc := NewEstimateService(db)

	_, err := svc.Create(CreateEstimateInput{
		ClientID:   cl.ID,
		IssueDate:  date(t, "2025-09-30"),
		ValidUntil: date(t, "2025-09-01"),
		Items:      []EstimateItemInput{{Description: "x", QuantityCenti: 100, UnitPriceCent: 100}},
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCreateEstimate_EmptyItems(t *testing.T) {
	db := setupDB(t)
	cl := seedClient(t, db)
	svc := NewEstimateService(db)

	_, err := svc.Create(CreateEstimateInput{
		ClientID:   cl.ID,
		IssueDate:  date(t, "2025-09-01"),
		ValidUntil: date(t, "2025-09-30"),
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCreateEstimate_BadItem(t *testing.T) {
	db := setupDB(t)
	cl := seedClient(t, db)
	svc := NewEstimateService(db)

	_, err := svc.Create(CreateEstimateInput{
		ClientID:   cl.ID,
		IssueDate:  date(t, "2025-09-01"),
		ValidUntil: date(t, "2025-09-30"),
		Items:      []EstimateItemInput{{Description: "x", QuantityCenti: 0, UnitPriceCent: 100}},
	})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCreateEstimate_UnknownClient(t *testing.T) {
	db := setupDB(t)
	svc := NewEstimateService(db)

	_, err := svc.Create(CreateEstimateInput{
		ClientID:   uuid.New(),
		IssueDate:  date(t, "2025-09-01"),
		ValidUntil: date(t, "2025-09-30"),
		Items:      []EstimateItemInput{{Description: "x", QuantityCenti: 100, UnitPriceCent: 100}},
	})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}
