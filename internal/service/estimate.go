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

// EstimateService manages client quotes.
type EstimateService struct {
	DB *gorm.DB
}

func NewEstimateService(db *gorm.DB) *EstimateService {
	return &EstimateService{DB: db}
}

// EstimateItemInput is one quoted line of a new estimate.
type EstimateItemInput struct {
	Description   string
	QuantityCenti int64
	UnitPriceCent int64
}

// CreateEstimateInput is the payload for creating an estimate.
type CreateEstimateInput struct {
	ClientID     uuid.UUID
	IssueDate    time.Time
	ValidUntil   time.Time
	CurrencyCode string
	Notes        string
	Items        []EstimateItemInput
}

// Create persists a new estimate with its item lines.
func (s *EstimateService) Create(in CreateEstimateInput) (*models.Estimate, error) {
	if err := util.ValidatePeriod(in.IssueDate, in.ValidUntil); err != nil {
		return nil, &ValidationError{Msg: "validUntil must be >= issueDate"}
	}
	if len(in.Items) == 0 {
		return nil, &ValidationError{Msg: "estimate must contain at least one item"}
	}
	for _, it := range in.Items {
		if it.Description == "" {
			return nil, &ValidationError{Msg: "item description must not be empty"}
		}
		if it.QuantityCenti <= 0 {
			return nil, &ValidationError{Msg: "item quantity must be > 0"}
		}
	}

	var client models.Client
	if err := s.DB.First(&client, "id = ?", in.ClientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "client not found"}
		}
		return nil, err
	}

	est := models.Estimate{
		ClientID:     in.ClientID,
		IssueDate:    in.IssueDate,
		ValidUntil:   in.ValidUntil,
		CurrencyCode: in.CurrencyCode,
		Notes:        in.Notes,
	}
	for _, it := range in.Items {
		est.Items = append(est.Items, models.EstimateItem{
			Description:   it.Description,
			QuantityCenti: it.QuantityCenti,
			UnitPriceCent: it.UnitPriceCent,
		})
	}

	if err := s.DB.Create(&est).Error; err != nil {
		return nil, err
	}
	log.Printf("estimate created: id=%s client=%s items=%d", est.ID, in.ClientID, len(in.Items))
	return &est, nil
}

// Get loads one estimate with its items.
func (s *EstimateService) Get(id uuid.UUID) (*models.Estimate, error) {
	var est models.Estimate
	if err := s.DB.Preload("Items").First(&est, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Msg: "estimate not found"}
		}
		return nil, err
	}
	return &est, nil
}

// List returns estimates, optionally narrowed to one client.
func (s *EstimateService) List(clientID *uuid.UUID) ([]models.Estimate, error) {
	q := s.DB.Preload("Items").Order("issue_date DESC, created_at DESC")
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	var estimates []models.Estimate
	if err := q.Find(&estimates).Error; err != nil {
		return nil, err
	}
	return estimates, nil
}
