package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hr-pommala/sphuta-tms-freelancer/internal/models"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/service"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/util"
)

// EstimateHandler exposes client quote endpoints.
type EstimateHandler struct {
	Svc *service.EstimateService
}

func NewEstimateHandler(db *gorm.DB) *EstimateHandler {
	return &EstimateHandler{Svc: service.NewEstimateService(db)}
}

type estimateItemReq struct {
	Description string  `json:"description" binding:"required,max=255"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type createEstimateReq struct {
	ClientID     string            `json:"clientId" binding:"required"`
	IssueDate    string            `json:"issueDate" binding:"required"`
	ValidUntil   string            `json:"validUntil" binding:"required"`
	CurrencyCode string            `json:"currencyCode" binding:"required,len=3"`
	Notes        string            `json:"notes" binding:"omitempty,max=2000"`
	Items        []estimateItemReq `json:"items" binding:"required"`
}

type estimateItemResp struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
}

type estimateResp struct {
	ID           string             `json:"id"`
	ClientID     string             `json:"clientId"`
	IssueDate    string             `json:"issueDate"`
	ValidUntil   string             `json:"validUntil"`
	CurrencyCode string             `json:"currencyCode"`
	Notes        string             `json:"notes"`
	Items        []estimateItemResp `json:"items"`
}

func toEstimateResp(e *models.Estimate) estimateResp {
	items := make([]estimateItemResp, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, estimateItemResp{
			Description: it.Description,
			Quantity:    util.FormatCenti(it.QuantityCenti),
			UnitPrice:   util.FormatCenti(it.UnitPriceCent),
		})
	}
	return estimateResp{
		ID:           e.ID.String(),
		ClientID:     e.ClientID.String(),
		IssueDate:    util.FormatDate(e.IssueDate),
		ValidUntil:   util.FormatDate(e.ValidUntil),
		CurrencyCode: e.CurrencyCode,
		Notes:        e.Notes,
		Items:        items,
	}
}

func (h *EstimateHandler) Create(c *gin.Context) {
	var req createEstimateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid clientId")
		return
	}
	issueDate, err := util.ParseDate(req.IssueDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "issueDate must be YYYY-MM-DD")
		return
	}
	validUntil, err := util.ParseDate(req.ValidUntil)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "validUntil must be YYYY-MM-DD")
		return
	}

	in := service.CreateEstimateInput{
		ClientID:     clientID,
		IssueDate:    issueDate,
		ValidUntil:   validUntil,
		CurrencyCode: req.CurrencyCode,
		Notes:        req.Notes,
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, service.EstimateItemInput{
			Description:   it.Description,
			QuantityCenti: util.ToCenti(it.Quantity),
			UnitPriceCent: util.ToCenti(it.UnitPrice),
		})
	}

	est, err := h.Svc.Create(in)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, util.Response{"estimate": toEstimateResp(est)})
}

func (h *EstimateHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	est, err := h.Svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"estimate": toEstimateResp(est)})
}

func (h *EstimateHandler) List(c *gin.Context) {
	var clientID *uuid.UUID
	if s := c.Query("client_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid client_id")
			return
		}
		clientID = &id
	}

	estimates, err := h.Svc.List(clientID)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]estimateResp, 0, len(estimates))
	for i := range estimates {
		items = append(items, toEstimateResp(&estimates[i]))
	}
	util.Success(c, util.Response{"items": items, "total": len(items)})
}
