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

// InvoiceHandler exposes invoice creation and lifecycle.
type InvoiceHandler struct {
	Svc *service.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB) *InvoiceHandler {
	return &InvoiceHandler{Svc: service.NewInvoiceService(db)}
}

type createInvoiceReq struct {
	ClientID     string   `json:"clientId" binding:"required"`
	IssueDate    string   `json:"issueDate" binding:"required"`
	DueDate      string   `json:"dueDate" binding:"required"`
	CurrencyCode string   `json:"currencyCode" binding:"required,len=3"`
	Notes        string   `json:"notes" binding:"omitempty,max=2000"`
	TimeEntryIDs []string `json:"timeEntryIds" binding:"required"`
}

type invoiceResp struct {
	ID           string `json:"id"`
	ClientID     string `json:"clientId"`
	IssueDate    string `json:"issueDate"`
	DueDate      string `json:"dueDate"`
	CurrencyCode string `json:"currencyCode"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
}

func toInvoiceResp(inv *models.Invoice) invoiceResp {
	return invoiceResp{
		ID:           inv.ID.String(),
		ClientID:     inv.ClientID.String(),
		IssueDate:    util.FormatDate(inv.IssueDate),
		DueDate:      util.FormatDate(inv.DueDate),
		CurrencyCode: inv.CurrencyCode,
		Status:       inv.Status,
		Notes:        inv.Notes,
	}
}

// Create builds a DRAFT invoice from uninvoiced time entries.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req createInvoiceReq
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
	dueDate, err := util.ParseDate(req.DueDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "dueDate must be YYYY-MM-DD")
		return
	}

	entryIDs := make([]uuid.UUID, 0, len(req.TimeEntryIDs))
	for _, s := range req.TimeEntryIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid timeEntryIds")
			return
		}
		entryIDs = append(entryIDs, id)
	}

	inv, err := h.Svc.CreateFromEntries(service.CreateInvoiceInput{
		ClientID:     clientID,
		IssueDate:    issueDate,
		DueDate:      dueDate,
		CurrencyCode: req.CurrencyCode,
		Notes:        req.Notes,
		TimeEntryIDs: entryIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, util.Response{"invoice": toInvoiceResp(inv)})
}

// Send moves the invoice to SENT.
func (h *InvoiceHandler) Send(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	inv, err := h.Svc.Send(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"invoice": toInvoiceResp(inv)})
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	inv, err := h.Svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"invoice": toInvoiceResp(inv)})
}

func (h *InvoiceHandler) List(c *gin.Context) {
	var clientID *uuid.UUID
	if s := c.Query("client_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid client_id")
			return
		}
		clientID = &id
	}

	invoices, err := h.Svc.List(clientID)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]invoiceResp, 0, len(invoices))
	for i := range invoices {
		items = append(items, toInvoiceResp(&invoices[i]))
	}
	util.Success(c, util.Response{"items": items, "total": len(items)})
}
