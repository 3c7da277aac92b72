package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hr-pommala/sphuta-tms-freelancer/internal/service"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/util"
)

// TimeEntryHandler exposes single-entry commands.
type TimeEntryHandler struct {
	Svc *service.TimeEntryService
}

func NewTimeEntryHandler(db *gorm.DB) *TimeEntryHandler {
	return &TimeEntryHandler{Svc: service.NewTimeEntryService(db)}
}

type createEntryReq struct {
	TimesheetID string   `json:"timesheetId" binding:"required"`
	EntryDate   string   `json:"entryDate" binding:"required"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
	Hours       float64  `json:"hours"`
	Rate        *float64 `json:"rate"`
}

// Create adds one entry to a mutable timesheet.
func (h *TimeEntryHandler) Create(c *gin.Context) {
	var req createEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	timesheetID, err := uuid.Parse(req.TimesheetID)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid timesheetId")
		return
	}
	d, err := util.ParseDate(req.EntryDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "entryDate must be YYYY-MM-DD")
		return
	}

	in := service.CreateEntryInput{
		TimesheetID: timesheetID,
		EntryDate:   d,
		Description: req.Description,
		HoursCenti:  util.ToCenti(req.Hours),
	}
	if req.Rate != nil {
		rc := util.ToCenti(*req.Rate)
		in.RateCent = &rc
	}

	e, err := h.Svc.Create(in)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, util.Response{"entry": toEntryResp(e)})
}

// Delete removes an entry unless it is already invoiced.
func (h *TimeEntryHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Uninvoiced lists a client's billable entries.
func (h *TimeEntryHandler) Uninvoiced(c *gin.Context) {
	clientID, err := uuid.Parse(c.Query("client_id"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid client_id")
		return
	}

	entries, err := h.Svc.Uninvoiced(clientID)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]entryResp, 0, len(entries))
	for i := range entries {
		items = append(items, toEntryResp(&entries[i]))
	}
	util.Success(c, util.Response{"items": items, "total": len(items)})
}
