package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hr-pommala/sphuta-tms-freelancer/internal/config"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/models"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/service"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/util"
)

// TimesheetHandler exposes the timesheet lifecycle and bulk reconciliation.
type TimesheetHandler struct {
	Svc *service.TimesheetService
	App config.AppSubConfig
}

func NewTimesheetHandler(db *gorm.DB, app config.AppSubConfig) *TimesheetHandler {
	return &TimesheetHandler{Svc: service.NewTimesheetService(db), App: app}
}

// ---------- request/response shapes ----------

type createTimesheetReq struct {
	ProjectID   string `json:"projectId" binding:"required"`
	PeriodStart string `json:"periodStart" binding:"required"`
	PeriodEnd   string `json:"periodEnd" binding:"required"`
}

type entryRowReq struct {
	EntryDate   string   `json:"entryDate" binding:"required"`
	Description *string  `json:"description" binding:"omitempty,max=255"`
	Hours       float64  `json:"hours"`
	Rate        *float64 `json:"rate"`
}

type bulkUpsertReq struct {
	Entries []entryRowReq `json:"entries" binding:"required"`
}

type entryResp struct {
	ID          string  `json:"id"`
	TimesheetID string  `json:"timesheetId"`
	EntryDate   string  `json:"entryDate"`
	Description *string `json:"description"`
	Hours       string  `json:"hours"`
	Rate        *string `json:"rate"`
	Cost        *string `json:"cost"`
}

type dailyTotalResp struct {
	Date  string `json:"date"`
	Hours string `json:"hours"`
}

type timesheetDetailResp struct {
	ID          string           `json:"id"`
	ProjectID   string           `json:"projectId"`
	PeriodStart string           `json:"periodStart"`
	PeriodEnd   string           `json:"periodEnd"`
	Status      string           `json:"status"`
	Entries     []entryResp      `json:"entries"`
	DailyTotals []dailyTotalResp `json:"dailyTotals"`
	TotalHours  string           `json:"totalHours"`
}

type timesheetSummaryResp struct {
	ID          string `json:"id"`
	ProjectID   string `json:"projectId"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd"`
	Status      string `json:"status"`
	TotalHours  string `json:"totalHours"`
}

func toEntryResp(e *models.TimeEntry) entryResp {
	r := entryResp{
		ID:          e.ID.String(),
		TimesheetID: e.TimesheetID.String(),
		EntryDate:   util.FormatDate(e.EntryDate),
		Description: e.Description,
		Hours:       util.FormatCenti(e.HoursCenti),
	}
	if e.RateCent != nil {
		s := util.FormatCenti(*e.RateCent)
		r.Rate = &s
	}
	if e.CostCent != nil {
		s := util.FormatCenti(*e.CostCent)
		r.Cost = &s
	}
	return r
}

func toDetailResp(t *models.Timesheet) timesheetDetailResp {
	entries := make([]entryResp, 0, len(t.Entries))
	for i := range t.Entries {
		entries = append(entries, toEntryResp(&t.Entries[i]))
	}

	daily := service.DailyTotals(t.Entries)
	dailyResp := make([]dailyTotalResp, 0, len(daily))
	for _, d := range daily {
		dailyResp = append(dailyResp, dailyTotalResp{
			Date:  util.FormatDate(d.Date),
			Hours: util.FormatCenti(d.HoursCenti),
		})
	}

	return timesheetDetailResp{
		ID:          t.ID.String(),
		ProjectID:   t.ProjectID.String(),
		PeriodStart: util.FormatDate(t.PeriodStart),
		PeriodEnd:   util.FormatDate(t.PeriodEnd),
		Status:      t.Status,
		Entries:     entries,
		DailyTotals: dailyResp,
		TotalHours:  util.FormatCenti(service.TotalHoursCenti(t.Entries)),
	}
}

func toSummaryResp(t *models.Timesheet) timesheetSummaryResp {
	return timesheetSummaryResp{
		ID:          t.ID.String(),
		ProjectID:   t.ProjectID.String(),
		PeriodStart: util.FormatDate(t.PeriodStart),
		PeriodEnd:   util.FormatDate(t.PeriodEnd),
		Status:      t.Status,
		TotalHours:  util.FormatCenti(service.TotalHoursCenti(t.Entries)),
	}
}

// ---------- handlers ----------

// Create opens a new DRAFT timesheet.
func (h *TimesheetHandler) Create(c *gin.Context) {
	var req createTimesheetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid projectId")
		return
	}
	start, err := util.ParseDate(req.PeriodStart)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "periodStart must be YYYY-MM-DD")
		return
	}
	end, err := util.ParseDate(req.PeriodEnd)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "periodEnd must be YYYY-MM-DD")
		return
	}

	t, err := h.Svc.Create(projectID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Created(c, util.Response{"timesheet": toDetailResp(t)})
}

// Get returns the full detail: entries, daily totals, total hours.
func (h *TimesheetHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	t, err := h.Svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"timesheet": toDetailResp(t)})
}

// List returns paged summaries with optional filters.
func (h *TimesheetHandler) List(c *gin.Context) {
	var f service.TimesheetFilters

	if s := c.Query("project_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid project_id")
			return
		}
		f.ProjectID = &id
	}
	if s := c.Query("status"); s != "" {
		if s != models.StatusDraft && s != models.StatusApproved && s != models.StatusLocked {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid status")
			return
		}
		f.Status = s
	}
	if s := c.Query("from"); s != "" {
		d, err := util.ParseDate(s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "from must be YYYY-MM-DD")
			return
		}
		f.From = &d
	}
	if s := c.Query("to"); s != "" {
		d, err := util.ParseDate(s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "to must be YYYY-MM-DD")
			return
		}
		f.To = &d
	}

	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	if f.Page < 0 {
		f.Page = 0
	}
	f.Size, _ = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(h.App.PageSize)))
	if f.Size <= 0 || f.Size > h.App.MaxPageSize {
		f.Size = h.App.PageSize
	}

	sheets, total, err := h.Svc.List(f)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]timesheetSummaryResp, 0, len(sheets))
	for i := range sheets {
		items = append(items, toSummaryResp(&sheets[i]))
	}
	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  f.Page,
		"size":  f.Size,
	})
}

// BulkUpsert reconciles a batch of entry rows against the timesheet.
func (h *TimesheetHandler) BulkUpsert(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bulkUpsertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	rows := make([]service.EntryRow, 0, len(req.Entries))
	for _, r := range req.Entries {
		d, err := util.ParseDate(r.EntryDate)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "entryDate must be YYYY-MM-DD")
			return
		}
		row := service.EntryRow{
			EntryDate:   d,
			Description: r.Description,
			HoursCenti:  util.ToCenti(r.Hours),
		}
		if r.Rate != nil {
			rc := util.ToCenti(*r.Rate)
			row.RateCent = &rc
		}
		rows = append(rows, row)
	}

	res, err := h.Svc.BulkUpsert(id, rows)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{
		"inserted":   res.Inserted,
		"updated":    res.Updated,
		"deleted":    res.Deleted,
		"totalHours": util.FormatCenti(res.TotalHoursCenti),
	})
}

// Submit approves the timesheet.
func (h *TimesheetHandler) Submit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	t, err := h.Svc.Submit(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"timesheet": toDetailResp(t)})
}

// Lock makes the timesheet immutable.
func (h *TimesheetHandler) Lock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	t, err := h.Svc.Lock(id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"timesheet": toDetailResp(t)})
}
