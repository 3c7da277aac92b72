package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hr-pommala/sphuta-tms-freelancer/internal/config"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/models"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/util"
)

// ProjectHandler serves project CRUD. A project name is unique per client.
type ProjectHandler struct {
	DB  *gorm.DB
	App config.AppSubConfig
}

func NewProjectHandler(db *gorm.DB, app config.AppSubConfig) *ProjectHandler {
	return &ProjectHandler{DB: db, App: app}
}

type projectReq struct {
	ClientID    string   `json:"clientId" binding:"required"`
	Name        string   `json:"name" binding:"required,max=255"`
	Code        string   `json:"code" binding:"omitempty,max=100"`
	HourlyRate  float64  `json:"hourlyRate"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Description string   `json:"description" binding:"omitempty,max=2000"`
}

type projectResp struct {
	ID          string  `json:"id"`
	ClientID    string  `json:"clientId"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	HourlyRate  string  `json:"hourlyRate"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Description string  `json:"description"`
	Active      bool    `json:"active"`
	Version     int64   `json:"version"`
}

func toProjectResp(p *models.Project) projectResp {
	r := projectResp{
		ID:          p.ID.String(),
		ClientID:    p.ClientID.String(),
		Name:        p.Name,
		Code:        p.Code,
		HourlyRate:  util.FormatCenti(p.HourlyRateCent),
		Description: p.Description,
		Active:      p.Active,
		Version:     p.Version,
	}
	if p.StartDate != nil {
		s := util.FormatDate(*p.StartDate)
		r.StartDate = &s
	}
	if p.EndDate != nil {
		s := util.FormatDate(*p.EndDate)
		r.EndDate = &s
	}
	return r
}

// parseProjectDates validates the optional start/end pair.
func parseProjectDates(startStr, endStr string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if startStr != "" {
		d, err := util.ParseDate(startStr)
		if err != nil {
			return nil, nil, errors.New("startDate must be YYYY-MM-DD")
		}
		start = &d
	}
	if endStr != "" {
		d, err := util.ParseDate(endStr)
		if err != nil {
			return nil, nil, errors.New("endDate must be YYYY-MM-DD")
		}
		end = &d
	}
	if start != nil && end != nil {
		if err := util.ValidatePeriod(*start, *end); err != nil {
			return nil, nil, errors.New("endDate must be >= startDate")
		}
	}
	return start, end, nil
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid clientId")
		return
	}
	if req.HourlyRate < 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "hourlyRate must be >= 0")
		return
	}
	start, end, err := parseProjectDates(req.StartDate, req.EndDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var client models.Client
	if err := h.DB.First(&client, "id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "client not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	name := strings.TrimSpace(req.Name)
	var dup int64
	if err := h.DB.Model(&models.Project{}).
		Where("client_id = ? AND name = ?", clientID, name).
		Count(&dup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if dup > 0 {
		util.Error(c, http.StatusConflict, util.CodeConflict, "project name already exists for client")
		return
	}

	p := models.Project{
		ClientID:       clientID,
		Name:           name,
		Code:           req.Code,
		HourlyRateCent: util.ToCenti(req.HourlyRate),
		StartDate:      start,
		EndDate:        end,
		Description:    req.Description,
		Active:         true,
	}
	if err := h.DB.Create(&p).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save failed")
		return
	}
	util.Created(c, util.Response{"project": toProjectResp(&p)})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var p models.Project
	if err := h.DB.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "project not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}
	util.Success(c, util.Response{"project": toProjectResp(&p)})
}

// Update replaces the editable fields and bumps the version counter.
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req projectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if req.HourlyRate < 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "hourlyRate must be >= 0")
		return
	}
	start, end, err := parseProjectDates(req.StartDate, req.EndDate)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var p models.Project
	if err := h.DB.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "project not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	name := strings.TrimSpace(req.Name)
	var dup int64
	if err := h.DB.Model(&models.Project{}).
		Where("client_id = ? AND name = ? AND id <> ?", p.ClientID, name, p.ID).
		Count(&dup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if dup > 0 {
		util.Error(c, http.StatusConflict, util.CodeConflict, "project name already exists for client")
		return
	}

	p.Name = name
	p.Code = req.Code
	p.HourlyRateCent = util.ToCenti(req.HourlyRate)
	p.StartDate = start
	p.EndDate = end
	p.Description = req.Description
	p.Version++
	if err := h.DB.Save(&p).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save failed")
		return
	}
	util.Success(c, util.Response{"project": toProjectResp(&p)})
}

// Delete removes a project that has no timesheets.
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var p models.Project
	if err := h.DB.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "project not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	var sheets int64
	if err := h.DB.Model(&models.Timesheet{}).Where("project_id = ?", id).Count(&sheets).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if sheets > 0 {
		util.Error(c, http.StatusConflict, util.CodeConflict, "project still has timesheets")
		return
	}

	if err := h.DB.Delete(&p).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) Archive(c *gin.Context) {
	h.setActive(c, false)
}

func (h *ProjectHandler) Unarchive(c *gin.Context) {
	h.setActive(c, true)
}

func (h *ProjectHandler) setActive(c *gin.Context, active bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var p models.Project
	if err := h.DB.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "project not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	p.Active = active
	p.Version++
	if err := h.DB.Save(&p).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save failed")
		return
	}
	util.Success(c, util.Response{"project": toProjectResp(&p)})
}

// List returns projects filtered by active flag, client and name search.
func (h *ProjectHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	if page < 0 {
		page = 0
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(h.App.PageSize)))
	if size <= 0 || size > h.App.MaxPageSize {
		size = h.App.PageSize
	}

	base := h.DB.Model(&models.Project{})
	switch c.DefaultQuery("active", "true") {
	case "true":
		base = base.Where("active = ?", true)
	case "false":
		base = base.Where("active = ?", false)
	}
	if s := c.Query("client_id"); s != "" {
		clientID, err := uuid.Parse(s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid client_id")
			return
		}
		base = base.Where("client_id = ?", clientID)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		base = base.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	var projects []models.Project
	if err := base.Session(&gorm.Session{}).
		Order("name ASC").
		Limit(size).
		Offset(page * size).
		Find(&projects).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]projectResp, 0, len(projects))
	for i := range projects {
		items = append(items, toProjectResp(&projects[i]))
	}
	util.Success(c, util.Response{"items": items, "total": total, "page": page, "size": size})
}
