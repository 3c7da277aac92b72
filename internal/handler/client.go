package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hr-pommala/sphuta-tms-freelancer/internal/config"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/models"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/util"
)

// ClientHandler serves plain client CRUD straight against the store.
type ClientHandler struct {
	DB  *gorm.DB
	App config.AppSubConfig
}

func NewClientHandler(db *gorm.DB, app config.AppSubConfig) *ClientHandler {
	return &ClientHandler{DB: db, App: app}
}

type clientReq struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"omitempty,max=255"`
	Notes string `json:"notes" binding:"omitempty,max=2000"`
}

type clientPatchReq struct {
	Name  *string `json:"name" binding:"omitempty,max=255"`
	Email *string `json:"email" binding:"omitempty,max=255"`
	Notes *string `json:"notes" binding:"omitempty,max=2000"`
}

type clientResp struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Notes  string `json:"notes"`
	Active bool   `json:"active"`
}

func toClientResp(cl *models.Client) clientResp {
	return clientResp{
		ID:     cl.ID.String(),
		Name:   cl.Name,
		Email:  cl.Email,
		Notes:  cl.Notes,
		Active: cl.Active,
	}
}

// List returns clients with optional name search and active filter.
func (h *ClientHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	if page < 0 {
		page = 0
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(h.App.PageSize)))
	if size <= 0 || size > h.App.MaxPageSize {
		size = h.App.PageSize
	}

	base := h.DB.Model(&models.Client{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		base = base.Where("name LIKE ?", "%"+search+"%")
	}
	switch c.DefaultQuery("active", "all") {
	case "true":
		base = base.Where("active = ?", true)
	case "false":
		base = base.Where("active = ?", false)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	var clients []models.Client
	if err := base.Session(&gorm.Session{}).
		Order("name ASC").
		Limit(size).
		Offset(page * size).
		Find(&clients).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	items := make([]clientResp, 0, len(clients))
	for i := range clients {
		items = append(items, toClientResp(&clients[i]))
	}
	util.Success(c, util.Response{"items": items, "total": total, "page": page, "size": size})
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var cl models.Client
	if err := h.DB.First(&cl, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "client not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}
	util.Success(c, util.Response{"client": toClientResp(&cl)})
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req clientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	cl := models.Client{
		Name:   strings.TrimSpace(req.Name),
		Email:  req.Email,
		Notes:  req.Notes,
		Active: true,
	}
	if cl.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name must not be empty")
		return
	}
	if err := h.DB.Create(&cl).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save failed")
		return
	}
	util.Created(c, util.Response{"client": toClientResp(&cl)})
}

// Replace overwrites all editable fields (PUT semantics).
func (h *ClientHandler) Replace(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req clientReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var cl models.Client
	if err := h.DB.First(&cl, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "client not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	cl.Name = strings.TrimSpace(req.Name)
	cl.Email = req.Email
	cl.Notes = req.Notes
	if err := h.DB.Save(&cl).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save failed")
		return
	}
	util.Success(c, util.Response{"client": toClientResp(&cl)})
}

// Patch updates only the provided fields.
func (h *ClientHandler) Patch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req clientPatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var cl models.Client
	if err := h.DB.First(&cl, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "client not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	if req.Name != nil {
		cl.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		cl.Email = *req.Email
	}
	if req.Notes != nil {
		cl.Notes = *req.Notes
	}
	if err := h.DB.Save(&cl).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save failed")
		return
	}
	util.Success(c, util.Response{"client": toClientResp(&cl)})
}

// Delete removes a client that has no projects.
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var cl models.Client
	if err := h.DB.First(&cl, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "client not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	var projects int64
	if err := h.DB.Model(&models.Project{}).Where("client_id = ?", id).Count(&projects).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}
	if projects > 0 {
		util.Error(c, http.StatusConflict, util.CodeConflict, "client still has projects")
		return
	}

	if err := h.DB.Delete(&cl).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// Archive flips the soft active flag.
func (h *ClientHandler) Archive(c *gin.Context) {
	h.setActive(c, false)
}

func (h *ClientHandler) Unarchive(c *gin.Context) {
	h.setActive(c, true)
}

func (h *ClientHandler) setActive(c *gin.Context, active bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var cl models.Client
	if err := h.DB.First(&cl, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "client not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	cl.Active = active
	if err := h.DB.Save(&cl).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save failed")
		return
	}
	util.Success(c, util.Response{"client": toClientResp(&cl)})
}
