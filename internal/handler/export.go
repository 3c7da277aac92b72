package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/hr-pommala/sphuta-tms-freelancer/internal/models"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/service"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/util"
)

// ExportHandler streams clients as CSV and timesheets as XLSX workbooks.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

// ClientsCSV exports the client list. The active query parameter narrows
// the export: all (default), true, false.
func (h *ExportHandler) ClientsCSV(c *gin.Context) {
	base := h.DB.Model(&models.Client{})
	switch c.DefaultQuery("active", "all") {
	case "true":
		base = base.Where("active = ?", true)
	case "false":
		base = base.Where("active = ?", false)
	}

	var clients []models.Client
	if err := base.Order("name ASC").Find(&clients).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"clients_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"id", "name", "email", "active", "notes"})
	for i := range clients {
		cl := &clients[i]
		active := "false"
		if cl.Active {
			active = "true"
		}
		writer.Write([]string{
			cl.ID.String(),
			cl.Name,
			cl.Email,
			active,
			cl.Notes,
		})
	}
}

// TimesheetXLSX exports one timesheet's entries and daily totals.
func (h *ExportHandler) TimesheetXLSX(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var t models.Timesheet
	if err := h.DB.Preload("Entries").First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "timesheet not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "query failed")
		}
		return
	}

	f := excelize.NewFile()
	sheetName := "Entries"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetActiveSheet(index)

	headers := []string{"Date", "Description", "Hours", "Rate", "Cost"}
	for i, hd := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, hd)
	}

	for idx := range t.Entries {
		e := &t.Entries[idx]
		row := idx + 2

		desc := ""
		if e.Description != nil {
			desc = *e.Description
		}
		rate := ""
		if e.RateCent != nil {
			rate = util.FormatCenti(*e.RateCent)
		}
		cost := ""
		if e.CostCent != nil {
			cost = util.FormatCenti(*e.CostCent)
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), util.FormatDate(e.EntryDate))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), desc)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), util.FormatCenti(e.HoursCenti))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), rate)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), cost)
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "E", 10)

	// Second sheet: per-day totals plus the overall sum.
	totalsSheet := "Daily Totals"
	if _, err := f.NewSheet(totalsSheet); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create sheet failed")
		return
	}
	f.SetCellValue(totalsSheet, "A1", "Date")
	f.SetCellValue(totalsSheet, "B1", "Hours")

	daily := service.DailyTotals(t.Entries)
	for i, d := range daily {
		row := i + 2
		f.SetCellValue(totalsSheet, fmt.Sprintf("A%d", row), util.FormatDate(d.Date))
		f.SetCellValue(totalsSheet, fmt.Sprintf("B%d", row), util.FormatCenti(d.HoursCenti))
	}
	f.SetCellValue(totalsSheet, fmt.Sprintf("A%d", len(daily)+2), "Total")
	f.SetCellValue(totalsSheet, fmt.Sprintf("B%d", len(daily)+2),
		util.FormatCenti(service.TotalHoursCenti(t.Entries)))

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"timesheet_%s.xlsx\"",
		util.FormatDate(t.PeriodStart)))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
