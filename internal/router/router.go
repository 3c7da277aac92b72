package router

import (
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/config"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/handler"
	"github.com/hr-pommala/sphuta-tms-freelancer/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and registers all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// ====== API ======
	api := r.Group("/api/v1")
	api.Use(middleware.RequestLog(db))

	timesheetHandler := handler.NewTimesheetHandler(db, cfg.App)
	api.POST("/timesheets", timesheetHandler.Create)
	api.GET("/timesheets", timesheetHandler.List)
	api.GET("/timesheets/:id", timesheetHandler.Get)
	api.PUT("/timesheets/:id/entries", timesheetHandler.BulkUpsert)
	api.POST("/timesheets/:id/submit", timesheetHandler.Submit)
	api.PATCH("/timesheets/:id/lock", timesheetHandler.Lock)

	entryHandler := handler.NewTimeEntryHandler(db)
	api.POST("/time-entries", entryHandler.Create)
	api.DELETE("/time-entries/:id", entryHandler.Delete)
	api.GET("/time-entries/uninvoiced", entryHandler.Uninvoiced)

	clientHandler := handler.NewClientHandler(db, cfg.App)
	api.GET("/clients", clientHandler.List)
	api.POST("/clients", clientHandler.Create)
	api.GET("/clients/:id", clientHandler.Get)
	api.PUT("/clients/:id", clientHandler.Replace)
	api.PATCH("/clients/:id", clientHandler.Patch)
	api.DELETE("/clients/:id", clientHandler.Delete)
	api.POST("/clients/:id/archive", clientHandler.Archive)
	api.POST("/clients/:id/unarchive", clientHandler.Unarchive)

	projectHandler := handler.NewProjectHandler(db, cfg.App)
	api.GET("/projects", projectHandler.List)
	api.POST("/projects", projectHandler.Create)
	api.GET("/projects/:id", projectHandler.Get)
	api.PUT("/projects/:id", projectHandler.Update)
	api.DELETE("/projects/:id", projectHandler.Delete)
	api.POST("/projects/:id/archive", projectHandler.Archive)
	api.POST("/projects/:id/unarchive", projectHandler.Unarchive)

	invoiceHandler := handler.NewInvoiceHandler(db)
	api.POST("/invoices", invoiceHandler.Create)
	api.GET("/invoices", invoiceHandler.List)
	api.GET("/invoices/:id", invoiceHandler.Get)
	api.POST("/invoices/:id/send", invoiceHandler.Send)

	estimateHandler := handler.NewEstimateHandler(db)
	api.POST("/estimates", estimateHandler.Create)
	api.GET("/estimates", estimateHandler.List)
	api.GET("/estimates/:id", estimateHandler.Get)

	exportHandler := handler.NewExportHandler(db)
	api.GET("/clients/export", exportHandler.ClientsCSV)
	api.GET("/timesheets/:id/export.xlsx", exportHandler.TimesheetXLSX)

	return r
}
