package controllers

import (
	"fmt"
	"net/http"
	"time"

	"hostel-backend/middleware"
	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportSvc *services.ReportService
}

func NewReportController(svc *services.ReportService) *ReportController {
	return &ReportController{ReportSvc: svc}
}

// AdminDashboard (GET /api/admin/dashboard)
func (ctrl *ReportController) AdminDashboard(c *gin.Context) {
	stats, err := ctrl.ReportSvc.Dashboard()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

// OccupancyReport (GET /api/admin/reports/occupancy)
func (ctrl *ReportController) OccupancyReport(c *gin.Context) {
	report, err := ctrl.ReportSvc.Occupancy()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}

// StudentDashboard (GET /api/student/dashboard)
func (ctrl *ReportController) StudentDashboard(c *gin.Context) {
	dash, err := ctrl.ReportSvc.DashboardForStudent(middleware.ActorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, dash)
}

func (ctrl *ReportController) export(c *gin.Context, name string, write func() error) {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().UTC().Format("20060102"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := write(); err != nil {
		// Headers may be out already; log-and-abort is the best we can do.
		c.Status(http.StatusInternalServerError)
		_ = c.Error(err)
	}
}

// ExportStudents (GET /api/admin/exports/students.csv)
func (ctrl *ReportController) ExportStudents(c *gin.Context) {
	ctrl.export(c, "students", func() error { return ctrl.ReportSvc.ExportStudentsCSV(c.Writer) })
}

// ExportFees (GET /api/admin/exports/fees.csv)
func (ctrl *ReportController) ExportFees(c *gin.Context) {
	ctrl.export(c, "fees", func() error { return ctrl.ReportSvc.ExportFeesCSV(c.Writer) })
}

// ExportAllocations (GET /api/admin/exports/allocations.csv)
func (ctrl *ReportController) ExportAllocations(c *gin.Context) {
	ctrl.export(c, "allocations", func() error { return ctrl.ReportSvc.ExportAllocationsCSV(c.Writer) })
}

// ExportRooms (GET /api/admin/exports/rooms.csv)
func (ctrl *ReportController) ExportRooms(c *gin.Context) {
	ctrl.export(c, "rooms", func() error { return ctrl.ReportSvc.ExportRoomsCSV(c.Writer) })
}
