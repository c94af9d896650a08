package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sekolahdigital/lms-backend/internal/model"
	"github.com/sekolahdigital/lms-backend/internal/response"
	"github.com/sekolahdigital/lms-backend/internal/service"
)

// ReportHandler serves the admin reports and dashboard counters.
type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Attendance godoc
// GET /api/admin/reports/attendance?class=&from=&to=
// Groups attendance rows by student. All filters are optional; dates are
// YYYY-MM-DD.
func (h *ReportHandler) Attendance(c *gin.Context) {
	var filter model.AttendanceReportFilter

	if raw := c.Query("class"); raw != "" {
		classID, err := strconv.Atoi(raw)
		if err != nil || classID <= 0 {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		filter.ClassID = classID
	}

	var fields map[string]string
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			fields = map[string]string{"from": "must be a YYYY-MM-DD date"}
		}
		filter.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			fields = map[string]string{"to": "must be a YYYY-MM-DD date"}
		}
		filter.To = t
	}
	if fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	rows, err := h.reportService.AttendanceReport(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, rows)
}

// Grades godoc
// GET /api/admin/reports/grades
// Groups all grades by student with a per-grade detail list.
func (h *ReportHandler) Grades(c *gin.Context) {
	rows, err := h.reportService.GradeReport(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

// DashboardStats godoc
// GET /api/admin/dashboard/stats
func (h *ReportHandler) DashboardStats(c *gin.Context) {
	stats, err := h.reportService.DashboardStats(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
