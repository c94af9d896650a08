package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sekolahdigital/lms-backend/internal/response"
	"github.com/sekolahdigital/lms-backend/internal/service"
)

// AnalyticsHandler serves the per-student and per-class analytics views.
type AnalyticsHandler struct {
	reportService *service.ReportService
}

func NewAnalyticsHandler(reportService *service.ReportService) *AnalyticsHandler {
	return &AnalyticsHandler{reportService: reportService}
}

// StudentScores godoc
// GET /api/analytics/student/:id/scores
// Returns the student's submissions with assignment titles and the
// average of graded scores, 0 when nothing graded yet.
func (h *AnalyticsHandler) StudentScores(c *gin.Context) {
	studentID, ok := paramID(c)
	if !ok {
		return
	}

	student, scores, average, err := h.reportService.StudentScores(c.Request.Context(), studentID)
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrNotStudent):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	case err != nil:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"student": student.Profile(),
		"scores":  scores,
		"average": average,
	})
}

// ClassAttendance godoc
// GET /api/analytics/class/:id/attendance
// Per-student totals and presence rate for one class.
func (h *AnalyticsHandler) ClassAttendance(c *gin.Context) {
	classID, ok := paramID(c)
	if !ok {
		return
	}

	rows, err := h.reportService.ClassAttendance(c.Request.Context(), classID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, rows)
}
