package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sekolahdigital/lms-backend/internal/response"
	"github.com/sekolahdigital/lms-backend/internal/service"
)

// ExportHandler streams admin CSV exports as file downloads.
type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Users godoc
// GET /api/admin/export/users
func (h *ExportHandler) Users(c *gin.Context) {
	h.send(c, "users.csv", h.exportService.Users)
}

// Classes godoc
// GET /api/admin/export/classes
func (h *ExportHandler) Classes(c *gin.Context) {
	h.send(c, "classes.csv", h.exportService.Classes)
}

// Attendance godoc
// GET /api/admin/export/attendance
func (h *ExportHandler) Attendance(c *gin.Context) {
	h.send(c, "attendance.csv", h.exportService.Attendance)
}

// Grades godoc
// GET /api/admin/export/grades
func (h *ExportHandler) Grades(c *gin.Context) {
	h.send(c, "grades.csv", h.exportService.Grades)
}

func (h *ExportHandler) send(c *gin.Context, filename string, build func(context.Context) ([]byte, error)) {
	data, err := build(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
