package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sekolahdigital/lms-backend/internal/middleware"
	"github.com/sekolahdigital/lms-backend/internal/model"
	"github.com/sekolahdigital/lms-backend/internal/response"
	"github.com/sekolahdigital/lms-backend/internal/service"
	"github.com/sekolahdigital/lms-backend/internal/validator"
)

// AttendanceHandler handles self check-in and the personal history view.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// Checkin godoc
// POST /api/attendance/checkin
// Records the token owner present for today in a class. Repeating the
// call on the same day updates the existing row.
func (h *AttendanceHandler) Checkin(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CheckinRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	att, err := h.attendanceService.Checkin(c.Request.Context(), claims.UserID, req.ClassID)
	if errors.Is(err, service.ErrNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, att)
}

// My godoc
// GET /api/attendance/my
// Returns the token owner's attendance rows, newest first, with a stats
// summary block.
func (h *AttendanceHandler) My(c *gin.Context) {
	claims := middleware.GetClaims(c)

	rows, stats, err := h.attendanceService.MyAttendance(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"attendances": rows,
		"stats":       stats,
	})
}
