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

// AssignmentHandler handles the assignment → submission → grade workflow.
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
	mediaService      *service.MediaService
}

func NewAssignmentHandler(assignmentService *service.AssignmentService, mediaService *service.MediaService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		mediaService:      mediaService,
	}
}

// ListByClass godoc
// GET /api/classes/:id/assignments
// Returns a class's assignments newest due date first, with the posting
// teacher's name.
func (h *AssignmentHandler) ListByClass(c *gin.Context) {
	classID, ok := paramID(c)
	if !ok {
		return
	}

	out, err := h.assignmentService.ListByClass(c.Request.Context(), classID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if out == nil {
		out = []model.AssignmentWithTeacher{}
	}
	response.Success(c, http.StatusOK, out)
}

// Create godoc
// POST /api/classes/:id/assignments (teacher)
// Multipart form; the attachment is optional.
func (h *AssignmentHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)

	classID, ok := paramID(c)
	if !ok {
		return
	}

	var req model.CreateAssignmentRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	filePath := ""
	if file, header, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		filePath, err = h.mediaService.SaveUpload(file, header, "assignments")
		if err != nil {
			failUpload(c, err)
			return
		}
	}

	a, err := h.assignmentService.Create(c.Request.Context(), claims.UserID, classID, &req, filePath)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, a)
}

// Submit godoc
// POST /api/assignments/:id/submit (student)
// File is required. Resubmitting overwrites the stored file and
// submitted_at on the existing row.
func (h *AssignmentHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)

	assignmentID, ok := paramID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	filePath, err := h.mediaService.SaveUpload(file, header, "submissions")
	if err != nil {
		failUpload(c, err)
		return
	}

	sub, err := h.assignmentService.Submit(c.Request.Context(), assignmentID, claims.UserID, filePath)
	if errors.Is(err, service.ErrNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, sub)
}

// Grade godoc
// POST /api/submissions/:id/grade (teacher)
// Scores 0..100 with optional feedback; the score is mirrored into the
// submission's grade record. Re-grading overwrites both.
func (h *AssignmentHandler) Grade(c *gin.Context) {
	claims := middleware.GetClaims(c)

	submissionID, ok := paramID(c)
	if !ok {
		return
	}

	var req model.GradeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	sub, err := h.assignmentService.Grade(c.Request.Context(), submissionID, *req.Score, req.Feedback, claims.UserID)
	if errors.Is(err, service.ErrNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, sub)
}

// failUpload maps media service errors onto the wire taxonomy.
func failUpload(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFileTooLarge):
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
	case errors.Is(err, service.ErrUnsupportedFileType):
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation,
			map[string]string{"file": err.Error()})
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
