package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sekolahdigital/lms-backend/internal/model"
	"github.com/sekolahdigital/lms-backend/internal/response"
	"github.com/sekolahdigital/lms-backend/internal/service"
	"github.com/sekolahdigital/lms-backend/internal/validator"
)

// AdminClassHandler handles the admin class management endpoints.
type AdminClassHandler struct {
	classService *service.ClassService
}

func NewAdminClassHandler(classService *service.ClassService) *AdminClassHandler {
	return &AdminClassHandler{classService: classService}
}

// List godoc
// GET /api/admin/classes
// Includes each class's subject names and count.
func (h *AdminClassHandler) List(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, classes)
}

// Create godoc
// POST /api/admin/classes
func (h *AdminClassHandler) Create(c *gin.Context) {
	var req model.CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, class)
}

// Update godoc
// PUT /api/admin/classes/:id
func (h *AdminClassHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req model.UpdateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.Update(c.Request.Context(), id, &req)
	if errors.Is(err, service.ErrNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, class)
}

// Delete godoc
// DELETE /api/admin/classes/:id
func (h *AdminClassHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	err := h.classService.Delete(c.Request.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Class deleted."})
}

// EnrollRequest is the payload for adding a member to a class.
type EnrollRequest struct {
	UserID      int               `json:"user_id" binding:"required"`
	RoleInClass model.RoleInClass `json:"role_in_class" binding:"required,oneof=teacher student"`
}

// Enroll godoc
// POST /api/admin/classes/:id/members
// Adds (or re-tags) a user's membership in a class.
func (h *AdminClassHandler) Enroll(c *gin.Context) {
	classID, ok := paramID(c)
	if !ok {
		return
	}

	var req EnrollRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	if err := h.classService.Enroll(c.Request.Context(), classID, req.UserID, req.RoleInClass); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Member enrolled."})
}
