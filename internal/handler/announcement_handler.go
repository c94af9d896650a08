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

// AnnouncementHandler handles school-wide notices.
type AnnouncementHandler struct {
	announcementService *service.AnnouncementService
}

func NewAnnouncementHandler(announcementService *service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// List godoc
// GET /api/announcements
// Returns only announcements whose visibility window covers now.
func (h *AnnouncementHandler) List(c *gin.Context) {
	out, err := h.announcementService.ListActive(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// Create godoc
// POST /api/announcements (teacher or admin)
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req model.CreateAnnouncementRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	a, err := h.announcementService.Create(c.Request.Context(), &req)
	if errors.Is(err, service.ErrInvalidWindow) {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation,
			map[string]string{"end_at": "end_at must be after start_at"})
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, a)
}

// Update godoc
// PUT /api/announcements/:id (admin)
func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req model.UpdateAnnouncementRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, fields)
		return
	}

	a, err := h.announcementService.Update(c.Request.Context(), id, &req)
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	case errors.Is(err, service.ErrInvalidWindow):
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation,
			map[string]string{"end_at": "end_at must be after start_at"})
		return
	case err != nil:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, a)
}

// Delete godoc
// DELETE /api/announcements/:id (admin)
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	err := h.announcementService.Delete(c.Request.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Announcement deleted."})
}
