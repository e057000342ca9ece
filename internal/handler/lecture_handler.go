package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luct-faculty/reporting-api/internal/service"
	appErrors "github.com/luct-faculty/reporting-api/pkg/errors"
	"github.com/luct-faculty/reporting-api/pkg/response"
)

// LectureHandler exposes lecture assignment endpoints.
type LectureHandler struct {
	service *service.LectureService
}

// NewLectureHandler constructs a lecture handler.
func NewLectureHandler(svc *service.LectureService) *LectureHandler {
	return &LectureHandler{service: svc}
}

// List godoc
// @Summary List lectures
// @Tags Lectures
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /lectures [get]
func (h *LectureHandler) List(c *gin.Context) {
	lectures, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lectures, nil)
}

// Assign godoc
// @Summary Assign a lecture from a report
// @Description Matches the report course code against the catalogue and materializes a lecture
// @Tags Lectures
// @Accept json
// @Produce json
// @Param payload body service.AssignLectureRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lectures [post]
func (h *LectureHandler) Assign(c *gin.Context) {
	var req service.AssignLectureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "report_id is required"))
		return
	}

	lecture, err := h.service.Assign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lecture)
}

// Update godoc
// @Summary Reschedule a lecture
// @Tags Lectures
// @Accept json
// @Produce json
// @Param id path int true "Lecture ID"
// @Param payload body service.UpdateLectureRequest true "Reschedule payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lectures/{id} [put]
func (h *LectureHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req service.UpdateLectureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "date_of_lecture is required"))
		return
	}

	if err := h.service.UpdateDate(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "lecture updated"}, nil)
}

// Delete godoc
// @Summary Delete a lecture
// @Tags Lectures
// @Param id path int true "Lecture ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lectures/{id} [delete]
func (h *LectureHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AvailableReports godoc
// @Summary List reports eligible for lecture assignment
// @Tags Lectures
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /lectures/available-reports [get]
func (h *LectureHandler) AvailableReports(c *gin.Context) {
	reports, err := h.service.AvailableReports(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, nil)
}
