package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luct-faculty/reporting-api/internal/models"
	"github.com/luct-faculty/reporting-api/internal/service"
	appErrors "github.com/luct-faculty/reporting-api/pkg/errors"
	"github.com/luct-faculty/reporting-api/pkg/response"
)

// ReportHandler exposes the report endpoints. Every read is shaped by
// the caller's role before it leaves the service.
type ReportHandler struct {
	service *service.ReportService
	archive *service.ExportArchiveService
}

// NewReportHandler constructs a report handler. The archive may be nil
// when the export archive is disabled.
func NewReportHandler(svc *service.ReportService, archive *service.ExportArchiveService) *ReportHandler {
	return &ReportHandler{service: svc, archive: archive}
}

// List godoc
// @Summary List reports
// @Description Role-shaped report listing with optional name filter
// @Tags Reports
// @Produce json
// @Param q query string false "Course or lecturer name filter"
// @Success 200 {object} response.Envelope
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	filter := models.ReportFilter{Search: strings.TrimSpace(c.Query("q"))}
	reports, err := h.service.List(c.Request.Context(), claims.Role, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, nil)
}

// ListFeedback godoc
// @Summary List reports with feedback
// @Description Reviewer projection with sanitized feedback
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/prl-feedback [get]
func (h *ReportHandler) ListFeedback(c *gin.Context) {
	reports, err := h.service.ListFeedback(c.Request.Context(), models.ReportFilter{Search: strings.TrimSpace(c.Query("q"))})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, nil)
}

// Get godoc
// @Summary Get one report
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/{id} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.service.Get(c.Request.Context(), claims.Role, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, nil)
}

// Create godoc
// @Summary Submit a lecture report
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body service.CreateReportRequest true "Report payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid report payload"))
		return
	}

	report, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, report)
}

// Update godoc
// @Summary Update a report
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param payload body service.UpdateReportRequest true "Partial report payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/{id} [put]
func (h *ReportHandler) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req service.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid report payload"))
		return
	}

	if err := h.service.Update(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "report updated"}, nil)
}

// Delete godoc
// @Summary Delete a report
// @Tags Reports
// @Param id path int true "Report ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/{id} [delete]
func (h *ReportHandler) Delete(c *gin.Context) {
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

// AddFeedback godoc
// @Summary Annotate a report with feedback
// @Tags Reports
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param payload body service.FeedbackRequest true "Feedback payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /reports/feedback/{id} [post]
func (h *ReportHandler) AddFeedback(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req service.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "feedback is required"))
		return
	}

	if err := h.service.AddFeedback(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "feedback added"}, nil)
}

// Export godoc
// @Summary Export all reports
// @Description Streams a spreadsheet with the raw feedback column
// @Tags Reports
// @Produce application/octet-stream
// @Param format query string false "csv, xlsx or pdf" default(xlsx)
// @Success 200 {file} binary
// @Router /reports/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatXLSX)

	result, err := h.service.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.archive != nil {
		if token, err := h.archive.Archive(*result); err == nil {
			c.Header("X-Export-Token", token)
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// Download godoc
// @Summary Re-download an archived export
// @Description Serves a previously rendered export by signed token
// @Tags Reports
// @Produce application/octet-stream
// @Param token query string true "Signed export token"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /reports/export/download [get]
func (h *ReportHandler) Download(c *gin.Context) {
	if h.archive == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export archive is disabled"))
		return
	}

	archived, err := h.archive.Fetch(c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", archived.Filename))
	c.Data(http.StatusOK, archived.ContentType, archived.Content)
}
