package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/luct-faculty/reporting-api/internal/models"
	"github.com/luct-faculty/reporting-api/internal/service"
	appErrors "github.com/luct-faculty/reporting-api/pkg/errors"
	"github.com/luct-faculty/reporting-api/pkg/response"
)

// MonitoringHandler serves the course-activity monitoring view. It is
// the report listing under another name, so the same role projection
// applies.
type MonitoringHandler struct {
	reports *service.ReportService
}

// NewMonitoringHandler constructs a monitoring handler.
func NewMonitoringHandler(reports *service.ReportService) *MonitoringHandler {
	return &MonitoringHandler{reports: reports}
}

// List godoc
// @Summary Monitor lecture activity
// @Description Role-shaped report rows filtered by course name
// @Tags Monitoring
// @Produce json
// @Param q query string false "Course name filter"
// @Success 200 {object} response.Envelope
// @Router /monitoring [get]
func (h *MonitoringHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	filter := models.ReportFilter{Search: strings.TrimSpace(c.Query("q"))}
	reports, err := h.reports.List(c.Request.Context(), claims.Role, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, nil)
}
