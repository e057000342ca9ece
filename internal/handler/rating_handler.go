package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luct-faculty/reporting-api/internal/service"
	appErrors "github.com/luct-faculty/reporting-api/pkg/errors"
	"github.com/luct-faculty/reporting-api/pkg/response"
)

// RatingHandler exposes the bidirectional rating endpoints.
type RatingHandler struct {
	service *service.RatingService
}

// NewRatingHandler constructs a rating handler.
func NewRatingHandler(svc *service.RatingService) *RatingHandler {
	return &RatingHandler{service: svc}
}

// Create godoc
// @Summary Submit a rating
// @Description Lecturers rate students, students rate delivered lectures
// @Tags Ratings
// @Accept json
// @Produce json
// @Param payload body service.CreateRatingRequest true "Rating payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /rating [post]
func (h *RatingHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rating payload"))
		return
	}

	rating, err := h.service.Create(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rating)
}

// List godoc
// @Summary List ratings
// @Tags Ratings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rating [get]
func (h *RatingHandler) List(c *gin.Context) {
	ratings, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ratings, nil)
}

// StudentsToRate godoc
// @Summary List students a lecturer can rate
// @Tags Ratings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /students-to-rate [get]
func (h *RatingHandler) StudentsToRate(c *gin.Context) {
	students, err := h.service.StudentsToRate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, nil)
}

// LecturesToRate godoc
// @Summary List lectures a student can rate
// @Tags Ratings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /lectures-to-rate [get]
func (h *RatingHandler) LecturesToRate(c *gin.Context) {
	lectures, err := h.service.LecturesToRate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lectures, nil)
}
