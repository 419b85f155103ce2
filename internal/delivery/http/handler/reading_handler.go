package handler

import (
	"net/http"

	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/usecase/readings"
	"github.com/gin-gonic/gin"
)

type ReadingHandler struct {
	readingsUseCase *readings.ReadingsUseCase
}

func NewReadingHandler(readingsUseCase *readings.ReadingsUseCase) *ReadingHandler {
	return &ReadingHandler{
		readingsUseCase: readingsUseCase,
	}
}

// ListReadingsResponse wraps the newest-first reading list
type ListReadingsResponse struct {
	Readings []*domain.GlucoseReading `json:"readings"`
	Total    int                      `json:"total"`
}

// ListReadings handles GET /readings
// @Summary List readings
// @Description Current user's glucose readings, newest first
// @Tags readings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ListReadingsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /readings [get]
func (h *ReadingHandler) ListReadings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	list, err := h.readingsUseCase.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list readings")
		return
	}
	if list == nil {
		list = []*domain.GlucoseReading{}
	}

	c.JSON(http.StatusOK, ListReadingsResponse{
		Readings: list,
		Total:    len(list),
	})
}

// CreateReading handles POST /readings
// @Summary Register a reading
// @Tags readings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body domain.ReadingInput true "Reading"
// @Success 201 {object} domain.GlucoseReading
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /readings [post]
func (h *ReadingHandler) CreateReading(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var in domain.ReadingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	reading, err := h.readingsUseCase.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err, "failed to save reading")
		return
	}

	c.JSON(http.StatusCreated, reading)
}

// DeleteReading handles DELETE /readings/:id
// @Summary Delete a reading
// @Tags readings
// @Security BearerAuth
// @Produce json
// @Param id path string true "Reading ID"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /readings/{id} [delete]
func (h *ReadingHandler) DeleteReading(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.readingsUseCase.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "failed to delete reading")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "reading deleted",
	})
}
