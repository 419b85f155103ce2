package handler

import (
	"net/http"

	"github.com/gdugdh24/glicosaude/internal/usecase/insights"
	"github.com/gin-gonic/gin"
)

type InsightsHandler struct {
	insightsUseCase *insights.InsightsUseCase
}

func NewInsightsHandler(insightsUseCase *insights.InsightsUseCase) *InsightsHandler {
	return &InsightsHandler{
		insightsUseCase: insightsUseCase,
	}
}

// GenerateInsight handles POST /insights
// @Summary Glucose insight
// @Description Summary of the last 30 days with a short comment and tips
// @Tags insights
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Insight
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /insights [post]
func (h *InsightsHandler) GenerateInsight(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	insight, err := h.insightsUseCase.Generate(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to generate insight")
		return
	}

	c.JSON(http.StatusOK, insight)
}
