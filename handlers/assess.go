package handlers

import (
	"net/http"

	"go-mindfit/assessment"

	"github.com/gin-gonic/gin"
)

// Assess labels one respondent's five slider answers.
func (h *Handler) Assess(c *gin.Context) {
	var answers assessment.Answers
	if err := c.ShouldBindJSON(&answers); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid answers",
			"details": err.Error(),
		})
		return
	}

	result, err := assessment.AssessAnswers(answers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid answers",
			"details": err.Error(),
		})
		return
	}

	h.assessments.WithLabelValues(string(result.Label)).Inc()
	c.JSON(http.StatusOK, result)
}
