package handlers

import (
	"net/http"

	"kysely-service/internal/models"
	"kysely-service/internal/service"

	"github.com/gin-gonic/gin"
)

type quizRequest struct {
	Category string `json:"category" binding:"required"`
	Count    int    `json:"count" binding:"required"`
}

type scoreRequest struct {
	QuestionIDs []string         `json:"questionIds" binding:"required"`
	Answers     []service.Answer `json:"answers"`
}

type QuizHandler struct {
	Quiz *service.QuizService
}

func NewQuizHandler(quiz *service.QuizService) *QuizHandler {
	return &QuizHandler{Quiz: quiz}
}

// StartQuiz serves a randomized question subset for an attempt, projected
// through the public view so the correct-answer index never leaves the
// server on this path.
func (h *QuizHandler) StartQuiz(c *gin.Context) {
	var req quizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category and count required"})
		return
	}
	questions, err := h.Quiz.Sample(c.Request.Context(), req.Category, req.Count)
	if err != nil {
		respondError(c, err)
		return
	}
	views := make([]models.PublicQuestion, 0, len(questions))
	for _, q := range questions {
		views = append(views, q.PublicView())
	}
	c.JSON(http.StatusOK, views)
}

// ScoreQuiz scores submitted answers against the echoed served-question ID
// list. The caller is trusted to echo what it was served.
func (h *QuizHandler) ScoreQuiz(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	summary, err := h.Quiz.ScoreSubmission(c.Request.Context(), req.QuestionIDs, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
