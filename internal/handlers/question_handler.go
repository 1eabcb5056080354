package handlers

import (
	"net/http"
	"strconv"

	"kysely-service/internal/models"
	"kysely-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type questionRequest struct {
	Category      string   `json:"category" binding:"required"`
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectAnswer *int     `json:"correctAnswer" binding:"required"`
}

func (r questionRequest) toModel() (models.Question, error) {
	oid, err := primitive.ObjectIDFromHex(r.Category)
	if err != nil {
		return models.Question{}, models.ErrInvalidID
	}
	return models.Question{
		Category:      oid,
		Question:      r.Question,
		Options:       r.Options,
		CorrectAnswer: *r.CorrectAnswer,
	}, nil
}

type QuestionHandler struct {
	Service *service.QuestionService
	Quiz    *service.QuizService
}

func NewQuestionHandler(s *service.QuestionService, quiz *service.QuizService) *QuestionHandler {
	return &QuestionHandler{Service: s, Quiz: quiz}
}

// ListQuestions is the administrative listing: correct answers included.
// With count set it serves a sampled subset, mirroring the quiz endpoint
// but unredacted; without category the sample spans the whole pool.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	categoryID := c.Query("category")
	rawCount := c.Query("count")

	if rawCount != "" {
		count, err := strconv.Atoi(rawCount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be an integer"})
			return
		}
		var questions []models.Question
		if categoryID != "" {
			questions, err = h.Quiz.Sample(c.Request.Context(), categoryID, count)
		} else {
			questions, err = h.Quiz.SampleAll(c.Request.Context(), count)
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, questions)
		return
	}

	questions, err := h.Service.ListQuestions(c.Request.Context(), categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}
	c.JSON(http.StatusOK, questions)
}

func (h *QuestionHandler) ListQuestionsByCategory(c *gin.Context) {
	questions, err := h.Service.ListQuestions(c.Request.Context(), c.Param("categoryId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if questions == nil {
		questions = []models.Question{}
	}
	c.JSON(http.StatusOK, questions)
}

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	question, err := req.toModel()
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Service.CreateQuestion(c.Request.Context(), &question); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

func (h *QuestionHandler) ImportQuestions(c *gin.Context) {
	var reqs []questionRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	questions := make([]models.Question, 0, len(reqs))
	for _, req := range reqs {
		question, err := req.toModel()
		if err != nil {
			respondError(c, err)
			return
		}
		questions = append(questions, question)
	}
	inserted, err := h.Service.ImportQuestions(c.Request.Context(), questions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"inserted": inserted})
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	question, err := req.toModel()
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Service.UpdateQuestion(c.Request.Context(), c.Param("id"), &question); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	if err := h.Service.DeleteQuestion(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
