package handlers

import (
	"net/http"
	"time"

	"kysely-service/internal/models"
	"kysely-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type resultRequest struct {
	Name       string    `json:"name" binding:"required"`
	Category   string    `json:"category" binding:"required"`
	Score      string    `json:"score"`
	ScoreValue *int      `json:"scoreValue" binding:"required"`
	Total      *int      `json:"total" binding:"required"`
	Date       time.Time `json:"date"`
}

func (r resultRequest) toModel() (models.Result, error) {
	oid, err := primitive.ObjectIDFromHex(r.Category)
	if err != nil {
		return models.Result{}, models.ErrInvalidID
	}
	date := r.Date
	if date.IsZero() {
		date = time.Now()
	}
	return models.Result{
		Name:       r.Name,
		Category:   oid,
		Score:      r.Score,
		ScoreValue: *r.ScoreValue,
		Total:      *r.Total,
		Date:       date,
	}, nil
}

type ResultHandler struct {
	Service *service.ResultService
}

func NewResultHandler(s *service.ResultService) *ResultHandler {
	return &ResultHandler{Service: s}
}

// ListResults returns the stored results. With ?sort= it serves the ranked
// leaderboard view; ?group=true additionally partitions by category.
func (h *ResultHandler) ListResults(c *gin.Context) {
	rawSort := c.Query("sort")
	if rawSort == "" {
		results, err := h.Service.ListResults(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if results == nil {
			results = []models.Result{}
		}
		c.JSON(http.StatusOK, results)
		return
	}

	key, err := service.ParseSortKey(rawSort)
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Query("group") == "true" {
		grouped, err := h.Service.ListGrouped(c.Request.Context(), key)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, grouped)
		return
	}
	ranked, err := h.Service.ListRanked(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ranked)
}

func (h *ResultHandler) CreateResult(c *gin.Context) {
	var req resultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := req.toModel()
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Service.CreateResult(c.Request.Context(), &result); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *ResultHandler) UpdateResult(c *gin.Context) {
	var req resultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := req.toModel()
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.Service.UpdateResult(c.Request.Context(), c.Param("id"), &result); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ResultHandler) DeleteResult(c *gin.Context) {
	if err := h.Service.DeleteResult(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
