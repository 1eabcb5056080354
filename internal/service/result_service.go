package service

import (
	"context"
	"fmt"
	"sort"

	"kysely-service/internal/event"
	"kysely-service/internal/models"
	"kysely-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SortKey selects the ranking order for persisted results.
type SortKey string

const (
	SortByScore    SortKey = "score"    // scoreValue descending
	SortByDate     SortKey = "date"     // timestamp descending
	SortByCategory SortKey = "category" // category name ascending
)

// ParseSortKey validates the sort query parameter.
func ParseSortKey(raw string) (SortKey, error) {
	switch SortKey(raw) {
	case SortByScore, SortByDate, SortByCategory:
		return SortKey(raw), nil
	}
	return "", fmt.Errorf("%w: unknown sort key %q", models.ErrValidation, raw)
}

// RankedResult is a Result with its category name resolved for display.
type RankedResult struct {
	models.Result
	CategoryName string `json:"categoryName,omitempty"`
}

// CategoryRanking is one per-category partition of the ranked results.
type CategoryRanking struct {
	CategoryID   primitive.ObjectID `json:"categoryId"`
	CategoryName string             `json:"categoryName,omitempty"`
	Results      []RankedResult     `json:"results"`
}

type ResultService struct {
	Results    *repository.ResultRepository
	Categories *repository.CategoryRepository
	Events     *event.Publisher
}

func NewResultService(results *repository.ResultRepository, categories *repository.CategoryRepository, events *event.Publisher) *ResultService {
	return &ResultService{Results: results, Categories: categories, Events: events}
}

func (s *ResultService) ListResults(ctx context.Context) ([]models.Result, error) {
	return s.Results.FindAll(ctx)
}

// ListRanked returns all results ordered by the sort key, with category
// names resolved through a single lookup map built per call.
func (s *ResultService) ListRanked(ctx context.Context, key SortKey) ([]RankedResult, error) {
	results, names, err := s.loadWithNames(ctx)
	if err != nil {
		return nil, err
	}
	return RankResults(results, key, names), nil
}

// ListGrouped partitions results by category, each partition ordered by the
// same sort rule as the flat ranking.
func (s *ResultService) ListGrouped(ctx context.Context, key SortKey) ([]CategoryRanking, error) {
	results, names, err := s.loadWithNames(ctx)
	if err != nil {
		return nil, err
	}
	return GroupResultsByCategory(results, key, names), nil
}

func (s *ResultService) loadWithNames(ctx context.Context) ([]models.Result, map[primitive.ObjectID]string, error) {
	results, err := s.Results.FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	categories, err := s.Categories.FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	names := make(map[primitive.ObjectID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return results, names, nil
}

func (s *ResultService) CreateResult(ctx context.Context, result *models.Result) error {
	if err := result.Validate(); err != nil {
		return err
	}
	if result.Score == "" {
		result.Score = models.ScoreLabel(result.ScoreValue, result.Total)
	}
	if err := s.Results.Create(ctx, result); err != nil {
		return err
	}
	if s.Events != nil {
		s.Events.Publish("result.created", map[string]interface{}{
			"resultId":   result.ID.Hex(),
			"categoryId": result.Category.Hex(),
			"scoreValue": result.ScoreValue,
			"total":      result.Total,
		})
	}
	return nil
}

func (s *ResultService) UpdateResult(ctx context.Context, id string, result *models.Result) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}
	if err := result.Validate(); err != nil {
		return err
	}
	result.ID = oid
	return s.Results.Update(ctx, oid, bson.M{
		"name":       result.Name,
		"category":   result.Category,
		"score":      result.Score,
		"scoreValue": result.ScoreValue,
		"total":      result.Total,
		"date":       result.Date,
	})
}

func (s *ResultService) DeleteResult(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}
	return s.Results.Delete(ctx, oid)
}

// RankResults orders results by the sort key. The sort is stable: results
// sharing the primary key keep their original retrieval order.
func RankResults(results []models.Result, key SortKey, categoryNames map[primitive.ObjectID]string) []RankedResult {
	ranked := make([]RankedResult, 0, len(results))
	for _, r := range results {
		ranked = append(ranked, RankedResult{Result: r, CategoryName: categoryNames[r.Category]})
	}
	switch key {
	case SortByScore:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].ScoreValue > ranked[j].ScoreValue
		})
	case SortByDate:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Date.After(ranked[j].Date)
		})
	case SortByCategory:
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].CategoryName < ranked[j].CategoryName
		})
	}
	return ranked
}

// GroupResultsByCategory partitions the ranked results by category,
// preserving the flat ranking order inside every partition. Partitions
// appear in order of their first ranked result.
func GroupResultsByCategory(results []models.Result, key SortKey, categoryNames map[primitive.ObjectID]string) []CategoryRanking {
	ranked := RankResults(results, key, categoryNames)
	index := make(map[primitive.ObjectID]int)
	grouped := make([]CategoryRanking, 0)
	for _, r := range ranked {
		i, ok := index[r.Category]
		if !ok {
			i = len(grouped)
			index[r.Category] = i
			grouped = append(grouped, CategoryRanking{
				CategoryID:   r.Category,
				CategoryName: categoryNames[r.Category],
			})
		}
		grouped[i].Results = append(grouped[i].Results, r)
	}
	return grouped
}
