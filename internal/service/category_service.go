package service

import (
	"context"
	"log"

	"kysely-service/internal/event"
	"kysely-service/internal/models"
	"kysely-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryService struct {
	Categories *repository.CategoryRepository
	Questions  *repository.QuestionRepository
	Events     *event.Publisher
}

func NewCategoryService(categories *repository.CategoryRepository, questions *repository.QuestionRepository, events *event.Publisher) *CategoryService {
	return &CategoryService{Categories: categories, Questions: questions, Events: events}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Categories.FindAll(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	return s.Categories.FindByID(ctx, oid)
}

func (s *CategoryService) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	return s.Categories.Create(ctx, category)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id string, name string) (*models.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	category := models.Category{ID: oid, Name: name}
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if err := s.Categories.Update(ctx, oid, bson.M{"name": name}); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes the category, then its questions. The two deletes
// are independent store calls with no transaction: if the second fails the
// category is already gone and the orphaned questions are only logged.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}
	if err := s.Categories.Delete(ctx, oid); err != nil {
		return err
	}

	deleted, cascadeErr := s.Questions.DeleteByCategory(ctx, oid)
	if cascadeErr != nil {
		log.Printf("Category %s deleted but question cascade failed: %v", id, cascadeErr)
	}
	if s.Events != nil {
		payload := map[string]interface{}{"categoryId": id, "questionsDeleted": deleted}
		if cascadeErr != nil {
			payload["cascadeError"] = cascadeErr.Error()
		}
		s.Events.Publish("category.deleted", payload)
	}
	return nil
}
