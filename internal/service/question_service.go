package service

import (
	"context"

	"kysely-service/internal/event"
	"kysely-service/internal/models"
	"kysely-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QuestionService struct {
	Questions  *repository.QuestionRepository
	Categories *repository.CategoryRepository
	Events     *event.Publisher
}

func NewQuestionService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, events *event.Publisher) *QuestionService {
	return &QuestionService{Questions: questions, Categories: categories, Events: events}
}

// ListQuestions returns the unrestricted administrative listing, optionally
// filtered by category. Correct answers are not stripped on this path.
func (s *QuestionService) ListQuestions(ctx context.Context, categoryID string) ([]models.Question, error) {
	if categoryID == "" {
		return s.Questions.FindAll(ctx)
	}
	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	return s.Questions.FindByCategory(ctx, oid)
}

func (s *QuestionService) CreateQuestion(ctx context.Context, question *models.Question) error {
	if err := question.Validate(); err != nil {
		return err
	}
	// The category reference is checked once here; it is not a store-level
	// foreign key, so later category deletes can still orphan the question.
	if _, err := s.Categories.FindByID(ctx, question.Category); err != nil {
		return err
	}
	return s.Questions.Create(ctx, question)
}

// ImportQuestions bulk-inserts validated questions. All rows must validate
// and reference existing categories before anything is written.
func (s *QuestionService) ImportQuestions(ctx context.Context, questions []models.Question) (int, error) {
	if len(questions) == 0 {
		return 0, nil
	}
	seen := make(map[primitive.ObjectID]bool)
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return 0, err
		}
		if !seen[questions[i].Category] {
			if _, err := s.Categories.FindByID(ctx, questions[i].Category); err != nil {
				return 0, err
			}
			seen[questions[i].Category] = true
		}
	}
	inserted, err := s.Questions.CreateMany(ctx, questions)
	if err != nil {
		return 0, err
	}
	if s.Events != nil {
		s.Events.Publish("question.imported", map[string]interface{}{"count": inserted})
	}
	return inserted, nil
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, id string, question *models.Question) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}
	if err := question.Validate(); err != nil {
		return err
	}
	if _, err := s.Categories.FindByID(ctx, question.Category); err != nil {
		return err
	}
	question.ID = oid
	return s.Questions.Update(ctx, oid, bson.M{
		"category":      question.Category,
		"question":      question.Question,
		"options":       question.Options,
		"correctAnswer": question.CorrectAnswer,
	})
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrInvalidID
	}
	return s.Questions.Delete(ctx, oid)
}
