package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"kysely-service/internal/models"
	"kysely-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuizService selects the randomized question subset served for a quiz
// attempt. Sampling is a pure read: nothing about the attempt is recorded
// server-side.
type QuizService struct {
	Questions *repository.QuestionRepository

	mu   sync.Mutex
	rand *rand.Rand
}

func NewQuizService(questions *repository.QuestionRepository) *QuizService {
	return &QuizService{
		Questions: questions,
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Sample returns min(count, available) distinct questions of the category,
// uniformly chosen. Count is clamped to [1, available]; requesting more than
// exists returns everything rather than erroring.
func (s *QuizService) Sample(ctx context.Context, categoryID string, count int) ([]models.Question, error) {
	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, models.ErrInvalidID
	}
	questions, err := s.Questions.FindByCategory(ctx, oid)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, models.ErrNotFound
	}

	s.mu.Lock()
	sampled := sampleQuestions(s.rand, questions, count)
	s.mu.Unlock()
	return sampled, nil
}

// SampleAll samples from the whole question pool, ignoring categories.
func (s *QuizService) SampleAll(ctx context.Context, count int) ([]models.Question, error) {
	questions, err := s.Questions.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, models.ErrNotFound
	}

	s.mu.Lock()
	sampled := sampleQuestions(s.rand, questions, count)
	s.mu.Unlock()
	return sampled, nil
}

// sampleQuestions shuffles in place with Fisher-Yates and keeps the first
// min(count, len) elements.
func sampleQuestions(r *rand.Rand, questions []models.Question, count int) []models.Question {
	n := count
	if n < 1 {
		n = 1
	}
	if n > len(questions) {
		n = len(questions)
	}
	for i := len(questions) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		questions[i], questions[j] = questions[j], questions[i]
	}
	return questions[:n]
}
