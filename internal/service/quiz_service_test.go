package service

import (
	"math/rand"
	"testing"

	"kysely-service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func categoryQuestions(n int) []models.Question {
	category := primitive.NewObjectID()
	questions := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, models.Question{
			ID:            primitive.NewObjectID(),
			Category:      category,
			Question:      "q",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % models.OptionCount,
		})
	}
	return questions
}

func TestSampleQuestionsCount(t *testing.T) {
	testCases := []struct {
		name      string
		available int
		requested int
		want      int
	}{
		{"fewer than available", 10, 3, 3},
		{"exactly available", 5, 5, 5},
		{"more than available returns all", 3, 10, 3},
		{"zero clamps to one", 4, 0, 1},
		{"negative clamps to one", 4, -5, 1},
		{"single question", 1, 1, 1},
	}

	r := rand.New(rand.NewSource(1))
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			questions := categoryQuestions(tc.available)
			category := questions[0].Category

			sampled := sampleQuestions(r, questions, tc.requested)
			if len(sampled) != tc.want {
				t.Fatalf("got %d questions, want %d", len(sampled), tc.want)
			}

			seen := make(map[primitive.ObjectID]bool)
			for _, q := range sampled {
				if seen[q.ID] {
					t.Errorf("question %s sampled twice", q.ID.Hex())
				}
				seen[q.ID] = true
				if q.Category != category {
					t.Errorf("question %s belongs to the wrong category", q.ID.Hex())
				}
			}
		})
	}
}

// The uncategorized listing samples across the whole pool, so the input may
// span categories.
func TestSampleQuestionsMixedCategories(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	pool := append(categoryQuestions(4), categoryQuestions(4)...)
	byID := make(map[primitive.ObjectID]bool, len(pool))
	for _, q := range pool {
		byID[q.ID] = true
	}

	sampled := sampleQuestions(r, pool, 5)
	if len(sampled) != 5 {
		t.Fatalf("got %d questions, want 5", len(sampled))
	}
	seen := make(map[primitive.ObjectID]bool)
	for _, q := range sampled {
		if !byID[q.ID] {
			t.Errorf("question %s is not from the pool", q.ID.Hex())
		}
		if seen[q.ID] {
			t.Errorf("question %s sampled twice", q.ID.Hex())
		}
		seen[q.ID] = true
	}
}

func TestSampleQuestionsShuffles(t *testing.T) {
	// Statistical check: across 20 full-size samples of 10 questions, at
	// least one ordering must differ from the original. A false failure
	// needs 20 identity permutations in a row.
	r := rand.New(rand.NewSource(42))
	original := categoryQuestions(10)

	differed := false
	for trial := 0; trial < 20 && !differed; trial++ {
		questions := make([]models.Question, len(original))
		copy(questions, original)
		sampled := sampleQuestions(r, questions, len(original))
		for i := range sampled {
			if sampled[i].ID != original[i].ID {
				differed = true
				break
			}
		}
	}
	if !differed {
		t.Error("sampling never changed the question order")
	}
}
