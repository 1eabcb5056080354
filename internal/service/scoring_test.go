package service

import (
	"encoding/json"
	"errors"
	"testing"

	"kysely-service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func servedQuestions(correct ...int) []models.Question {
	category := primitive.NewObjectID()
	questions := make([]models.Question, 0, len(correct))
	for _, idx := range correct {
		questions = append(questions, models.Question{
			ID:            primitive.NewObjectID(),
			Category:      category,
			Question:      "q",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: idx,
		})
	}
	return questions
}

func TestScore(t *testing.T) {
	testCases := []struct {
		name      string
		correct   []int
		answers   []Answer
		wantScore int
		wantPerQ  []bool
	}{
		{
			name:      "all correct by index",
			correct:   []int{0, 2, 3},
			answers:   []Answer{{Index: 0}, {Index: 2}, {Index: 3}},
			wantScore: 3,
			wantPerQ:  []bool{true, true, true},
		},
		{
			name:      "all correct by option text",
			correct:   []int{1, 0},
			answers:   []Answer{{Text: "b", IsText: true}, {Text: "a", IsText: true}},
			wantScore: 2,
			wantPerQ:  []bool{true, true},
		},
		{
			name:      "mixed encodings",
			correct:   []int{1, 2, 0},
			answers:   []Answer{{Index: 1}, {Text: "c", IsText: true}, {Text: "b", IsText: true}},
			wantScore: 2,
			wantPerQ:  []bool{true, true, false},
		},
		{
			name:      "empty answers score zero",
			correct:   []int{0, 1, 2},
			answers:   nil,
			wantScore: 0,
			wantPerQ:  []bool{false, false, false},
		},
		{
			name:      "abandoned attempt scores only the prefix",
			correct:   []int{0, 1, 2, 3},
			answers:   []Answer{{Index: 0}, {Index: 1}},
			wantScore: 2,
			wantPerQ:  []bool{true, true, false, false},
		},
		{
			name:      "extra answers beyond served are ignored",
			correct:   []int{0},
			answers:   []Answer{{Index: 0}, {Index: 1}, {Index: 2}},
			wantScore: 1,
			wantPerQ:  []bool{true},
		},
		{
			name:      "wrong option text",
			correct:   []int{2},
			answers:   []Answer{{Text: "a", IsText: true}},
			wantScore: 0,
			wantPerQ:  []bool{false},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			served := servedQuestions(tc.correct...)
			summary := Score(served, tc.answers)

			if summary.ScoreValue != tc.wantScore {
				t.Errorf("ScoreValue = %d, want %d", summary.ScoreValue, tc.wantScore)
			}
			if summary.Total != len(served) {
				t.Errorf("Total = %d, want %d", summary.Total, len(served))
			}
			if want := models.ScoreLabel(tc.wantScore, len(served)); summary.Score != want {
				t.Errorf("Score = %q, want %q", summary.Score, want)
			}
			if len(summary.PerQuestion) != len(tc.wantPerQ) {
				t.Fatalf("PerQuestion length = %d, want %d", len(summary.PerQuestion), len(tc.wantPerQ))
			}
			for i := range tc.wantPerQ {
				if summary.PerQuestion[i] != tc.wantPerQ[i] {
					t.Errorf("PerQuestion[%d] = %v, want %v", i, summary.PerQuestion[i], tc.wantPerQ[i])
				}
			}
		})
	}
}

func TestAnswerUnmarshalJSON(t *testing.T) {
	var answers []Answer
	if err := json.Unmarshal([]byte(`[2, "Helsinki"]`), &answers); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("got %d answers, want 2", len(answers))
	}
	if answers[0].IsText || answers[0].Index != 2 {
		t.Errorf("answers[0] = %+v, want index 2", answers[0])
	}
	if !answers[1].IsText || answers[1].Text != "Helsinki" {
		t.Errorf("answers[1] = %+v, want text %q", answers[1], "Helsinki")
	}

	var bad Answer
	if err := json.Unmarshal([]byte(`{"x":1}`), &bad); err == nil {
		t.Error("expected error for object-typed answer, got nil")
	}
}

// A null answer must be rejected, not decoded as index 0: an all-null
// submission would otherwise score every question whose correct answer is
// the first option.
func TestAnswerUnmarshalJSONRejectsNull(t *testing.T) {
	var answers []Answer
	err := json.Unmarshal([]byte(`[null, null]`), &answers)
	if err == nil {
		t.Fatal("expected error for null answer, got nil")
	}
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("error = %v, want models.ErrValidation", err)
	}
}
