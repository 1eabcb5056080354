package service

import (
	"context"
	"encoding/json"
	"fmt"

	"kysely-service/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Answer is one submitted answer. Clients send either the selected option
// index or the literal option text; both encodings are accepted and may be
// mixed within one submission.
type Answer struct {
	Index  int
	Text   string
	IsText bool
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	// json.Unmarshal of null into an int succeeds without touching it, so
	// null would otherwise pass as index 0.
	if string(data) == "null" {
		return fmt.Errorf("%w: answer must be an option index or an option string, not null", models.ErrValidation)
	}
	var idx int
	if err := json.Unmarshal(data, &idx); err == nil {
		*a = Answer{Index: idx}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*a = Answer{Text: text, IsText: true}
		return nil
	}
	return fmt.Errorf("%w: answer must be an option index or an option string", models.ErrValidation)
}

// ScoreSummary is the outcome of scoring one attempt.
type ScoreSummary struct {
	ScoreValue  int    `json:"scoreValue"`
	Total       int    `json:"total"`
	Score       string `json:"score"`
	PerQuestion []bool `json:"perQuestion"`
}

// Score compares submitted answers against the served question sequence by
// position. Answers beyond the served length are ignored; served questions
// beyond the answer length count as incorrect, never as skipped.
func Score(served []models.Question, answers []Answer) ScoreSummary {
	perQuestion := make([]bool, len(served))
	correct := 0
	for i, q := range served {
		if i >= len(answers) {
			continue
		}
		if answerMatches(q, answers[i]) {
			perQuestion[i] = true
			correct++
		}
	}
	return ScoreSummary{
		ScoreValue:  correct,
		Total:       len(served),
		Score:       models.ScoreLabel(correct, len(served)),
		PerQuestion: perQuestion,
	}
}

func answerMatches(q models.Question, a Answer) bool {
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return false
	}
	if a.IsText {
		return q.Options[q.CorrectAnswer] == a.Text
	}
	return a.Index == q.CorrectAnswer
}

// ScoreSubmission re-reads the echoed served-question IDs and scores the
// answers against them. The ID list is taken on trust: the server keeps no
// record of what was actually sampled for the attempt, so a client can echo
// a different set than it was served.
func (s *QuizService) ScoreSubmission(ctx context.Context, questionIDs []string, answers []Answer) (ScoreSummary, error) {
	if len(questionIDs) == 0 {
		return ScoreSummary{}, fmt.Errorf("%w: questionIds are required", models.ErrValidation)
	}
	ids := make([]primitive.ObjectID, 0, len(questionIDs))
	for _, raw := range questionIDs {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return ScoreSummary{}, models.ErrInvalidID
		}
		ids = append(ids, oid)
	}
	served, err := s.Questions.FindByIDs(ctx, ids)
	if err != nil {
		return ScoreSummary{}, err
	}
	return Score(served, answers), nil
}
