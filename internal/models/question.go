package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OptionCount is fixed: every question carries exactly four options.
const OptionCount = 4

// Question is the canonical document. Field names match the legacy
// collection so existing data stays readable.
type Question struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Category      primitive.ObjectID `bson:"category" json:"category"`
	Question      string             `bson:"question" json:"question"`
	Options       []string           `bson:"options" json:"options"`
	CorrectAnswer int                `bson:"correctAnswer" json:"correctAnswer"`
}

// PublicQuestion is the projection served to quiz takers: no correct-answer
// indicator.
type PublicQuestion struct {
	ID       primitive.ObjectID `json:"_id"`
	Category primitive.ObjectID `json:"category"`
	Question string             `json:"question"`
	Options  []string           `json:"options"`
}

// PublicView strips the correct-answer index for the quiz-taking path.
func (q Question) PublicView() PublicQuestion {
	return PublicQuestion{
		ID:       q.ID,
		Category: q.Category,
		Question: q.Question,
		Options:  q.Options,
	}
}

// AdminView keeps the full document for the administrative listing path.
func (q Question) AdminView() Question {
	return q
}

func (q *Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: question text is required", ErrValidation)
	}
	if q.Category.IsZero() {
		return fmt.Errorf("%w: question category is required", ErrValidation)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("%w: question requires exactly %d options, got %d", ErrValidation, OptionCount, len(q.Options))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("%w: option %d is empty", ErrValidation, i)
		}
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("%w: correctAnswer %d out of range [0,%d]", ErrValidation, q.CorrectAnswer, len(q.Options)-1)
	}
	return nil
}
