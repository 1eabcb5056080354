package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result is one persisted scored quiz attempt. Name is the free-text
// participant name and is not tied to a User account.
type Result struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Category   primitive.ObjectID `bson:"category" json:"category"`
	Score      string             `bson:"score" json:"score"`
	ScoreValue int                `bson:"scoreValue" json:"scoreValue"`
	Total      int                `bson:"total" json:"total"`
	Date       time.Time          `bson:"date" json:"date"`
}

// ScoreLabel renders the "N / M" display form used by the frontend.
func ScoreLabel(scoreValue, total int) string {
	return fmt.Sprintf("%d / %d", scoreValue, total)
}

func (r *Result) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: result name is required", ErrValidation)
	}
	if r.Category.IsZero() {
		return fmt.Errorf("%w: result category is required", ErrValidation)
	}
	if r.Total < 0 {
		return fmt.Errorf("%w: total must not be negative", ErrValidation)
	}
	if r.ScoreValue < 0 || r.ScoreValue > r.Total {
		return fmt.Errorf("%w: scoreValue %d outside [0,%d]", ErrValidation, r.ScoreValue, r.Total)
	}
	return nil
}
