// internal/domain/training_plan.go
package domain

import (
	"time"

	"alcyxob/training-tracker/internal/schedule"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingPlan is a reusable set of exercise progressions. Schedules copy the
// progressions when they are created.
type TrainingPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID    primitive.ObjectID `bson:"authorId" json:"authorId"` // who created the plan
	Name        string             `bson:"name" json:"name"`         // e.g., "Phase 1: Hypertrophy"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Exercises   schedule.Plan      `bson:"exercises" json:"exercises"` // exercise name -> progression
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
