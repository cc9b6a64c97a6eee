// internal/domain/exercise.go
package domain

import (
	"time"

	"alcyxob/training-tracker/internal/schedule"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MuscleGroup is the coarse body region a muscle belongs to.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "Chest"
	MuscleBack      MuscleGroup = "Back"
	MuscleLegs      MuscleGroup = "Legs"
	MuscleGlutes    MuscleGroup = "Glutes"
	MuscleArms      MuscleGroup = "Arms"
	MuscleShoulders MuscleGroup = "Shoulders"
	MuscleCore      MuscleGroup = "Core"
)

// Valid reports whether g is one of the known groups.
func (g MuscleGroup) Valid() bool {
	switch g {
	case MuscleChest, MuscleBack, MuscleLegs, MuscleGlutes, MuscleArms, MuscleShoulders, MuscleCore:
		return true
	}
	return false
}

// Muscle is a muscle focus of an exercise, e.g. {"Quadriceps", "Legs"}.
type Muscle struct {
	Name  string      `bson:"name" json:"name"`
	Group MuscleGroup `bson:"group" json:"group"`
}

// Exercise is an entry of the exercise catalog. Its name is the identifier
// plans and schedules refer to, so it is unique.
type Exercise struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuthorID        primitive.ObjectID `bson:"authorId" json:"authorId"` // coach who created it
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Kind            schedule.Kind      `bson:"kind" json:"kind"` // strength, isometric or cardio
	PrimaryMuscle   Muscle             `bson:"primaryMuscle" json:"primaryMuscle"`
	SecondaryMuscle *Muscle            `bson:"secondaryMuscle,omitempty" json:"secondaryMuscle,omitempty"`
	Equipment       []string           `bson:"equipment,omitempty" json:"equipment,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Muscles returns the primary and, if set, the secondary muscle focus.
func (e *Exercise) Muscles() []Muscle {
	if e.SecondaryMuscle == nil {
		return []Muscle{e.PrimaryMuscle}
	}
	return []Muscle{e.PrimaryMuscle, *e.SecondaryMuscle}
}

// SharesMuscleWith reports whether any muscle focus of e is also one of o's.
func (e *Exercise) SharesMuscleWith(o *Exercise) bool {
	for _, m := range e.Muscles() {
		for _, om := range o.Muscles() {
			if m == om {
				return true
			}
		}
	}
	return false
}
