package domain

import (
	"time"

	"alcyxob/training-tracker/internal/schedule"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityRecord keeps every activity that was recorded against a schedule.
// The schedule itself only retains the latest value per day and exercise.
type ActivityRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ScheduleID      primitive.ObjectID `bson:"scheduleId" json:"scheduleId"`
	AthleteID       primitive.ObjectID `bson:"athleteId" json:"athleteId"`
	Kind            schedule.Kind      `bson:"kind" json:"kind"`
	Exercise        string             `bson:"exercise" json:"exercise"`
	Date            time.Time          `bson:"date" json:"date"`
	Reps            int                `bson:"reps,omitempty" json:"reps,omitempty"`                       // strength only
	Weight          float64            `bson:"weight,omitempty" json:"weight,omitempty"`                   // strength only, kg
	DurationSeconds int                `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty"` // isometric and cardio
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// NewActivityRecord builds the history entry for an accepted activity.
func NewActivityRecord(scheduleID, athleteID primitive.ObjectID, a schedule.Activity) *ActivityRecord {
	return &ActivityRecord{
		ScheduleID:      scheduleID,
		AthleteID:       athleteID,
		Kind:            a.Kind,
		Exercise:        a.Exercise,
		Date:            schedule.Day(a.Date),
		Reps:            a.Reps,
		Weight:          a.Weight,
		DurationSeconds: a.DurationSeconds,
	}
}
