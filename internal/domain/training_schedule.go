// internal/domain/training_schedule.go
package domain

import (
	"time"

	"alcyxob/training-tracker/internal/schedule"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingSchedule is an athlete's run of a training plan over a number of
// weeks. Config, exercises and targets are written once at creation; only
// Actuals (and Version with it) change afterwards.
type TrainingSchedule struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AthleteID     primitive.ObjectID `bson:"athleteId" json:"athleteId"`
	PlanID        primitive.ObjectID `bson:"planId" json:"planId"`
	PlanName      string             `bson:"planName" json:"planName"` // denormalized for listings
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	StartDate     time.Time          `bson:"startDate" json:"startDate"`
	DurationWeeks int                `bson:"durationWeeks" json:"durationWeeks"`
	TrainingDays  schedule.Weekdays  `bson:"trainingDays" json:"trainingDays"`
	Exercises     []string           `bson:"exercises" json:"exercises"` // plan exercises at creation
	Targets       schedule.Calendar  `bson:"targets" json:"-"`
	Actuals       schedule.Log       `bson:"actuals" json:"-"`
	Version       int64              `bson:"version" json:"version"` // bumped on every actuals write
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewTrainingSchedule wraps an expanded engine schedule into a record.
func NewTrainingSchedule(athleteID primitive.ObjectID, plan *TrainingPlan, notes string, s *schedule.Schedule) *TrainingSchedule {
	return &TrainingSchedule{
		AthleteID:     athleteID,
		PlanID:        plan.ID,
		PlanName:      plan.Name,
		Notes:         notes,
		StartDate:     s.Config.StartDate,
		DurationWeeks: s.Config.DurationWeeks,
		TrainingDays:  s.Config.TrainingDays,
		Exercises:     s.Exercises,
		Targets:       s.Targets,
		Actuals:       s.Actuals,
	}
}

// Config returns the schedule's calendar configuration.
func (ts *TrainingSchedule) Config() schedule.Config {
	return schedule.Config{
		StartDate:     ts.StartDate,
		DurationWeeks: ts.DurationWeeks,
		TrainingDays:  ts.TrainingDays,
	}
}

// EndDate is the inclusive last day of the schedule.
func (ts *TrainingSchedule) EndDate() time.Time {
	return ts.Config().EndDate()
}

// Engine returns the engine view of the record. The view shares the maps of
// the record, so recorded activities show up in Actuals directly.
func (ts *TrainingSchedule) Engine() *schedule.Schedule {
	if ts.Actuals == nil {
		ts.Actuals = schedule.Log{}
	}
	return &schedule.Schedule{
		Athlete:   ts.AthleteID.Hex(),
		Config:    ts.Config(),
		Exercises: ts.Exercises,
		Targets:   ts.Targets,
		Actuals:   ts.Actuals,
	}
}
