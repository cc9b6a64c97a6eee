// Package memory holds map backed repositories. They are used when the
// server runs with database.driver "memory" and by the service tests.
package memory

import (
	"alcyxob/training-tracker/internal/domain"
	"alcyxob/training-tracker/internal/schedule"
)

func copyUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func copyExercise(e *domain.Exercise) *domain.Exercise {
	c := *e
	if e.SecondaryMuscle != nil {
		m := *e.SecondaryMuscle
		c.SecondaryMuscle = &m
	}
	c.Equipment = append([]string(nil), e.Equipment...)
	return &c
}

func copyPlan(p *domain.TrainingPlan) *domain.TrainingPlan {
	c := *p
	c.Exercises = make(schedule.Plan, len(p.Exercises))
	for name, prog := range p.Exercises {
		c.Exercises[name] = prog
	}
	return &c
}

func copySchedule(ts *domain.TrainingSchedule) *domain.TrainingSchedule {
	c := *ts
	c.Exercises = append([]string(nil), ts.Exercises...)
	c.Targets = ts.Targets.Clone()
	c.Actuals = ts.Actuals.Clone()
	if c.Actuals == nil {
		c.Actuals = schedule.Log{}
	}
	return &c
}
