package memory

import (
	"alcyxob/training-tracker/internal/domain"
	"alcyxob/training-tracker/internal/repository"
	"alcyxob/training-tracker/internal/schedule"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TrainingScheduleRepository struct {
	mu        sync.RWMutex
	schedules map[primitive.ObjectID]*domain.TrainingSchedule
}

func NewTrainingScheduleRepository() *TrainingScheduleRepository {
	return &TrainingScheduleRepository{
		schedules: make(map[primitive.ObjectID]*domain.TrainingSchedule),
	}
}

var _ repository.TrainingScheduleRepository = (*TrainingScheduleRepository)(nil)

func (r *TrainingScheduleRepository) Create(_ context.Context, ts *domain.TrainingSchedule) (primitive.ObjectID, error) {
	if ts.AthleteID == primitive.NilObjectID || ts.PlanID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("schedule requires athleteId and planId")
	}
	if ts.Actuals == nil {
		ts.Actuals = schedule.Log{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	ts.ID = primitive.NewObjectID()
	ts.Version = 0
	now := time.Now().UTC()
	ts.CreatedAt = now
	ts.UpdatedAt = now
	r.schedules[ts.ID] = copySchedule(ts)
	return ts.ID, nil
}

func (r *TrainingScheduleRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ts, ok := r.schedules[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copySchedule(ts), nil
}

func (r *TrainingScheduleRepository) GetByAthleteID(_ context.Context, athleteID primitive.ObjectID) ([]domain.TrainingSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var schedules []domain.TrainingSchedule
	for _, ts := range r.schedules {
		if ts.AthleteID != athleteID {
			continue
		}
		c := copySchedule(ts)
		c.Targets = nil
		schedules = append(schedules, *c)
	}
	sort.Slice(schedules, func(i, j int) bool {
		if !schedules[i].StartDate.Equal(schedules[j].StartDate) {
			return schedules[i].StartDate.After(schedules[j].StartDate)
		}
		return schedules[i].CreatedAt.After(schedules[j].CreatedAt)
	})
	return schedules, nil
}

func (r *TrainingScheduleRepository) UpdateActuals(_ context.Context, id primitive.ObjectID, expectedVersion int64, actuals schedule.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ts, ok := r.schedules[id]
	if !ok {
		return repository.ErrNotFound
	}
	if ts.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	ts.Actuals = actuals.Clone()
	if ts.Actuals == nil {
		ts.Actuals = schedule.Log{}
	}
	ts.Version++
	ts.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *TrainingScheduleRepository) Delete(_ context.Context, id, athleteID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ts, ok := r.schedules[id]
	if !ok || ts.AthleteID != athleteID {
		return repository.ErrNotFound
	}
	delete(r.schedules, id)
	return nil
}
