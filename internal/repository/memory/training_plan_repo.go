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

type TrainingPlanRepository struct {
	mu    sync.RWMutex
	plans map[primitive.ObjectID]*domain.TrainingPlan
}

func NewTrainingPlanRepository() *TrainingPlanRepository {
	return &TrainingPlanRepository{
		plans: make(map[primitive.ObjectID]*domain.TrainingPlan),
	}
}

var _ repository.TrainingPlanRepository = (*TrainingPlanRepository)(nil)

func (r *TrainingPlanRepository) Create(_ context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	if plan.AuthorID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires authorId and name")
	}
	if plan.Exercises == nil {
		plan.Exercises = schedule.Plan{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	r.plans[plan.ID] = copyPlan(plan)
	return plan.ID, nil
}

func (r *TrainingPlanRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyPlan(p), nil
}

func (r *TrainingPlanRepository) List(_ context.Context) ([]domain.TrainingPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plans := make([]domain.TrainingPlan, 0, len(r.plans))
	for _, p := range r.plans {
		plans = append(plans, *copyPlan(p))
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].Name < plans[j].Name })
	return plans, nil
}

func (r *TrainingPlanRepository) Update(_ context.Context, plan *domain.TrainingPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("training plan ID is required for update")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.plans[plan.ID]
	if !ok {
		return repository.ErrNotFound
	}
	updated := copyPlan(plan)
	updated.AuthorID = stored.AuthorID
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.plans[plan.ID] = updated
	plan.UpdatedAt = updated.UpdatedAt
	return nil
}

func (r *TrainingPlanRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}
