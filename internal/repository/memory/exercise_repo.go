package memory

import (
	"alcyxob/training-tracker/internal/domain"
	"alcyxob/training-tracker/internal/repository"
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ExerciseRepository struct {
	mu        sync.RWMutex
	exercises map[primitive.ObjectID]*domain.Exercise
}

func NewExerciseRepository() *ExerciseRepository {
	return &ExerciseRepository{
		exercises: make(map[primitive.ObjectID]*domain.Exercise),
	}
}

var _ repository.ExerciseRepository = (*ExerciseRepository)(nil)

func (r *ExerciseRepository) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.Name == "" || exercise.AuthorID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("exercise name and author ID are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.exercises {
		if e.Name == exercise.Name {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}

	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	r.exercises[exercise.ID] = copyExercise(exercise)
	return exercise.ID, nil
}

func (r *ExerciseRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyExercise(e), nil
}

func (r *ExerciseRepository) GetByName(_ context.Context, name string) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.exercises {
		if e.Name == name {
			return copyExercise(e), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ExerciseRepository) List(_ context.Context) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exercises := make([]domain.Exercise, 0, len(r.exercises))
	for _, e := range r.exercises {
		exercises = append(exercises, *copyExercise(e))
	}
	sort.Slice(exercises, func(i, j int) bool { return exercises[i].Name < exercises[j].Name })
	return exercises, nil
}
