package repository

import (
	"alcyxob/training-tracker/internal/domain"
	"alcyxob/training-tracker/internal/schedule"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound        = RepositoryError("not found")
	ErrDuplicate       = RepositoryError("already exists")
	ErrUpdateFailed    = RepositoryError("update failed")
	ErrDeleteFailed    = RepositoryError("delete failed")
	ErrVersionConflict = RepositoryError("version conflict")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ExerciseRepository is the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error) // sorted by name
}

// TrainingPlanRepository is the plan catalog.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	List(ctx context.Context) ([]domain.TrainingPlan, error) // sorted by name
	Update(ctx context.Context, plan *domain.TrainingPlan) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TrainingScheduleRepository persists schedules, their targets and actuals as one unit.
type TrainingScheduleRepository interface {
	Create(ctx context.Context, ts *domain.TrainingSchedule) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingSchedule, error)
	GetByAthleteID(ctx context.Context, athleteID primitive.ObjectID) ([]domain.TrainingSchedule, error) // newest start first
	// UpdateActuals replaces the actuals of a schedule if its stored version
	// still equals expectedVersion, and bumps the version. Otherwise nothing
	// is written and ErrVersionConflict is returned.
	UpdateActuals(ctx context.Context, id primitive.ObjectID, expectedVersion int64, actuals schedule.Log) error
	Delete(ctx context.Context, id, athleteID primitive.ObjectID) error
}

// ActivityRepository keeps the history of recorded activities.
type ActivityRepository interface {
	Create(ctx context.Context, record *domain.ActivityRecord) (primitive.ObjectID, error)
	GetByScheduleID(ctx context.Context, scheduleID primitive.ObjectID) ([]domain.ActivityRecord, error) // newest date first
	DeleteByScheduleID(ctx context.Context, scheduleID primitive.ObjectID) error
}
