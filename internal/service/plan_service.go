package service

import (
	"alcyxob/training-tracker/internal/domain"
	"alcyxob/training-tracker/internal/repository"
	"alcyxob/training-tracker/internal/schedule"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPlanNotFound         = errors.New("training plan not found")
	ErrPlanAccessDenied     = errors.New("access denied to modify this training plan")
	ErrPlanExerciseNotFound = errors.New("exercise is not part of the training plan")
)

type PlanService interface {
	CreatePlan(ctx context.Context, authorID primitive.ObjectID, name, description string) (*domain.TrainingPlan, error)
	GetPlan(ctx context.Context, planID primitive.ObjectID) (*domain.TrainingPlan, error)
	ListPlans(ctx context.Context) ([]domain.TrainingPlan, error)
	// SetExercise adds the exercise to the plan or replaces its progression.
	SetExercise(ctx context.Context, authorID, planID primitive.ObjectID, exercise string, p schedule.Progression) (*domain.TrainingPlan, error)
	RemoveExercise(ctx context.Context, authorID, planID primitive.ObjectID, exercise string) (*domain.TrainingPlan, error)
	// Equipment lists the distinct equipment needed by the plan's exercises, sorted.
	Equipment(ctx context.Context, planID primitive.ObjectID) ([]string, error)
	DeletePlan(ctx context.Context, authorID, planID primitive.ObjectID) error
}

type planService struct {
	planRepo     repository.TrainingPlanRepository
	exerciseRepo repository.ExerciseRepository
	locks        *keyedMutex
}

func NewPlanService(planRepo repository.TrainingPlanRepository, exerciseRepo repository.ExerciseRepository) PlanService {
	return &planService{
		planRepo:     planRepo,
		exerciseRepo: exerciseRepo,
		locks:        newKeyedMutex(),
	}
}

// validateProgression checks a progression entered for a plan.
func validateProgression(p schedule.Progression) error {
	if p.StartingAmount < 1 {
		return fmt.Errorf("%w: starting amount must be at least 1", ErrValidationFailed)
	}
	if p.AmountPerWeek < 0 || p.StartingLoad < 0 || p.LoadPerWeek < 0 {
		return fmt.Errorf("%w: progression values cannot be negative", ErrValidationFailed)
	}
	return nil
}

func (s *planService) CreatePlan(ctx context.Context, authorID primitive.ObjectID, name, description string) (*domain.TrainingPlan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: plan name is required", ErrValidationFailed)
	}

	plan := &domain.TrainingPlan{
		AuthorID:    authorID,
		Name:        name,
		Description: description,
		Exercises:   schedule.Plan{},
	}
	if _, err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"plan": plan.ID.Hex(), "name": plan.Name}).Info("training plan created")
	return plan, nil
}

func (s *planService) GetPlan(ctx context.Context, planID primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) ListPlans(ctx context.Context) ([]domain.TrainingPlan, error) {
	plans, err := s.planRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []domain.TrainingPlan{}
	}
	return plans, nil
}

// ownedPlan loads a plan and checks the caller authored it.
func (s *planService) ownedPlan(ctx context.Context, authorID, planID primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan.AuthorID != authorID {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}

func (s *planService) SetExercise(ctx context.Context, authorID, planID primitive.ObjectID, exercise string, p schedule.Progression) (*domain.TrainingPlan, error) {
	if err := validateProgression(p); err != nil {
		return nil, err
	}
	if _, err := s.exerciseRepo.GetByName(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrExerciseNotFound, exercise)
		}
		return nil, err
	}

	unlock := s.locks.Lock(planID)
	defer unlock()

	plan, err := s.ownedPlan(ctx, authorID, planID)
	if err != nil {
		return nil, err
	}
	plan.Exercises[exercise] = p
	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	log.WithFields(log.Fields{"plan": planID.Hex(), "exercise": exercise}).Debug("plan exercise set")
	return plan, nil
}

func (s *planService) RemoveExercise(ctx context.Context, authorID, planID primitive.ObjectID, exercise string) (*domain.TrainingPlan, error) {
	unlock := s.locks.Lock(planID)
	defer unlock()

	plan, err := s.ownedPlan(ctx, authorID, planID)
	if err != nil {
		return nil, err
	}
	if _, ok := plan.Exercises[exercise]; !ok {
		return nil, ErrPlanExerciseNotFound
	}
	delete(plan.Exercises, exercise)
	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) Equipment(ctx context.Context, planID primitive.ObjectID) ([]string, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, name := range plan.Exercises.Exercises() {
		exercise, err := s.exerciseRepo.GetByName(ctx, name)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Warnf("plan %s refers to unknown exercise %q", planID.Hex(), name)
				continue
			}
			return nil, err
		}
		for _, item := range exercise.Equipment {
			seen[item] = struct{}{}
		}
	}

	equipment := make([]string, 0, len(seen))
	for item := range seen {
		equipment = append(equipment, item)
	}
	sort.Strings(equipment)
	return equipment, nil
}

func (s *planService) DeletePlan(ctx context.Context, authorID, planID primitive.ObjectID) error {
	unlock := s.locks.Lock(planID)
	defer unlock()

	if _, err := s.ownedPlan(ctx, authorID, planID); err != nil {
		return err
	}
	if err := s.planRepo.Delete(ctx, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	log.WithField("plan", planID.Hex()).Info("training plan deleted")
	return nil
}
