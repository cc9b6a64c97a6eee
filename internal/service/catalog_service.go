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
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExerciseExists   = errors.New("exercise with this name already exists")
)

// ExerciseInput carries the fields a coach provides for a catalog entry.
type ExerciseInput struct {
	Name            string
	Description     string
	Kind            schedule.Kind
	PrimaryMuscle   domain.Muscle
	SecondaryMuscle *domain.Muscle
	Equipment       []string
}

// SimilarExercises splits the catalog around one exercise: entries sharing
// a muscle focus with it and all the others. Both lists are sorted by name.
type SimilarExercises struct {
	Exercise *domain.Exercise  `json:"exercise"`
	Similar  []domain.Exercise `json:"similar"`
	Other    []domain.Exercise `json:"other"`
}

type CatalogService interface {
	CreateExercise(ctx context.Context, authorID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error)
	GetExercise(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetExerciseByName(ctx context.Context, name string) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	SimilarExercises(ctx context.Context, id primitive.ObjectID) (*SimilarExercises, error)
}

type catalogService struct {
	exerciseRepo repository.ExerciseRepository
}

func NewCatalogService(exerciseRepo repository.ExerciseRepository) CatalogService {
	return &catalogService{exerciseRepo: exerciseRepo}
}

func validateMuscle(m domain.Muscle, field string) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: %s name is required", ErrValidationFailed, field)
	}
	if !m.Group.Valid() {
		return fmt.Errorf("%w: %s group %q is unknown", ErrValidationFailed, field, m.Group)
	}
	return nil
}

func (in ExerciseInput) validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("%w: exercise name is required", ErrValidationFailed)
	}
	// names are stored as document keys in plans and schedules
	if strings.HasPrefix(name, "$") || strings.Contains(name, ".") {
		return fmt.Errorf("%w: exercise name %q must not start with '$' or contain '.'", ErrValidationFailed, name)
	}
	if !in.Kind.Valid() {
		return fmt.Errorf("%w: kind must be strength, isometric or cardio", ErrValidationFailed)
	}
	if err := validateMuscle(in.PrimaryMuscle, "primary muscle"); err != nil {
		return err
	}
	if in.SecondaryMuscle != nil {
		return validateMuscle(*in.SecondaryMuscle, "secondary muscle")
	}
	return nil
}

// normalizeEquipment trims entries, drops blanks and duplicates.
func normalizeEquipment(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func (s *catalogService) CreateExercise(ctx context.Context, authorID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error) {
	if authorID == primitive.NilObjectID {
		return nil, errors.New("author ID is required to create an exercise")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	exercise := &domain.Exercise{
		AuthorID:        authorID,
		Name:            strings.TrimSpace(input.Name),
		Description:     input.Description,
		Kind:            input.Kind,
		PrimaryMuscle:   input.PrimaryMuscle,
		SecondaryMuscle: input.SecondaryMuscle,
		Equipment:       normalizeEquipment(input.Equipment),
	}

	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrExerciseExists
		}
		return nil, err
	}

	log.WithFields(log.Fields{"exercise": exercise.Name, "kind": exercise.Kind}).Info("exercise added to catalog")
	return exercise, nil
}

func (s *catalogService) GetExercise(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *catalogService) GetExerciseByName(ctx context.Context, name string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrExerciseNotFound, name)
		}
		return nil, err
	}
	return exercise, nil
}

func (s *catalogService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	return exercises, nil
}

func (s *catalogService) SimilarExercises(ctx context.Context, id primitive.ObjectID) (*SimilarExercises, error) {
	exercise, err := s.GetExercise(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := s.exerciseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &SimilarExercises{
		Exercise: exercise,
		Similar:  []domain.Exercise{},
		Other:    []domain.Exercise{},
	}
	for i := range all {
		candidate := all[i]
		if candidate.ID == exercise.ID {
			continue
		}
		if exercise.SharesMuscleWith(&candidate) {
			result.Similar = append(result.Similar, candidate)
		} else {
			result.Other = append(result.Other, candidate)
		}
	}
	byName := func(list []domain.Exercise) func(i, j int) bool {
		return func(i, j int) bool { return list[i].Name < list[j].Name }
	}
	sort.Slice(result.Similar, byName(result.Similar))
	sort.Slice(result.Other, byName(result.Other))
	return result, nil
}
