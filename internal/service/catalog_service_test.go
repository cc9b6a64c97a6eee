package service_test

import (
	"context"
	"testing"

	"alcyxob/training-tracker/internal/domain"
	"alcyxob/training-tracker/internal/schedule"
	"alcyxob/training-tracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	quads     = domain.Muscle{Name: "Quadriceps", Group: domain.MuscleLegs}
	glutes    = domain.Muscle{Name: "Gluteus maximus", Group: domain.MuscleGlutes}
	pecs      = domain.Muscle{Name: "Pectoralis major", Group: domain.MuscleChest}
	abs       = domain.Muscle{Name: "Rectus abdominis", Group: domain.MuscleCore}
	hearts    = domain.Muscle{Name: "Heart", Group: domain.MuscleCore}
	someCoach = primitive.NewObjectID()
)

func addExercise(t *testing.T, f *fixture, name string, kind schedule.Kind, primary domain.Muscle, secondary *domain.Muscle, equipment ...string) *domain.Exercise {
	t.Helper()
	ex, err := f.catalog.CreateExercise(context.Background(), someCoach, service.ExerciseInput{
		Name:            name,
		Kind:            kind,
		PrimaryMuscle:   primary,
		SecondaryMuscle: secondary,
		Equipment:       equipment,
	})
	require.NoError(t, err)
	return ex
}

func TestCatalogService_CreateExercise(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ex := addExercise(t, f, "squat", schedule.KindStrength, quads, &glutes, "barbell", " rack ", "barbell", "")
	assert.Equal(t, []string{"barbell", "rack"}, ex.Equipment)

	got, err := f.catalog.GetExerciseByName(ctx, "squat")
	require.NoError(t, err)
	assert.Equal(t, ex.ID, got.ID)

	_, err = f.catalog.CreateExercise(ctx, someCoach, service.ExerciseInput{Name: "squat", Kind: schedule.KindStrength, PrimaryMuscle: quads})
	assert.ErrorIs(t, err, service.ErrExerciseExists)

	_, err = f.catalog.GetExercise(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, service.ErrExerciseNotFound)
}

func TestCatalogService_CreateExercise_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for name, in := range map[string]service.ExerciseInput{
		"no name":       {Kind: schedule.KindCardio, PrimaryMuscle: hearts},
		"bad kind":      {Name: "x", Kind: "yoga", PrimaryMuscle: hearts},
		"no muscle":     {Name: "x", Kind: schedule.KindCardio},
		"bad group":     {Name: "x", Kind: schedule.KindCardio, PrimaryMuscle: domain.Muscle{Name: "Heart", Group: "Organs"}},
		"bad secondary": {Name: "x", Kind: schedule.KindCardio, PrimaryMuscle: hearts, SecondaryMuscle: &domain.Muscle{}},
		"dollar name":   {Name: " $where", Kind: schedule.KindCardio, PrimaryMuscle: hearts},
		"dotted name":   {Name: "incline.press", Kind: schedule.KindStrength, PrimaryMuscle: pecs},
	} {
		_, err := f.catalog.CreateExercise(ctx, someCoach, in)
		assert.ErrorIs(t, err, service.ErrValidationFailed, name)
	}

	exercises, err := f.catalog.ListExercises(ctx)
	require.NoError(t, err)
	assert.Empty(t, exercises)

	// a '$' inside the name is fine
	addExercise(t, f, "farmer's carry $", schedule.KindCardio, hearts, nil)
}

func TestCatalogService_SimilarExercises(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	squat := addExercise(t, f, "squat", schedule.KindStrength, quads, &glutes)
	addExercise(t, f, "lunge", schedule.KindStrength, quads, nil)
	addExercise(t, f, "hip thrust", schedule.KindStrength, glutes, nil)
	addExercise(t, f, "bench press", schedule.KindStrength, pecs, nil)
	addExercise(t, f, "plank", schedule.KindIsometric, abs, nil)

	result, err := f.catalog.SimilarExercises(ctx, squat.ID)
	require.NoError(t, err)
	assert.Equal(t, "squat", result.Exercise.Name)

	names := func(list []domain.Exercise) []string {
		out := make([]string, 0, len(list))
		for _, e := range list {
			out = append(out, e.Name)
		}
		return out
	}
	assert.Equal(t, []string{"hip thrust", "lunge"}, names(result.Similar))
	assert.Equal(t, []string{"bench press", "plank"}, names(result.Other))
}
