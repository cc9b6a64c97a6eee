package memory_test

import (
	"context"
	"testing"
	"time"

	"alcyxob/training-tracker/internal/domain"
	"alcyxob/training-tracker/internal/repository"
	"alcyxob/training-tracker/internal/repository/memory"
	"alcyxob/training-tracker/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	u := &domain.User{Email: "a@b.c", PasswordHash: "x", Role: domain.RoleAthlete}
	id, err := repo.Create(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)

	_, err = repo.Create(ctx, &domain.User{Email: "a@b.c", PasswordHash: "y", Role: domain.RoleCoach})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := repo.GetByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	_, err = repo.GetByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestExerciseRepository_ListSortedByName(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewExerciseRepository()
	author := primitive.NewObjectID()

	for _, name := range []string{"squat", "bench", "plank"} {
		_, err := repo.Create(ctx, &domain.Exercise{Name: name, AuthorID: author})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &domain.Exercise{Name: "bench", AuthorID: author})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "bench", list[0].Name)
	assert.Equal(t, "plank", list[1].Name)
	assert.Equal(t, "squat", list[2].Name)
}

func TestTrainingPlanRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTrainingPlanRepository()

	plan := &domain.TrainingPlan{
		AuthorID:  primitive.NewObjectID(),
		Name:      "base",
		Exercises: schedule.Plan{"squat": {StartingAmount: 10}},
	}
	id, err := repo.Create(ctx, plan)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	got.Exercises["bench"] = schedule.Progression{StartingAmount: 5}

	again, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, again.Exercises, 1)

	require.NoError(t, repo.Update(ctx, got))
	again, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, again.Exercises, 2)

	require.NoError(t, repo.Delete(ctx, id))
	assert.ErrorIs(t, repo.Delete(ctx, id), repository.ErrNotFound)
}

func TestTrainingScheduleRepository_UpdateActualsVersion(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTrainingScheduleRepository()
	athlete := primitive.NewObjectID()

	ts := &domain.TrainingSchedule{AthleteID: athlete, PlanID: primitive.NewObjectID()}
	id, err := repo.Create(ctx, ts)
	require.NoError(t, err)

	actuals := schedule.Log{"2024-01-01": {"squat": {Amount: 10}}}
	require.NoError(t, repo.UpdateActuals(ctx, id, 0, actuals))
	assert.ErrorIs(t, repo.UpdateActuals(ctx, id, 0, schedule.Log{}), repository.ErrVersionConflict)
	assert.ErrorIs(t, repo.UpdateActuals(ctx, primitive.NewObjectID(), 0, schedule.Log{}), repository.ErrNotFound)

	// the stored log is not shared with the caller
	actuals["2024-01-01"]["squat"] = schedule.Volume{Amount: 99}

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, 10.0, got.Actuals["2024-01-01"]["squat"].Amount)
}

func TestTrainingScheduleRepository_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTrainingScheduleRepository()
	athlete := primitive.NewObjectID()
	other := primitive.NewObjectID()

	older := &domain.TrainingSchedule{AthleteID: athlete, PlanID: primitive.NewObjectID(), StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &domain.TrainingSchedule{AthleteID: athlete, PlanID: primitive.NewObjectID(), StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}
	for _, ts := range []*domain.TrainingSchedule{older, newer, {AthleteID: other, PlanID: primitive.NewObjectID()}} {
		_, err := repo.Create(ctx, ts)
		require.NoError(t, err)
	}

	list, err := repo.GetByAthleteID(ctx, athlete)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	assert.ErrorIs(t, repo.Delete(ctx, older.ID, other), repository.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, older.ID, athlete))
	_, err = repo.GetByID(ctx, older.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActivityRepository_NewestDateFirst(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewActivityRepository()
	scheduleID := primitive.NewObjectID()

	for _, d := range []int{1, 3, 2} {
		_, err := repo.Create(ctx, &domain.ActivityRecord{
			ScheduleID: scheduleID,
			Exercise:   "squat",
			Date:       time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &domain.ActivityRecord{ScheduleID: primitive.NewObjectID(), Exercise: "squat"})
	require.NoError(t, err)

	records, err := repo.GetByScheduleID(ctx, scheduleID)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 3, records[0].Date.Day())
	assert.Equal(t, 1, records[2].Date.Day())

	require.NoError(t, repo.DeleteByScheduleID(ctx, scheduleID))
	records, err = repo.GetByScheduleID(ctx, scheduleID)
	require.NoError(t, err)
	assert.Empty(t, records)
}
