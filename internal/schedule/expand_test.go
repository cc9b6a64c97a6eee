package schedule_test

import (
	"testing"

	"alcyxob/training-tracker/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func everyDay() schedule.Weekdays {
	return schedule.Weekdays{true, true, true, true, true, true, true}
}

func TestExpand_OneEntryPerDay(t *testing.T) {
	plan := schedule.Plan{"squat": {StartingAmount: 10}}

	for _, weeks := range []int{1, 2, 5, 12} {
		cfg := schedule.Config{StartDate: date(t, "2024-02-26"), DurationWeeks: weeks, TrainingDays: everyDay()}
		cal, err := schedule.Expand(plan, cfg)
		require.NoError(t, err)
		assert.Len(t, cal, weeks*7+1)

		dates := cal.Dates()
		require.Len(t, dates, weeks*7+1)
		assert.Equal(t, cfg.StartDate, dates[0])
		assert.Equal(t, cfg.EndDate(), dates[len(dates)-1])
	}
}

func TestExpand_NonTrainingDaysAreZero(t *testing.T) {
	plan := schedule.Plan{
		"squat": {StartingAmount: 10, AmountPerWeek: 1, StartingLoad: 50, LoadPerWeek: 2.5},
		"plank": {StartingAmount: 60, AmountPerWeek: 10},
	}
	cfg := schedule.Config{
		StartDate:     date(t, "2024-01-01"),
		DurationWeeks: 2,
		TrainingDays:  schedule.Weekdays{true, false, true, false, false, false, false},
	}

	cal, err := schedule.Expand(plan, cfg)
	require.NoError(t, err)

	for _, d := range cal.Dates() {
		entry := cal[schedule.DateKey(d)]
		require.Len(t, entry, 2)
		if cfg.IsTrainingDay(d) {
			continue
		}
		for name, v := range entry {
			assert.Equal(t, schedule.Volume{}, v, "%s on %s", name, schedule.DateKey(d))
		}
	}
}

func TestExpand_LinearProgression(t *testing.T) {
	plan := schedule.Plan{"bench": {StartingAmount: 10, AmountPerWeek: 2, StartingLoad: 20, LoadPerWeek: 5}}
	cfg := schedule.Config{StartDate: date(t, "2024-01-01"), DurationWeeks: 4, TrainingDays: everyDay()}

	cal, err := schedule.Expand(plan, cfg)
	require.NoError(t, err)

	// 2024-01-15 is the first day of week 3
	assert.Equal(t, schedule.Volume{Amount: 14, Load: 30}, cal["2024-01-15"]["bench"])
	assert.Equal(t, schedule.Volume{Amount: 10, Load: 20}, cal["2024-01-07"]["bench"])
	assert.Equal(t, schedule.Volume{Amount: 12, Load: 25}, cal["2024-01-08"]["bench"])
	// the end date opens week 5
	assert.Equal(t, schedule.Volume{Amount: 18, Load: 40}, cal["2024-01-29"]["bench"])
}

func TestExpand_EmptyPlan(t *testing.T) {
	cfg := schedule.Config{StartDate: date(t, "2024-01-01"), DurationWeeks: 1, TrainingDays: everyDay()}

	cal, err := schedule.Expand(schedule.Plan{}, cfg)
	require.NoError(t, err)
	assert.Len(t, cal, 8)
	for _, entry := range cal {
		assert.Empty(t, entry)
	}
}

func TestExpand_InvalidConfig(t *testing.T) {
	_, err := schedule.Expand(schedule.Plan{}, schedule.Config{StartDate: date(t, "2024-01-01")})
	assert.ErrorIs(t, err, schedule.ErrInvalidConfig)
}

func TestCalendar_CloneIsDeep(t *testing.T) {
	cal := schedule.Calendar{"2024-01-01": {"squat": {Amount: 10}}}
	c := cal.Clone()
	c["2024-01-01"]["squat"] = schedule.Volume{Amount: 99}
	assert.Equal(t, 10.0, cal["2024-01-01"]["squat"].Amount)
}

func TestPlan_Exercises(t *testing.T) {
	plan := schedule.Plan{"squat": {}, "bench": {}, "deadlift": {}}
	assert.Equal(t, []string{"bench", "deadlift", "squat"}, plan.Exercises())
}
