package schedule_test

import (
	"testing"

	"alcyxob/training-tracker/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const athlete = "athlete-1"

func mondayWednesdaySchedule(t *testing.T) *schedule.Schedule {
	t.Helper()
	s, err := schedule.New(athlete,
		schedule.Plan{"squat": {StartingAmount: 10, AmountPerWeek: 0, StartingLoad: 50, LoadPerWeek: 0}},
		schedule.Config{
			StartDate:     date(t, "2024-01-01"),
			DurationWeeks: 1,
			TrainingDays:  schedule.Weekdays{true, false, true, false, false, false, false},
		},
	)
	require.NoError(t, err)
	return s
}

func TestSchedule_EndToEnd(t *testing.T) {
	s := mondayWednesdaySchedule(t)

	target, err := s.TargetAbsolute(date(t, "2024-01-01"), "squat")
	require.NoError(t, err)
	assert.Equal(t, schedule.Volume{Amount: 10, Load: 50}, target)

	target, err = s.TargetAbsolute(date(t, "2024-01-02"), "squat")
	require.NoError(t, err)
	assert.Equal(t, schedule.Volume{}, target)

	require.NoError(t, s.RecordActivity(schedule.NewStrength("squat", date(t, "2024-01-01"), athlete, 12, 55)))
	assert.Equal(t, schedule.Volume{Amount: 12, Load: 55}, s.ActualAbsolute(date(t, "2024-01-01"), "squat"))

	view := s.TargetVsActualAbsolute(date(t, "2024-01-01"))
	require.Contains(t, view, "squat")
	assert.Equal(t, schedule.Volume{Amount: 2, Load: 5}, view["squat"].Gap)
}

func TestSchedule_TargetAbsolute(t *testing.T) {
	s := mondayWednesdaySchedule(t)

	_, err := s.TargetAbsolute(date(t, "2024-01-09"), "squat")
	assert.ErrorIs(t, err, schedule.ErrOutOfRange)

	// exercises outside the plan never fail
	v, err := s.TargetAbsolute(date(t, "2024-01-01"), "deadlift")
	require.NoError(t, err)
	assert.Equal(t, schedule.Volume{}, v)
}

func TestSchedule_ActualAbsolute_Missing(t *testing.T) {
	s := mondayWednesdaySchedule(t)
	assert.Equal(t, schedule.Volume{}, s.ActualAbsolute(date(t, "2024-01-01"), "squat"))

	require.NoError(t, s.RecordActivity(schedule.NewStrength("squat", date(t, "2024-01-01"), athlete, 12, 55)))
	assert.Equal(t, schedule.Volume{}, s.ActualAbsolute(date(t, "2024-01-01"), "bench"))
	assert.Equal(t, schedule.Volume{}, s.ActualAbsolute(date(t, "2030-01-01"), "squat"))
}

func TestSchedule_TargetCumulative(t *testing.T) {
	s := mondayWednesdaySchedule(t)

	assert.Equal(t, 0.0, s.TargetCumulative(date(t, "2023-12-31"), "squat"))
	assert.Equal(t, 10.0, s.TargetCumulative(date(t, "2024-01-01"), "squat"))
	assert.Equal(t, 10.0, s.TargetCumulative(date(t, "2024-01-02"), "squat"))
	assert.Equal(t, 20.0, s.TargetCumulative(date(t, "2024-01-03"), "squat"))
	// 2024-01-08 is the inclusive end date and a Monday
	assert.Equal(t, 30.0, s.TargetCumulative(date(t, "2024-01-08"), "squat"))
	// clamped, no extrapolation past the end
	assert.Equal(t, 30.0, s.TargetCumulative(date(t, "2024-06-01"), "squat"))
	assert.Equal(t, 0.0, s.TargetCumulative(date(t, "2024-01-08"), "deadlift"))
}

func TestSchedule_TargetCumulative_Monotonic(t *testing.T) {
	s, err := schedule.New(athlete,
		schedule.Plan{"row": {StartingAmount: 8, AmountPerWeek: 1.5, StartingLoad: 30, LoadPerWeek: 2}},
		schedule.Config{StartDate: date(t, "2024-03-06"), DurationWeeks: 6, TrainingDays: schedule.Weekdays{false, true, false, true, false, true, false}},
	)
	require.NoError(t, err)

	prev := -1.0
	for _, d := range s.Targets.Dates() {
		cur := s.TargetCumulative(d, "row")
		assert.GreaterOrEqual(t, cur, prev, schedule.DateKey(d))
		prev = cur
	}
}

func TestSchedule_ActualCumulative(t *testing.T) {
	s := mondayWednesdaySchedule(t)
	assert.Equal(t, 0.0, s.ActualCumulative(date(t, "2024-01-08"), "squat"))

	require.NoError(t, s.RecordActivity(schedule.NewStrength("squat", date(t, "2024-01-01"), athlete, 12, 55)))
	require.NoError(t, s.RecordActivity(schedule.NewStrength("squat", date(t, "2024-01-03"), athlete, 8, 55)))
	require.NoError(t, s.RecordActivity(schedule.NewCardio("rowing", date(t, "2024-01-02"), athlete, 600)))

	assert.Equal(t, 0.0, s.ActualCumulative(date(t, "2023-12-31"), "squat"))
	assert.Equal(t, 12.0, s.ActualCumulative(date(t, "2024-01-02"), "squat"))
	assert.Equal(t, 20.0, s.ActualCumulative(date(t, "2024-01-03"), "squat"))
	assert.Equal(t, 20.0, s.ActualCumulative(date(t, "2025-01-01"), "squat"))
	assert.Equal(t, 600.0, s.ActualCumulative(date(t, "2024-01-08"), "rowing"))
}

func TestSchedule_ExerciseIDs_IncludesOffPlanActivities(t *testing.T) {
	s := mondayWednesdaySchedule(t)
	assert.Equal(t, []string{"squat"}, s.ExerciseIDs())

	require.NoError(t, s.RecordActivity(schedule.NewIsometric("plank", date(t, "2024-01-02"), athlete, 90)))
	assert.Equal(t, []string{"plank", "squat"}, s.ExerciseIDs())
}

func TestSchedule_TargetVsActualAbsolute_OutOfRange(t *testing.T) {
	s := mondayWednesdaySchedule(t)
	require.NoError(t, s.RecordActivity(schedule.NewIsometric("plank", date(t, "2024-01-02"), athlete, 90)))

	view := s.TargetVsActualAbsolute(date(t, "2024-02-01"))
	require.Len(t, view, 2)
	for _, cmp := range view {
		assert.Equal(t, schedule.Comparison{}, cmp)
	}

	view = s.TargetVsActualAbsolute(date(t, "2024-01-02"))
	assert.Equal(t, schedule.Comparison{
		Actual: schedule.Volume{Amount: 90},
		Gap:    schedule.Volume{Amount: 90},
	}, view["plank"])
	assert.Equal(t, schedule.Comparison{}, view["squat"])
}

func TestSchedule_TargetVsActualCumulative(t *testing.T) {
	s := mondayWednesdaySchedule(t)
	require.NoError(t, s.RecordActivity(schedule.NewStrength("squat", date(t, "2024-01-01"), athlete, 7, 50)))
	require.NoError(t, s.RecordActivity(schedule.NewIsometric("plank", date(t, "2024-01-02"), athlete, 90)))

	view := s.TargetVsActualCumulative(date(t, "2024-01-03"))
	assert.Equal(t, schedule.CumulativeComparison{Target: 20, Actual: 7, Gap: -13}, view["squat"])
	assert.Equal(t, schedule.CumulativeComparison{Target: 0, Actual: 90, Gap: 90}, view["plank"])
}

func TestSchedule_TargetsOn(t *testing.T) {
	s := mondayWednesdaySchedule(t)

	targets, err := s.TargetsOn(date(t, "2024-01-03"))
	require.NoError(t, err)
	assert.Equal(t, map[string]schedule.DailyTarget{"squat": {CumulativeAmount: 20, Load: 50}}, targets)

	targets, err = s.TargetsOn(date(t, "2024-01-04"))
	require.NoError(t, err)
	assert.Equal(t, schedule.DailyTarget{CumulativeAmount: 20, Load: 0}, targets["squat"])

	_, err = s.TargetsOn(date(t, "2024-01-09"))
	assert.ErrorIs(t, err, schedule.ErrOutOfRange)
}

func TestSchedule_RecordActivity_Overwrites(t *testing.T) {
	s := mondayWednesdaySchedule(t)
	a := schedule.NewStrength("squat", date(t, "2024-01-01"), athlete, 12, 55)

	require.NoError(t, s.RecordActivity(a))
	once := s.Actuals.Clone()
	require.NoError(t, s.RecordActivity(a))
	assert.Equal(t, once, s.Actuals)

	require.NoError(t, s.RecordActivity(schedule.NewStrength("squat", date(t, "2024-01-01"), athlete, 5, 60)))
	assert.Equal(t, schedule.Volume{Amount: 5, Load: 60}, s.ActualAbsolute(date(t, "2024-01-01"), "squat"))
	assert.Equal(t, 1, s.RecordedCount())
}

func TestSchedule_RecordActivity_DurationHasNoLoad(t *testing.T) {
	s := mondayWednesdaySchedule(t)
	require.NoError(t, s.RecordActivity(schedule.NewCardio("rowing", date(t, "2024-01-05"), athlete, 1200)))
	assert.Equal(t, schedule.Volume{Amount: 1200}, s.ActualAbsolute(date(t, "2024-01-05"), "rowing"))
}

func TestSchedule_RecordActivity_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		act     schedule.Activity
		wantErr error
	}{
		{
			name:    "before start",
			act:     schedule.NewStrength("squat", date(t, "2023-12-31"), athlete, 10, 50),
			wantErr: schedule.ErrOutOfRange,
		},
		{
			name:    "after end",
			act:     schedule.NewStrength("squat", date(t, "2024-01-09"), athlete, 10, 50),
			wantErr: schedule.ErrOutOfRange,
		},
		{
			name:    "other athlete",
			act:     schedule.NewStrength("squat", date(t, "2024-01-01"), "athlete-2", 10, 50),
			wantErr: schedule.ErrAthleteMismatch,
		},
		{
			name:    "unknown kind",
			act:     schedule.Activity{Kind: "yoga", Exercise: "squat", Date: date(t, "2024-01-01"), Athlete: athlete},
			wantErr: schedule.ErrUnsupportedKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mondayWednesdaySchedule(t)
			require.NoError(t, s.RecordActivity(schedule.NewStrength("squat", date(t, "2024-01-03"), athlete, 9, 50)))
			before := s.Actuals.Clone()

			err := s.RecordActivity(tt.act)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, s.Actuals)
		})
	}
}

func TestSchedule_CheckActivity_Order(t *testing.T) {
	s := mondayWednesdaySchedule(t)

	// a foreign athlete is reported before the date and the kind
	err := s.CheckActivity(schedule.Activity{Kind: "yoga", Exercise: "squat", Date: date(t, "2030-01-01"), Athlete: "athlete-2"})
	assert.ErrorIs(t, err, schedule.ErrAthleteMismatch)

	// then the date before the kind
	err = s.CheckActivity(schedule.Activity{Kind: "yoga", Exercise: "squat", Date: date(t, "2030-01-01"), Athlete: athlete})
	assert.ErrorIs(t, err, schedule.ErrOutOfRange)

	assert.NoError(t, s.CheckActivity(schedule.NewCardio("swim", date(t, "2024-01-02"), athlete, 600)))
	assert.Empty(t, s.Actuals)
}

func TestSchedule_RecordedExercises(t *testing.T) {
	s := mondayWednesdaySchedule(t)
	assert.Empty(t, s.RecordedExercises())
	assert.Equal(t, 0, s.RecordedCount())

	require.NoError(t, s.RecordActivity(schedule.NewStrength("squat", date(t, "2024-01-01"), athlete, 12, 55)))
	require.NoError(t, s.RecordActivity(schedule.NewStrength("squat", date(t, "2024-01-03"), athlete, 12, 55)))
	require.NoError(t, s.RecordActivity(schedule.NewIsometric("plank", date(t, "2024-01-03"), athlete, 60)))

	assert.Equal(t, []string{"plank", "squat"}, s.RecordedExercises())
	assert.Equal(t, 3, s.RecordedCount())
}

func TestSchedule_NewSnapshotsPlan(t *testing.T) {
	plan := schedule.Plan{"squat": {StartingAmount: 10, StartingLoad: 50}}
	s, err := schedule.New(athlete, plan, schedule.Config{StartDate: date(t, "2024-01-01"), DurationWeeks: 1, TrainingDays: everyDay()})
	require.NoError(t, err)

	plan["squat"] = schedule.Progression{StartingAmount: 100, StartingLoad: 500}
	plan["bench"] = schedule.Progression{StartingAmount: 5}

	target, err := s.TargetAbsolute(date(t, "2024-01-01"), "squat")
	require.NoError(t, err)
	assert.Equal(t, schedule.Volume{Amount: 10, Load: 50}, target)
	assert.Equal(t, []string{"squat"}, s.ExerciseIDs())
}

func TestActivity_Volume(t *testing.T) {
	v, err := schedule.NewStrength("squat", date(t, "2024-01-01"), athlete, 12, 62.5).Volume()
	require.NoError(t, err)
	assert.Equal(t, schedule.Volume{Amount: 12, Load: 62.5}, v)

	v, err = schedule.NewIsometric("plank", date(t, "2024-01-01"), athlete, 45).Volume()
	require.NoError(t, err)
	assert.Equal(t, schedule.Volume{Amount: 45}, v)

	_, err = schedule.Activity{Kind: "swim"}.Volume()
	assert.ErrorIs(t, err, schedule.ErrUnsupportedKind)
	assert.False(t, schedule.Kind("swim").Valid())
	assert.True(t, schedule.KindCardio.Valid())
}
