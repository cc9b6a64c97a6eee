package schedule

import (
	"sort"
	"time"
)

// Schedule is the snapshot a training schedule owns: its calendar config, the
// plan exercises captured at creation, the expanded targets and the actuals
// recorded so far. Later edits of the plan never reach an existing Schedule.
type Schedule struct {
	Athlete   string
	Config    Config
	Exercises []string
	Targets   Calendar
	Actuals   Log
}

// New validates cfg and expands plan into a fresh schedule for athlete.
func New(athlete string, plan Plan, cfg Config) (*Schedule, error) {
	targets, err := Expand(plan, cfg)
	if err != nil {
		return nil, err
	}
	cfg.StartDate = Day(cfg.StartDate)
	return &Schedule{
		Athlete:   athlete,
		Config:    cfg,
		Exercises: plan.Exercises(),
		Targets:   targets,
		Actuals:   Log{},
	}, nil
}

// Comparison is the per-day view of one exercise.
type Comparison struct {
	Target Volume `json:"target"`
	Actual Volume `json:"actual"`
	Gap    Volume `json:"gap"`
}

// CumulativeComparison is the running-total view of one exercise.
type CumulativeComparison struct {
	Target float64 `json:"target"`
	Actual float64 `json:"actual"`
	Gap    float64 `json:"gap"`
}

// DailyTarget is a plan exercise's running target amount together with the
// load due on that day.
type DailyTarget struct {
	CumulativeAmount float64 `json:"cumulativeAmount"`
	Load             float64 `json:"load"`
}

func (s *Schedule) StartDate() time.Time { return Day(s.Config.StartDate) }
func (s *Schedule) EndDate() time.Time   { return s.Config.EndDate() }

func (s *Schedule) IsTrainingDay(d time.Time) bool {
	return s.Config.IsTrainingDay(d)
}

func (s *Schedule) TrainingWeek(d time.Time) (int, error) {
	return s.Config.TrainingWeek(d)
}

func (s *Schedule) inPlan(exercise string) bool {
	for _, ex := range s.Exercises {
		if ex == exercise {
			return true
		}
	}
	return false
}

// TargetAbsolute returns the target for exercise on d. Exercises outside the
// plan yield a zero target; dates outside the schedule are an error.
func (s *Schedule) TargetAbsolute(d time.Time, exercise string) (Volume, error) {
	if !s.inPlan(exercise) {
		return Volume{}, nil
	}
	if !s.Config.Contains(d) {
		return Volume{}, outOfRange(d)
	}
	return s.Targets[DateKey(d)][exercise], nil
}

// ActualAbsolute returns what was recorded for exercise on d, zero if nothing was.
func (s *Schedule) ActualAbsolute(d time.Time, exercise string) Volume {
	return s.Actuals[DateKey(d)][exercise]
}

// TargetCumulative sums the target amounts of exercise up to and including d.
// Dates past the end are clamped to the end date. Loads are not summed.
func (s *Schedule) TargetCumulative(d time.Time, exercise string) float64 {
	if !s.inPlan(exercise) {
		return 0
	}
	d = Day(d)
	if d.Before(s.StartDate()) {
		return 0
	}
	if d.After(s.EndDate()) {
		d = s.EndDate()
	}

	limit := DateKey(d)
	total := 0.0
	for key, targets := range s.Targets {
		if key <= limit {
			total += targets[exercise].Amount
		}
	}
	return total
}

// ActualCumulative sums every recorded amount of exercise dated on or before d.
func (s *Schedule) ActualCumulative(d time.Time, exercise string) float64 {
	limit := DateKey(d)
	total := 0.0
	for key, actuals := range s.Actuals {
		if key <= limit {
			total += actuals[exercise].Amount
		}
	}
	return total
}

// ExerciseIDs returns the plan exercises together with every exercise found
// in the actuals, sorted.
func (s *Schedule) ExerciseIDs() []string {
	seen := make(map[string]struct{}, len(s.Exercises))
	for _, ex := range s.Exercises {
		seen[ex] = struct{}{}
	}
	for _, actuals := range s.Actuals {
		for ex := range actuals {
			seen[ex] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// TargetVsActualAbsolute compares targets and actuals on d for every known
// exercise. Outside the schedule the target degrades to zero.
func (s *Schedule) TargetVsActualAbsolute(d time.Time) map[string]Comparison {
	inRange := s.Config.Contains(d)
	out := make(map[string]Comparison)
	for _, ex := range s.ExerciseIDs() {
		var target Volume
		if inRange {
			// in range, so the lookup cannot fail
			target, _ = s.TargetAbsolute(d, ex)
		}
		actual := s.ActualAbsolute(d, ex)
		out[ex] = Comparison{Target: target, Actual: actual, Gap: actual.Sub(target)}
	}
	return out
}

// TargetVsActualCumulative compares running totals up to d for every known exercise.
func (s *Schedule) TargetVsActualCumulative(d time.Time) map[string]CumulativeComparison {
	out := make(map[string]CumulativeComparison)
	for _, ex := range s.ExerciseIDs() {
		target := s.TargetCumulative(d, ex)
		actual := s.ActualCumulative(d, ex)
		out[ex] = CumulativeComparison{Target: target, Actual: actual, Gap: actual - target}
	}
	return out
}

// TargetsOn lists, per plan exercise, the cumulative target amount up to d
// and the load due on d.
func (s *Schedule) TargetsOn(d time.Time) (map[string]DailyTarget, error) {
	if !s.Config.Contains(d) {
		return nil, outOfRange(d)
	}
	out := make(map[string]DailyTarget, len(s.Exercises))
	for _, ex := range s.Exercises {
		target, err := s.TargetAbsolute(d, ex)
		if err != nil {
			return nil, err
		}
		out[ex] = DailyTarget{CumulativeAmount: s.TargetCumulative(d, ex), Load: target.Load}
	}
	return out, nil
}

// RecordedCount returns the number of (date, exercise) entries recorded.
func (s *Schedule) RecordedCount() int {
	n := 0
	for _, actuals := range s.Actuals {
		n += len(actuals)
	}
	return n
}

// RecordedExercises returns the distinct exercises found in the actuals, sorted.
func (s *Schedule) RecordedExercises() []string {
	seen := make(map[string]struct{})
	for _, actuals := range s.Actuals {
		for ex := range actuals {
			seen[ex] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// CheckActivity reports whether a could be recorded: the athlete must own
// the schedule, the date must lie within it and the kind must be known, in
// that order.
func (s *Schedule) CheckActivity(a Activity) error {
	if a.Athlete != s.Athlete {
		return ErrAthleteMismatch
	}
	if !s.Config.Contains(a.Date) {
		return outOfRange(a.Date)
	}
	_, err := a.Volume()
	return err
}

// RecordActivity stores the activity's volume under its date and exercise,
// replacing whatever was recorded there before. The schedule is left
// untouched when validation fails.
func (s *Schedule) RecordActivity(a Activity) error {
	if err := s.CheckActivity(a); err != nil {
		return err
	}
	v, err := a.Volume()
	if err != nil {
		return err
	}

	if s.Actuals == nil {
		s.Actuals = Log{}
	}
	key := DateKey(a.Date)
	if s.Actuals[key] == nil {
		s.Actuals[key] = make(map[string]Volume)
	}
	s.Actuals[key][a.Exercise] = v
	return nil
}

// Clone returns a deep copy of s.
func (s *Schedule) Clone() *Schedule {
	c := *s
	c.Exercises = append([]string(nil), s.Exercises...)
	c.Targets = s.Targets.Clone()
	c.Actuals = s.Actuals.Clone()
	return &c
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
