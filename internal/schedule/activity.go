package schedule

import (
	"fmt"
	"time"
)

// Kind discriminates the activity variants.
type Kind string

const (
	KindStrength  Kind = "strength"
	KindIsometric Kind = "isometric"
	KindCardio    Kind = "cardio"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindStrength, KindIsometric, KindCardio:
		return true
	}
	return false
}

// Activity is one recorded exercise performance. Reps and Weight belong to
// strength activities, DurationSeconds to isometric and cardio ones.
type Activity struct {
	Kind            Kind
	Exercise        string
	Date            time.Time
	Athlete         string
	Reps            int
	Weight          float64
	DurationSeconds int
}

func NewStrength(exercise string, date time.Time, athlete string, reps int, weight float64) Activity {
	return Activity{Kind: KindStrength, Exercise: exercise, Date: Day(date), Athlete: athlete, Reps: reps, Weight: weight}
}

func NewIsometric(exercise string, date time.Time, athlete string, seconds int) Activity {
	return Activity{Kind: KindIsometric, Exercise: exercise, Date: Day(date), Athlete: athlete, DurationSeconds: seconds}
}

func NewCardio(exercise string, date time.Time, athlete string, seconds int) Activity {
	return Activity{Kind: KindCardio, Exercise: exercise, Date: Day(date), Athlete: athlete, DurationSeconds: seconds}
}

// Volume derives the (amount, load) pair recorded for the activity.
func (a Activity) Volume() (Volume, error) {
	switch a.Kind {
	case KindStrength:
		return Volume{Amount: float64(a.Reps), Load: a.Weight}, nil
	case KindIsometric, KindCardio:
		return Volume{Amount: float64(a.DurationSeconds)}, nil
	default:
		return Volume{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, a.Kind)
	}
}
