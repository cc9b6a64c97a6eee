package schedule

import (
	"sort"
	"time"
)

// Progression is the linear weekly progression of one exercise in a plan.
// Amount is repetitions or seconds depending on the exercise kind, load is
// kilograms and stays zero for duration based exercises.
type Progression struct {
	StartingAmount float64 `bson:"startingAmount" json:"startingAmount"`
	AmountPerWeek  float64 `bson:"amountPerWeek" json:"amountPerWeek"`
	StartingLoad   float64 `bson:"startingLoad" json:"startingLoad"`
	LoadPerWeek    float64 `bson:"loadPerWeek" json:"loadPerWeek"`
}

// At returns the target for the given 1-based week.
func (p Progression) At(week int) Volume {
	w := float64(week - 1)
	return Volume{
		Amount: p.StartingAmount + w*p.AmountPerWeek,
		Load:   p.StartingLoad + w*p.LoadPerWeek,
	}
}

// Plan maps exercise names to their progression.
type Plan map[string]Progression

// Exercises returns the plan's exercise names, sorted.
func (p Plan) Exercises() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Volume is an (amount, load) pair.
type Volume struct {
	Amount float64 `bson:"amount" json:"amount"`
	Load   float64 `bson:"load" json:"load"`
}

// Sub returns v - o elementwise.
func (v Volume) Sub(o Volume) Volume {
	return Volume{Amount: v.Amount - o.Amount, Load: v.Load - o.Load}
}

// Calendar holds the daily targets of a schedule: date key -> exercise -> target.
type Calendar map[string]map[string]Volume

// Log holds the recorded actuals of a schedule: date key -> exercise -> actual.
// Unlike a Calendar it is sparse.
type Log map[string]map[string]Volume

// Expand materialises the targets for every calendar day of cfg, both ends
// included. Non-training days carry a zero target for every plan exercise.
func Expand(plan Plan, cfg Config) (Calendar, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := Day(cfg.StartDate)
	end := cfg.EndDate()
	cal := make(Calendar, cfg.DurationWeeks*7+1)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		targets := make(map[string]Volume, len(plan))
		if !cfg.TrainingDays.Has(d.Weekday()) {
			for name := range plan {
				targets[name] = Volume{}
			}
			cal[DateKey(d)] = targets
			continue
		}

		week := daysBetween(start, d)/7 + 1
		for name, p := range plan {
			targets[name] = p.At(week)
		}
		cal[DateKey(d)] = targets
	}

	return cal, nil
}

// Dates returns the calendar's dates in chronological order.
func (c Calendar) Dates() []time.Time {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	// YYYY-MM-DD keys sort chronologically
	sort.Strings(keys)

	dates := make([]time.Time, 0, len(keys))
	for _, k := range keys {
		if d, err := ParseDate(k); err == nil {
			dates = append(dates, d)
		}
	}
	return dates
}

// Clone returns a deep copy of the calendar.
func (c Calendar) Clone() Calendar {
	if c == nil {
		return nil
	}
	return Calendar(cloneEntries(c))
}

// Clone returns a deep copy of the log.
func (l Log) Clone() Log {
	if l == nil {
		return nil
	}
	return Log(cloneEntries(l))
}

func cloneEntries(src map[string]map[string]Volume) map[string]map[string]Volume {
	out := make(map[string]map[string]Volume, len(src))
	for date, entries := range src {
		m := make(map[string]Volume, len(entries))
		for ex, v := range entries {
			m[ex] = v
		}
		out[date] = m
	}
	return out
}
