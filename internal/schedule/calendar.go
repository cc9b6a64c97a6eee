// Package schedule expands training plans into daily targets and reconciles
// them with the activities an athlete records.
package schedule

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO-8601 calendar date format used for calendar keys.
const DateLayout = time.DateOnly

const day = 24 * time.Hour

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// DateKey formats d the way calendars and logs key their entries.
func DateKey(d time.Time) string {
	return Day(d).Format(DateLayout)
}

// daysBetween returns the number of whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)) / day)
}

// weekdayIndex maps a time.Weekday onto Monday=0..Sunday=6.
func weekdayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// Weekdays is a Monday-first training-day mask.
type Weekdays [7]bool

// Has reports whether w marks the given weekday as a training day.
func (w Weekdays) Has(wd time.Weekday) bool {
	return w[weekdayIndex(wd)]
}

// Names returns the English names of the training days, Monday first.
func (w Weekdays) Names() []string {
	names := make([]string, 0, 7)
	for i, on := range w {
		if on {
			// Monday is index 0, time.Weekday counts from Sunday
			names = append(names, time.Weekday((i+1)%7).String())
		}
	}
	return names
}

// ParseWeekdays builds a mask from English weekday names, case-insensitively.
func ParseWeekdays(names []string) (Weekdays, error) {
	var w Weekdays
	for _, name := range names {
		found := false
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			if strings.EqualFold(strings.TrimSpace(name), wd.String()) {
				w[weekdayIndex(wd)] = true
				found = true
				break
			}
		}
		if !found {
			return Weekdays{}, fmt.Errorf("%w: unknown weekday %q", ErrInvalidConfig, name)
		}
	}
	return w, nil
}

// Count returns how many weekdays are marked.
func (w Weekdays) Count() int {
	n := 0
	for _, on := range w {
		if on {
			n++
		}
	}
	return n
}

// Config is the calendar configuration of a schedule. It is fixed once the
// schedule exists.
type Config struct {
	StartDate     time.Time `bson:"startDate" json:"startDate"`
	DurationWeeks int       `bson:"durationWeeks" json:"durationWeeks"`
	TrainingDays  Weekdays  `bson:"trainingDays" json:"trainingDays"`
}

// MaxDurationWeeks caps a schedule at ten years.
const MaxDurationWeeks = 520

// Validate checks the config invariants.
func (c Config) Validate() error {
	if c.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", ErrInvalidConfig)
	}
	if c.DurationWeeks < 1 {
		return fmt.Errorf("%w: duration must be at least one week, got %d", ErrInvalidConfig, c.DurationWeeks)
	}
	if c.DurationWeeks > MaxDurationWeeks {
		return fmt.Errorf("%w: duration must not exceed %d weeks, got %d", ErrInvalidConfig, MaxDurationWeeks, c.DurationWeeks)
	}
	return nil
}

// EndDate is DurationWeeks*7 days after the start date. Both ends belong to
// the schedule, so it spans DurationWeeks*7+1 calendar days.
func (c Config) EndDate() time.Time {
	return Day(c.StartDate).AddDate(0, 0, c.DurationWeeks*7)
}

// Contains reports whether d lies within [StartDate, EndDate].
func (c Config) Contains(d time.Time) bool {
	d = Day(d)
	return !d.Before(Day(c.StartDate)) && !d.After(c.EndDate())
}

// IsTrainingDay is false outside the schedule, otherwise the mask lookup.
func (c Config) IsTrainingDay(d time.Time) bool {
	if !c.Contains(d) {
		return false
	}
	return c.TrainingDays.Has(d.Weekday())
}

// TrainingWeek returns the 1-based week of d. Weeks start on the schedule's
// start date, not on Mondays.
func (c Config) TrainingWeek(d time.Time) (int, error) {
	if !c.Contains(d) {
		return 0, outOfRange(d)
	}
	return daysBetween(c.StartDate, d)/7 + 1, nil
}

func outOfRange(d time.Time) error {
	return fmt.Errorf("%w: %s", ErrOutOfRange, DateKey(d))
}
