package ninecat

import "time"

// dayKey is the civil-date key format used throughout the schedule model.
const dayKey = "2006-01-02"

// TeamSet is a set of NBA team tricodes.
type TeamSet map[string]struct{}

// NewTeamSet builds a TeamSet from tricodes.
func NewTeamSet(codes ...string) TeamSet {
	s := make(TeamSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Contains reports set membership.
func (s TeamSet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// DaySchedule maps a civil date to the set of teams with a game that day.
// A date with no entry means the schedule source had no data for the day:
// the simulator skips such days entirely rather than guessing. A date
// present with an empty set is a confirmed league-wide off day.
type DaySchedule map[string]TeamSet

// TeamsOn returns the playing teams for a day and whether the day is known
// to the schedule at all.
func (ds DaySchedule) TeamsOn(day time.Time) (TeamSet, bool) {
	teams, ok := ds[day.Format(dayKey)]
	return teams, ok
}

// Set records the playing teams for a day.
func (ds DaySchedule) Set(day time.Time, teams TeamSet) {
	ds[day.Format(dayKey)] = teams
}

// WeekRange is the inclusive civil-date span of a fantasy week in the
// platform's timezone. The platform occasionally schedules irregular
// "double weeks" (around the All-Star break and at season boundaries), so a
// range may cover more than seven days; nothing here assumes otherwise.
type WeekRange struct {
	Start time.Time
	End   time.Time
}

// Days enumerates every civil date in the range in order.
func (w WeekRange) Days() []time.Time {
	var days []time.Time
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Contains reports whether the given day falls inside the range.
func (w WeekRange) Contains(day time.Time) bool {
	return !day.Before(w.Start) && !day.After(w.End)
}

// Split partitions the range's days into already-elapsed and remaining
// buckets relative to now. The current day counts as remaining: its games
// have typically not tipped off when a projection is requested, and any
// that have are already reflected in the accumulated totals that override
// the past-day simulation.
func (w WeekRange) Split(now time.Time) (past, remaining []time.Time) {
	today := Day(now)
	for _, d := range w.Days() {
		if d.Before(today) {
			past = append(past, d)
		} else {
			remaining = append(remaining, d)
		}
	}
	return past, remaining
}

// Day truncates a time to its civil date, preserving location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Week is a platform fantasy week: its ordinal number and resolved dates.
type Week struct {
	Number   int
	Range    WeekRange
	Playoffs bool
}
