package ninecat

import (
	"sort"
	"time"
)

// Mode selects how the eligibility simulator treats a day.
type Mode int

const (
	// PastDay reconstructs a day that has already been played. Inactive-list
	// players may still count if the transaction log shows they were not yet
	// on the list that day.
	PastDay Mode = iota
	// RemainingDay projects a day still ahead. Inactive-list players never
	// count.
	RemainingDay
)

// DefaultDailyCap is the platform's active-lineup limit: at most this many
// player-games count toward a team's weekly totals on any single day.
const DefaultDailyCap = 10

// An Ordering decides which eligible players get the capped daily slots.
// The platform's observed behavior changed over time, so the rule is
// pluggable rather than fixed.
type Ordering interface {
	// Order sorts indexes into the eligible slice by counting priority.
	Order(eligible []*PlayerRecord)
}

// OrderRoster counts eligible players in roster order, starters and bench
// alike. This matches the platform's current behavior.
type OrderRoster struct{}

func (OrderRoster) Order([]*PlayerRecord) {}

// OrderStartersFirst prefers starting-position slots over UTIL and bench,
// preserving roster order within each group. This matches the platform's
// earlier observed behavior.
type OrderStartersFirst struct{}

func (OrderStartersFirst) Order(eligible []*PlayerRecord) {
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Slot.Starting() && !eligible[j].Slot.Starting()
	})
}

// A dayFilter is one exclusion rule of the eligibility pipeline. It reports
// whether the player can count on the given day.
type dayFilter func(p *PlayerRecord, day time.Time, mode Mode, playing TeamSet, injuries InjuryModel) bool

// notInjuredOut excludes players whose status maps to a zero play
// probability.
func notInjuredOut(p *PlayerRecord, _ time.Time, _ Mode, _ TeamSet, injuries InjuryModel) bool {
	return injuries.Probability(p.Status) > 0
}

// notOnInactiveList excludes inactive-list players. When reconstructing a
// past day, a player currently on the list still counts for days before
// their recorded placement (they were active when those games were played).
func notOnInactiveList(p *PlayerRecord, day time.Time, mode Mode, _ TeamSet, _ InjuryModel) bool {
	if !p.Slot.InactiveList() {
		if p.IL != nil && p.IL.Covers(day) {
			return false
		}
		return true
	}
	if mode != PastDay {
		return false
	}
	if p.IL == nil {
		// On the list with no recorded placement: assume the whole week.
		return false
	}
	return !p.IL.Covers(day)
}

// acquiredByDay excludes players not yet on the roster that day.
func acquiredByDay(p *PlayerRecord, day time.Time, _ Mode, _ TeamSet, _ InjuryModel) bool {
	return p.AcquiredOn == nil || !day.Before(*p.AcquiredOn)
}

// teamPlaying excludes players whose NBA team has no game that day.
func teamPlaying(p *PlayerRecord, _ time.Time, _ Mode, playing TeamSet, _ InjuryModel) bool {
	return playing.Contains(p.Team)
}

var dayFilters = []dayFilter{notInjuredOut, notOnInactiveList, acquiredByDay, teamPlaying}

// Simulator decides, day by day, which rostered players' stats count
// toward a team's weekly totals.
type Simulator struct {
	Injuries InjuryModel
	DailyCap int
	Order    Ordering
}

// NewSimulator returns a simulator with the default injury table, daily
// cap, and roster-order counting.
func NewSimulator() *Simulator {
	return &Simulator{
		Injuries: DefaultInjuryModel(),
		DailyCap: DefaultDailyCap,
		Order:    OrderRoster{},
	}
}

func (s *Simulator) cap() int {
	if s.DailyCap > 0 {
		return s.DailyCap
	}
	return DefaultDailyCap
}

// CountDay returns the players whose stats count on the given day, in
// counting order, capped at the daily limit. A day absent from the schedule
// contributes nothing: no entry means the schedule source had no data, and
// the simulator does not guess. A present-but-empty entry is a confirmed
// off day and likewise contributes nothing.
func (s *Simulator) CountDay(day time.Time, roster []PlayerRecord, sched DaySchedule, mode Mode) []*PlayerRecord {
	playing, known := sched.TeamsOn(day)
	if !known || len(playing) == 0 {
		return nil
	}

	eligible := make([]*PlayerRecord, 0, len(roster))
	for i := range roster {
		p := &roster[i]
		ok := true
		for _, f := range dayFilters {
			if !f(p, day, mode, playing, s.Injuries) {
				ok = false
				break
			}
		}
		if ok {
			eligible = append(eligible, p)
		}
	}

	if s.Order != nil {
		s.Order.Order(eligible)
	}
	if len(eligible) > s.cap() {
		eligible = eligible[:s.cap()]
	}
	return eligible
}
