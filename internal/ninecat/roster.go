package ninecat

import "time"

// RosterSlot is the fantasy roster position a player currently occupies.
type RosterSlot string

const (
	SlotPG     RosterSlot = "PG"
	SlotSG     RosterSlot = "SG"
	SlotG      RosterSlot = "G"
	SlotSF     RosterSlot = "SF"
	SlotPF     RosterSlot = "PF"
	SlotF      RosterSlot = "F"
	SlotC      RosterSlot = "C"
	SlotUtil   RosterSlot = "UTIL"
	SlotBench  RosterSlot = "BN"
	SlotIL     RosterSlot = "IL"
	SlotILPlus RosterSlot = "IL+"
)

// InactiveList reports whether the slot is one of the inactive-list
// designations. Players in these slots never accrue stats while so slotted.
func (s RosterSlot) InactiveList() bool {
	return s == SlotIL || s == SlotILPlus
}

// Starting reports whether the slot is a starting position slot
// (a position code, not UTIL, bench, or inactive list).
func (s RosterSlot) Starting() bool {
	switch s {
	case SlotPG, SlotSG, SlotG, SlotSF, SlotPF, SlotF, SlotC:
		return true
	}
	return false
}

// StatLine is a player's statistic map as delivered by a stats source.
// Values are keyed by platform stat ID. A source either delivers per-game
// averages (Averaged true) or raw season totals to be divided by
// GamesPlayed.
type StatLine struct {
	Values      map[string]float64
	Averaged    bool
	GamesPlayed float64

	// Actual shooting splits, when the source exposes them. Zero-valued
	// with HasShooting false means attempts must be estimated from points.
	HasShooting            bool
	FGMade, FGAttempted    float64
	FTMade, FTAttempted    float64
}

// games returns a safe games-played divisor.
func (s StatLine) games() float64 {
	if s.GamesPlayed > 0 {
		return s.GamesPlayed
	}
	return 1
}

// PerGame returns one game's worth of the given category. Missing values
// are zero; a rate category is returned on the 0-100 scale unscaled by games.
func (s StatLine) PerGame(c Category) float64 {
	v := s.Values[c.StatID()]
	if c.Percentage() {
		return NormalizePercent(v)
	}
	if s.Averaged {
		return v
	}
	return v / s.games()
}

// Empty reports whether the line carries no usable values.
func (s StatLine) Empty() bool {
	return len(s.Values) == 0 && !s.HasShooting
}

// ILWindow is the span of days a player spent on the inactive list,
// as reconstructed from the league transaction log. RemovedOn nil means the
// player is still on the list.
type ILWindow struct {
	PlacedOn  time.Time
	RemovedOn *time.Time
}

// Covers reports whether the player was on the inactive list on the given
// day: day >= placement and, if a removal date exists, day < removal.
func (w ILWindow) Covers(day time.Time) bool {
	if day.Before(w.PlacedOn) {
		return false
	}
	return w.RemovedOn == nil || day.Before(*w.RemovedOn)
}

// PlayerRecord is one rostered player with everything the simulator needs
// to decide whether a given day counts for them.
type PlayerRecord struct {
	ID     string
	Name   string
	Team   string // NBA tricode
	Slot   RosterSlot
	Status string // raw injury status string
	Note   string // free-text injury note, display only

	Stats StatLine

	// AcquiredOn, when set, is the first day of the week the player was on
	// this roster. Days before it never count.
	AcquiredOn *time.Time

	// IL, when set, is the player's inactive-list window within the week.
	IL *ILWindow
}

// ApplyWindows annotates a roster with acquisition dates and inactive-list
// windows resolved from the league's transaction log. It returns the same
// slice for chaining. Players absent from both maps are left untouched.
func ApplyWindows(roster []PlayerRecord, acquired map[string]time.Time, il map[string]ILWindow) []PlayerRecord {
	for i := range roster {
		if d, ok := acquired[roster[i].ID]; ok {
			day := d
			roster[i].AcquiredOn = &day
		}
		if w, ok := il[roster[i].ID]; ok {
			win := w
			roster[i].IL = &win
		}
	}
	return roster
}
