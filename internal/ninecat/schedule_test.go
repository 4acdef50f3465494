package ninecat

import (
	"testing"
	"time"
)

func TestWeekRangeDays(t *testing.T) {
	w := WeekRange{Start: day("2026-01-05"), End: day("2026-01-11")}
	if got := len(w.Days()); got != 7 {
		t.Errorf("expected 7 days, got %d", got)
	}

	// Double week around the All-Star break.
	double := WeekRange{Start: day("2026-02-09"), End: day("2026-02-22")}
	if got := len(double.Days()); got != 14 {
		t.Errorf("expected 14 days in a double week, got %d", got)
	}
}

func TestWeekRangeSplit(t *testing.T) {
	w := WeekRange{Start: day("2026-01-05"), End: day("2026-01-11")}

	// Midweek, mid-afternoon: the current day counts as remaining.
	now := time.Date(2026, 1, 7, 15, 30, 0, 0, time.UTC)
	past, remaining := w.Split(now)
	if len(past) != 2 {
		t.Errorf("expected 2 past days, got %d", len(past))
	}
	if len(remaining) != 5 {
		t.Errorf("expected 5 remaining days, got %d", len(remaining))
	}
	if !remaining[0].Equal(day("2026-01-07")) {
		t.Errorf("expected today first in remaining, got %v", remaining[0])
	}
}

func TestWeekRangeSplitBeforeAndAfter(t *testing.T) {
	w := WeekRange{Start: day("2026-01-05"), End: day("2026-01-11")}

	past, remaining := w.Split(day("2026-01-01"))
	if len(past) != 0 || len(remaining) != 7 {
		t.Errorf("before the week: expected 0/7, got %d/%d", len(past), len(remaining))
	}

	past, remaining = w.Split(day("2026-01-20"))
	if len(past) != 7 || len(remaining) != 0 {
		t.Errorf("after the week: expected 7/0, got %d/%d", len(past), len(remaining))
	}
}

func TestILWindowCovers(t *testing.T) {
	removed := day("2026-01-09")
	w := ILWindow{PlacedOn: day("2026-01-06"), RemovedOn: &removed}

	cases := []struct {
		day  string
		want bool
	}{
		{"2026-01-05", false},
		{"2026-01-06", true},
		{"2026-01-08", true},
		{"2026-01-09", false}, // removal day: back in the lineup
		{"2026-01-10", false},
	}
	for _, c := range cases {
		if got := w.Covers(day(c.day)); got != c.want {
			t.Errorf("Covers(%s): expected %v, got %v", c.day, c.want, got)
		}
	}

	open := ILWindow{PlacedOn: day("2026-01-06")}
	if !open.Covers(day("2026-12-31")) {
		t.Error("open-ended window should cover all later days")
	}
}

func TestDayScheduleUnknownVsOffDay(t *testing.T) {
	ds := DaySchedule{}
	ds.Set(day("2026-01-05"), NewTeamSet())

	if _, known := ds.TeamsOn(day("2026-01-05")); !known {
		t.Error("off day should be known")
	}
	if _, known := ds.TeamsOn(day("2026-01-06")); known {
		t.Error("absent day should be unknown")
	}
}

func TestStatLinePerGame(t *testing.T) {
	totals := StatLine{
		Values:      map[string]float64{Points.StatID(): 500, FGPct.StatID(): 0.482},
		GamesPlayed: 25,
	}
	if got := totals.PerGame(Points); !almostEqual(got, 20) {
		t.Errorf("PTS per game: expected 20, got %v", got)
	}
	// Rate stats are never divided by games and normalize to 0-100.
	if got := totals.PerGame(FGPct); !almostEqual(got, 48.2) {
		t.Errorf("FG%% per game: expected 48.2, got %v", got)
	}

	avg := StatLine{Values: map[string]float64{Points.StatID(): 20}, Averaged: true}
	if got := avg.PerGame(Points); !almostEqual(got, 20) {
		t.Errorf("averaged PTS: expected 20, got %v", got)
	}
}
